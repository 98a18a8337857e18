package engine_test

import (
	"context"
	"testing"

	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/engine"
	"github.com/herohde/morlock/pkg/eval"
	"github.com/herohde/morlock/pkg/search"
	"github.com/herohde/morlock/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	s := &search.AlphaBeta{Eval: eval.Material{}}
	return engine.New(context.Background(), "test", "tester", s)
}

func TestEngineResetAndMove(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	require.NoError(t, e.Reset(ctx, fen.Initial))
	require.NoError(t, e.Move(ctx, "e2e4"))
	require.NoError(t, e.Move(ctx, "e7e5"))
	assert.Error(t, e.Move(ctx, "e2e4")) // no longer a legal move from this position

	require.NoError(t, e.TakeBack(ctx))
	require.NoError(t, e.TakeBack(ctx))
	assert.Error(t, e.TakeBack(ctx)) // no more moves to undo
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	require.NoError(t, e.Reset(ctx, fen.Initial))
	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestEngineAnalyzeReturnsPV(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	require.NoError(t, e.Reset(ctx, "6k1/5ppp/8/8/8/8/8/R3K2Q w - - 0 1"))

	out, err := e.Analyze(ctx, searchctl.Options{})
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}
	require.NotEmpty(t, last.Moves)
}

func TestEngineSetNoiseForwardsToEvaluator(t *testing.T) {
	ctx := context.Background()
	noisy := eval.NewNoisy(eval.Material{}, 0, 1)
	s := &search.AlphaBeta{Eval: noisy}
	e := engine.New(ctx, "test", "tester", s, engine.WithNoise(noisy))

	e.SetNoise(50)
	assert.Equal(t, uint(50), e.Options().Noise)
}

func TestEngineSetThreadsForwardsToRoot(t *testing.T) {
	ctx := context.Background()
	s := &search.AlphaBeta{Eval: eval.Material{}}
	e := engine.New(ctx, "test", "tester", s)

	e.SetThreads(8)
	assert.Equal(t, uint(8), e.Options().Threads)
	assert.Equal(t, 8, s.Threads)
}
