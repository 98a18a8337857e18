package search_test

import (
	"context"
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/eval"
	"github.com/herohde/morlock/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(pos, turn, 1)
}

func fullWindowContext() *search.Context {
	return &search.Context{Alpha: board.MinScore, Beta: board.MaxScore, TT: search.NoTranspositionTable{}}
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8 is checkmate (back-rank mate).
	b := newBoard(t, "6k1/5ppp/8/8/8/8/8/R3K2Q w - - 0 1")
	ab := search.AlphaBeta{Eval: eval.Material{}}

	_, score, moves, err := ab.Search(context.Background(), fullWindowContext(), b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	md, ok := eval.MateDistance(score)
	require.True(t, ok)
	assert.Equal(t, 1, md)
}

func TestAlphaBetaPrefersMaterialGain(t *testing.T) {
	// White can capture a hanging queen on d5 with a knight.
	b := newBoard(t, "4k3/8/8/3q4/1N6/8/8/4K3 w - - 0 1")
	ab := search.AlphaBeta{Eval: eval.Material{}}

	_, _, moves, err := ab.Search(context.Background(), fullWindowContext(), b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.Equal(t, board.B4, moves[0].From())
	assert.Equal(t, board.D5, moves[0].To())
}

func TestAlphaBetaStalemateScoresZero(t *testing.T) {
	b := newBoard(t, "7k/8/6Q1/8/8/8/8/6K1 b - - 0 1")
	ab := search.AlphaBeta{Eval: eval.Material{}}

	_, score, moves, err := ab.Search(context.Background(), fullWindowContext(), b, 1)
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, board.Score(0), score)
}

func TestAlphaBetaParallelRootMatchesSingleThreaded(t *testing.T) {
	b := newBoard(t, fen.Initial)

	single := search.AlphaBeta{Eval: eval.Material{}, Threads: 1}
	parallel := search.AlphaBeta{Eval: eval.Material{}, Threads: 4}

	_, s1, _, err := single.Search(context.Background(), fullWindowContext(), b, 3)
	require.NoError(t, err)
	_, s2, _, err := parallel.Search(context.Background(), fullWindowContext(), b, 3)
	require.NoError(t, err)

	// Different workers may land on different, equally-best moves, but the backed-up score
	// from a symmetric start position must agree.
	assert.Equal(t, s1, s2)
}

func TestAlphaBetaPonderRestrictsRootMoves(t *testing.T) {
	b := newBoard(t, fen.Initial)
	ab := search.AlphaBeta{Eval: eval.Material{}}

	forced := board.NewMove(board.A2, board.A3, board.NoFlag)
	sctx := fullWindowContext()
	sctx.Ponder = []board.Move{forced}

	_, _, moves, err := ab.Search(context.Background(), sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.Equal(t, forced, moves[0])
}
