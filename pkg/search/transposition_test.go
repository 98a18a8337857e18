package search_test

import (
	"context"
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)

	m := board.NewMove(board.E2, board.E4, board.NoFlag)
	tt.Write(1234, search.ExactBound, 5, 42, m)

	bound, depth, score, move, ok := tt.Read(1234)
	require.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 5, depth)
	assert.Equal(t, board.Score(42), score)
	assert.Equal(t, m, move)
}

func TestTranspositionTableMissOnVerificationMismatch(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	tt.Write(0, search.ExactBound, 1, 10, board.NoMove)

	// Same table index (the mask only keeps low bits, so 1<<48 does not change it), but a
	// different verification tag (the high 16 bits), must miss.
	_, _, _, _, ok := tt.Read(board.ZobristHash(1) << 48)
	assert.False(t, ok)
}

func TestTranspositionTableAlwaysOverwrites(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	tt.Write(99, search.ExactBound, 10, 100, board.NoMove)
	tt.Write(99, search.UpperBound, 1, -100, board.NoMove)

	bound, depth, score, _, ok := tt.Read(99)
	require.True(t, ok)
	assert.Equal(t, search.UpperBound, bound)
	assert.Equal(t, 1, depth)
	assert.Equal(t, board.Score(-100), score)
}

func TestNoTranspositionTableNeverHits(t *testing.T) {
	tt := search.NoTranspositionTable{}
	tt.Write(1, search.ExactBound, 1, 1, board.NoMove)

	_, _, _, _, ok := tt.Read(1)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tt.Size())
}
