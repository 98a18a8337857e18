package engine_test

import (
	"testing"

	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftStartingPositionShallowDepths(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth int
		nodes uint64
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, engine.Perft(pos, tt.depth))
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	div := engine.PerftDivide(pos, 3)

	var total uint64
	for _, n := range div {
		total += n
	}
	assert.Equal(t, engine.Perft(pos, 3), total)
	assert.Len(t, div, 20) // 20 legal moves from the starting position
}
