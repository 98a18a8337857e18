package board_test

import (
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the leaves of the legal move tree to the given depth. It is the primary
// correctness seed for the move generator: the canonical scenario counts below come straight
// from the spec's testable properties, not derived from this implementation.
func perft(t *testing.T, pos *board.Position, depth int) uint64 {
	t.Helper()
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range board.GenerateMoves(pos) {
		next, ok := pos.Make(m)
		require.True(t, ok)
		nodes += perft(t, next, depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		depth    int
		expected uint64
	}{
		{"start/1", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 1, 20},
		{"start/2", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 2, 400},
		{"start/3", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3, 8902},
		{"start/4", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 4, 197281},
		{"kiwipete/1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete/2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"kiwipete/3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"endgame/1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"endgame/4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
		{"promotions/1", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6},
		{"promotions/4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
		{"castling-rights/1", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 1, 44},
		{"ep-pin/1", "8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1", 1, 15},
		{"ep-pin/6", "8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1", 6, 1440467},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _, _, _, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, perft(t, pos, tt.depth))
		})
	}
}

func TestMakeMoveIsImmutable(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := pos.String()
	next, ok := pos.Make(board.NewMove(board.E2, board.E4, board.NoFlag))
	require.True(t, ok)

	assert.Equal(t, before, pos.String(), "Make must not mutate the receiver")
	assert.NotEqual(t, before, next.String())
}

func TestHashIncludesCastling(t *testing.T) {
	a, _, _, _, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	b, _, _, _, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Kk - 0 1")
	require.NoError(t, err)

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestEnPassantRoundTrip(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	next, ok := pos.Make(board.NewMove(board.E2, board.E4, board.NoFlag))
	require.True(t, ok)

	ep, hasEP := next.EnPassant()
	require.True(t, hasEP)
	assert.Equal(t, board.E3, ep)
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// A bishop on d4 can take the rook on a1 to strip White's queenside right even though
	// neither side's king nor the rook on a1 has itself moved in this position's own history.
	pos, turn, _, _, err := fen.Decode("4k3/8/8/8/3b4/8/8/R3K2R b KQ - 0 1")
	require.NoError(t, err)
	assert.Equal(t, board.Black, turn)

	var capture board.Move
	for _, m := range board.GenerateMoves(pos) {
		if m.From() == board.D4 && m.To() == board.A1 {
			capture = m
		}
	}
	require.NotEqual(t, board.NoMove, capture)

	next, ok := pos.Make(capture)
	require.True(t, ok)
	assert.False(t, next.Castling().IsAllowed(board.WhiteQueenSideCastle))
	assert.True(t, next.Castling().IsAllowed(board.WhiteKingSideCastle))
}

func TestInsufficientMaterial(t *testing.T) {
	pos, _, _, _, err := fen.Decode("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.HasInsufficientMaterial())

	pos, _, _, _, err = fen.Decode("8/8/4k3/8/8/4KQ2/8/8 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.HasInsufficientMaterial())
}
