package search

import (
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, f string) *board.Position {
	t.Helper()
	pos, _, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return pos
}

func TestKillersStoreTwoMostRecentDistinctMoves(t *testing.T) {
	var k killers
	m1 := board.NewMove(board.E2, board.E4, board.NoFlag)
	m2 := board.NewMove(board.D2, board.D4, board.NoFlag)
	m3 := board.NewMove(board.G1, board.F3, board.NoFlag)

	k.store(0, m1)
	k.store(0, m2)
	k0, k1 := k.at(0)
	assert.Equal(t, m2, k0)
	assert.Equal(t, m1, k1)

	// Re-storing the current top killer is a no-op.
	k.store(0, m2)
	k0, k1 = k.at(0)
	assert.Equal(t, m2, k0)
	assert.Equal(t, m1, k1)

	k.store(0, m3)
	k0, k1 = k.at(0)
	assert.Equal(t, m3, k0)
	assert.Equal(t, m2, k1)
}

func TestKillersOutOfRangePlyIsNoop(t *testing.T) {
	var k killers
	m := board.NewMove(board.E2, board.E4, board.NoFlag)
	k.store(maxKillerPly, m)
	k0, k1 := k.at(maxKillerPly)
	assert.Equal(t, board.NoMove, k0)
	assert.Equal(t, board.NoMove, k1)
}

func TestHistoryBumpClampsToLimit(t *testing.T) {
	var h history
	h.bump(board.White, board.Knight, board.F3, historyLimit)
	h.bump(board.White, board.Knight, board.F3, historyLimit)
	assert.Equal(t, int32(historyLimit), h[board.White][board.Knight][board.F3])

	h.bump(board.White, board.Knight, board.F3, -4*historyLimit)
	assert.Equal(t, int32(-historyLimit), h[board.White][board.Knight][board.F3])
}

func TestOrdererRanksPromotionAboveQuiet(t *testing.T) {
	// White pawn on a7 can promote, and a knight on b1 has a plain developing move available.
	pos := decode(t, "1r5k/P7/8/8/8/8/8/1N5K w - - 0 1")
	td := &threadData{}
	o := newOrderer(pos, td, 0)

	promo := board.NewMove(board.A7, board.A8, board.QueenPromoFlag)
	quiet := board.NewMove(board.B1, board.C3, board.NoFlag)

	promoScore := o.priority(promo)
	quietScore := o.priority(quiet)

	assert.Greater(t, promoScore, quietScore)
}

func TestOrdererKillerOutranksOrdinaryQuietMove(t *testing.T) {
	pos := decode(t, "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1")
	td := &threadData{}

	killerMove := board.NewMove(board.G1, board.F3, board.NoFlag)
	other := board.NewMove(board.B1, board.C3, board.NoFlag)
	td.killers.store(3, killerMove)

	o := newOrderer(pos, td, 3)
	assert.Greater(t, o.priority(killerMove), o.priority(other))
}

func TestIsQuietExcludesCapturesPromotionsAndEnPassant(t *testing.T) {
	pos := decode(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	ep := board.NewMove(board.E5, board.D6, board.EnPassantFlag)
	quiet := board.NewMove(board.E1, board.D1, board.NoFlag)

	assert.False(t, isQuiet(pos, ep))
	assert.True(t, isQuiet(pos, quiet))
}
