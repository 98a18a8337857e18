package search

import (
	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/eval"
)

// Move ordering buckets, highest to lowest priority: HashMove is handled separately by
// board.First, so only five categories are scored here. Each bucket occupies a disjoint range
// of board.MovePriority (an int16) so within-bucket scores never spill into a neighboring
// bucket.
const (
	promotionBase   board.MovePriority = 20000
	goodCaptureBase board.MovePriority = 10000
	killerBase      board.MovePriority = 5000
	badCaptureBase  board.MovePriority = -20000
)

const maxKillerPly = 64

// killers holds up to two killer moves per ply: quiet moves that caused a beta cutoff at that
// ply in a previously-searched sibling, tried again early since siblings in a negamax tree
// often share tactical shape.
type killers [maxKillerPly][2]board.Move

func (k *killers) store(ply int, m board.Move) {
	if ply >= maxKillerPly || k[ply][0] == m {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = m
}

func (k *killers) at(ply int) (board.Move, board.Move) {
	if ply >= maxKillerPly {
		return board.NoMove, board.NoMove
	}
	return k[ply][0], k[ply][1]
}

// history scores quiet moves by how often they have produced cutoffs in the past, indexed by
// mover color, piece kind and destination square. Thread-local: never shared across workers.
type history [board.NumColors][board.NumPieces][board.NumSquares]int32

const historyLimit = 32000

func (h *history) bump(c board.Color, p board.Piece, to board.Square, delta int32) {
	v := h[c][p][to] + delta
	switch {
	case v > historyLimit:
		v = historyLimit
	case v < -historyLimit:
		v = -historyLimit
	}
	h[c][p][to] = v
}

// threadData is the per-worker scratch state for one root search: killer table, history table
// and node counters. Never shared between goroutines.
type threadData struct {
	killers killers
	history history

	nodes  uint64
	qnodes uint64
}

// mover resolves the moving and (if any) captured piece kind of m against pos, before the move
// is made -- needed because Move's compact 16-bit encoding carries only from/to/flag, not the
// piece kinds involved.
func mover(pos *board.Position, m board.Move) board.Piece {
	_, piece, _ := pos.PieceAt(m.From())
	return piece
}

func captured(pos *board.Position, m board.Move) (board.Piece, bool) {
	if m.IsEnPassant() {
		return board.Pawn, true
	}
	_, piece, ok := pos.PieceAt(m.To())
	return piece, ok
}

// isPawnDefended reports whether sq is attacked by a pawn of the given color, using the same
// reverse-attack trick as eval.FindCapture.
func isPawnDefended(pos *board.Position, sq board.Square, by board.Color) bool {
	return board.PawnCaptureboard(by, pos.PieceBB(by, board.Pawn))&board.BitMask(sq) != 0
}

// orderer classifies and scores moves for a single node's move list, per §4.5: HashMove (via
// board.First, not here) > Promotion > GoodCapture > KillerMove > QuietMove > BadCapture.
type orderer struct {
	pos     *board.Position
	killer0 board.Move
	killer1 board.Move
	history *history
}

func newOrderer(pos *board.Position, td *threadData, ply int) *orderer {
	k0, k1 := td.killers.at(ply)
	return &orderer{pos: pos, killer0: k0, killer1: k1, history: &td.history}
}

func (o *orderer) priority(m board.Move) board.MovePriority {
	us := o.pos.Turn()

	if promo, ok := m.Promotion(); ok {
		return promotionBase + board.MovePriority(eval.NominalValue(promo))
	}

	if victim, ok := captured(o.pos, m); ok {
		attacker := mover(o.pos, m)
		attackerValue := eval.NominalValue(attacker)
		if attacker == board.King {
			attackerValue = 0 // the king sorts as the least valuable attacker, keeping its captures in the good-capture range
		}
		mvvlva := board.MovePriority(eval.NominalValue(victim))*10 - board.MovePriority(attackerValue)

		good := eval.NominalValue(attacker) <= eval.NominalValue(victim) || !isPawnDefended(o.pos, m.To(), us.Opponent())
		if good {
			return goodCaptureBase + mvvlva
		}
		return badCaptureBase + mvvlva
	}

	if m == o.killer0 {
		return killerBase + 2
	}
	if m == o.killer1 {
		return killerBase + 1
	}

	piece := mover(o.pos, m)
	h := o.history[us][piece][m.To()]
	pstDelta := board.MovePriority(pstValue(piece, us, m.To()) - pstValue(piece, us, m.From()))

	score := board.MovePriority(h/16) + pstDelta
	if isPawnDefended(o.pos, m.To(), us.Opponent()) && piece != board.Pawn {
		score -= 40
	}
	return score
}

// pstValue is zero for kings and pawns (neither carries an officer PST entry -- see
// board/pst.go), which is fine: the quiet-move ordering term only needs a directional delta for
// pieces that actually have placement value.
func pstValue(p board.Piece, c board.Color, sq board.Square) board.Score {
	switch p {
	case board.Knight, board.Bishop, board.Rook, board.Queen:
		return board.PSTValue(c, p, sq)
	default:
		return 0
	}
}

// isQuiet reports whether m is neither a capture, en passant, nor a promotion -- the move
// classes eligible for killer/history treatment.
func isQuiet(pos *board.Position, m board.Move) bool {
	if m.IsEnPassant() || m.IsPromotion() {
		return false
	}
	_, _, ok := pos.PieceAt(m.To())
	return !ok
}
