// Package eval contains static position evaluation logic and utilities.
package eval

import (
	"github.com/herohde/morlock/pkg/board"
)

// tempoBonus rewards the side to move: having the next move is worth a fraction of a pawn in
// most positions.
const tempoBonus board.Score = 10

// Evaluator is a static position evaluator. Evaluate returns the score in centipawns from
// White's perspective; callers negate it for Black via Unit when working in the negamax
// convention.
type Evaluator interface {
	Evaluate(pos *board.Position) board.Score
}

// Material evaluates material balance and the bishop pair only, ignoring piece placement. It is
// cheap enough to use as a move-ordering heuristic or in tests that want a minimal baseline.
type Material struct{}

func (Material) Evaluate(pos *board.Position) board.Score {
	return materialScore(pos) + bishopPairScore(pos)
}

// Standard is the full static evaluator: material, piece-square placement, pawn structure, piece
// activity, king safety, mop-up and tempo, combined White-relative.
type Standard struct {
	Pawns *PawnCache
}

// NewStandard constructs a Standard evaluator with a pawn-structure cache of the given size.
func NewStandard(pawnCacheMB int) *Standard {
	return &Standard{Pawns: NewPawnCache(pawnCacheMB)}
}

func (e *Standard) Evaluate(pos *board.Position) board.Score {
	ph := gamePhase(pos)

	score := materialScore(pos)
	score += taper(pos.PSTMidgame(), pos.PSTEndgame(), ph)
	score += pawnScore(pos, e.Pawns, ph)
	score += mobilityScore(pos)
	score += rookActivityScore(pos)
	score += queenCentralizationScore(pos)
	score += bishopPairScore(pos)
	score += kingSafetyScore(pos)
	score += mopUpScore(pos, ph)

	if pos.Turn() == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}
	return score
}
