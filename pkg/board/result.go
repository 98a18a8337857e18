package board

import "fmt"

// Result represents the result of a game, if any. 2 bits.
type Result uint8

const (
	Undecided Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Reason qualifies a Result with the specific rule that produced it.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	Repetition3
	Repetition5
	NoProgress
	InsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Repetition3:
		return "threefold repetition"
	case Repetition5:
		return "fivefold repetition"
	case NoProgress:
		return "50-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "in progress"
	}
}

// Outcome pairs a Result with the Reason it was adjudicated.
type Outcome struct {
	Result Result
	Reason Reason
}

func (o Outcome) String() string {
	if o.Result == Undecided {
		return "undecided"
	}
	return fmt.Sprintf("%v (%v)", o.Result, o.Reason)
}

// Loss returns the losing result for the given side to move, i.e., the winning result for its
// opponent. Used when adjudicating checkmate: the side with no legal moves out of check lost.
func Loss(c Color) Result {
	if c == White {
		return BlackWins
	}
	return WhiteWins
}
