package eval

import "github.com/herohde/morlock/pkg/board"

// maxPhase is the game-phase value with all non-pawn material on the board; phase decreases
// toward 0 as pieces come off, tapering PST and pawn-structure weights from middlegame to
// endgame values.
const maxPhase = 24

var phaseWeight = [board.NumPieces]int{
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

func gamePhase(pos *board.Position) int {
	p := 0
	for _, c := range [...]board.Color{board.White, board.Black} {
		for _, piece := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			p += pos.PieceBB(c, piece).PopCount() * phaseWeight[piece]
		}
	}
	if p > maxPhase {
		p = maxPhase
	}
	return p
}

// taper blends a middlegame and endgame score by the current phase, linearly.
func taper(mg, eg board.Score, phase int) board.Score {
	return (mg*board.Score(phase) + eg*board.Score(maxPhase-phase)) / maxPhase
}
