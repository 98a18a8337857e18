package eval

import (
	"sort"

	"github.com/herohde/morlock/pkg/board"
)

// FindCapture returns the pieces of the given color that directly attack the square, using the
// same reverse-attack ("super-piece placed on the target") trick the move generator uses: a
// piece at sq that could attack a piece of kind k is exactly where a k would need to stand to
// attack sq.
func FindCapture(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement

	occ := pos.Occupied()
	for _, piece := range board.KingQueenRookKnightBishop {
		bb := board.Attackboard(occ, sq, piece) & pos.PieceBB(side, piece)
		for _, from := range bb.ToSquares() {
			ret = append(ret, board.Placement{Piece: piece, Color: side, Square: from})
		}
	}

	bb := board.PawnCaptureboard(side.Opponent(), board.BitMask(sq)) & pos.PieceBB(side, board.Pawn)
	for _, from := range bb.ToSquares() {
		ret = append(ret, board.Placement{Piece: board.Pawn, Color: side, Square: from})
	}

	return ret
}

// SortByNominalValue orders the placement list by nominal material value, low to high -- the
// cheapest attacker first, as used by static-exchange-style capture ordering.
func SortByNominalValue(pieces []board.Placement) []board.Placement {
	sort.SliceStable(pieces, func(i, j int) bool {
		return NominalValue(pieces[i].Piece) < NominalValue(pieces[j].Piece)
	})
	return pieces
}
