package eval

import "github.com/herohde/morlock/pkg/board"

// NominalValue is the absolute centipawn value of a piece kind, White-relative. The King has
// an arbitrary large value so it never nets out in a material differential.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of a move, given the captured and promoted piece
// kinds already resolved by the caller -- it does not require a Position.
func NominalValueGain(captured board.Piece, promo board.Piece, isEnPassant bool) board.Score {
	var gain board.Score
	if isEnPassant {
		return NominalValue(board.Pawn)
	}
	if captured != board.NoPiece {
		gain += NominalValue(captured)
	}
	if promo != board.NoPiece {
		gain += NominalValue(promo) - NominalValue(board.Pawn)
	}
	return gain
}

// materialScore returns the White-relative material balance: sum over piece kinds of
// (white count - black count) * nominal value.
func materialScore(pos *board.Position) board.Score {
	var score board.Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		diff := pos.PieceBB(board.White, p).PopCount() - pos.PieceBB(board.Black, p).PopCount()
		score += board.Score(diff) * NominalValue(p)
	}
	return score
}

// bishopPairBonus rewards holding both bishops, a well-known small positional plus independent
// of material count. Any two bishops count, including two on the same square color after an
// underpromotion.
const bishopPairBonus board.Score = 30

func bishopPairScore(pos *board.Position) board.Score {
	var score board.Score
	if pos.PieceBB(board.White, board.Bishop).PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.PieceBB(board.Black, board.Bishop).PopCount() >= 2 {
		score -= bishopPairBonus
	}
	return score
}
