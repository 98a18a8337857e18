package eval

import "github.com/herohde/morlock/pkg/board"

// mobilityWeight is the centipawn value of one additional legal destination square, per piece
// kind. Knights and bishops benefit most from extra squares; queen mobility is diluted since a
// queen usually has many destinations regardless of position quality.
var mobilityWeight = [board.NumPieces]board.Score{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   2,
	board.Queen:  1,
}

// mobilityScore sums, for each officer, the count of attacked squares not held by its own side
// (computed from the same attack tables the move generator uses; pins and checks are not taken
// into account) times its piece-kind weight, White-relative.
func mobilityScore(pos *board.Position) board.Score {
	var score board.Score
	occ := pos.Occupied()

	for _, piece := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for _, sq := range pos.PieceBB(board.White, piece).ToSquares() {
			n := (board.Attackboard(occ, sq, piece) &^ pos.ColorBB(board.White)).PopCount()
			score += board.Score(n) * mobilityWeight[piece]
		}
		for _, sq := range pos.PieceBB(board.Black, piece).ToSquares() {
			n := (board.Attackboard(occ, sq, piece) &^ pos.ColorBB(board.Black)).PopCount()
			score -= board.Score(n) * mobilityWeight[piece]
		}
	}
	return score
}

const (
	rookOpenFileBonus     board.Score = 20
	rookSemiOpenFileBonus board.Score = 10
	rookSeventhRankBonus  board.Score = 15
	queenCenterBonus      board.Score = 4
)

// rookActivityScore scores rooks for open/semi-open files and occupying the 7th (2nd for
// Black) rank, where they attack enemy pawns and cut off the king.
func rookActivityScore(pos *board.Position) board.Score {
	var score board.Score
	whitePawns, blackPawns := pos.PieceBB(board.White, board.Pawn), pos.PieceBB(board.Black, board.Pawn)

	for _, sq := range pos.PieceBB(board.White, board.Rook).ToSquares() {
		score += rookFileScore(sq.File(), whitePawns, blackPawns)
		if sq.Rank() == board.Rank7 {
			score += rookSeventhRankBonus
		}
	}
	for _, sq := range pos.PieceBB(board.Black, board.Rook).ToSquares() {
		score -= rookFileScore(sq.File(), blackPawns, whitePawns)
		if sq.Rank() == board.Rank2 {
			score -= rookSeventhRankBonus
		}
	}
	return score
}

func rookFileScore(f board.File, own, enemy board.Bitboard) board.Score {
	file := board.BitFile(f)
	switch {
	case own&file == 0 && enemy&file == 0:
		return rookOpenFileBonus
	case own&file == 0:
		return rookSemiOpenFileBonus
	default:
		return 0
	}
}

// centerDistance is the Chebyshev distance from sq to the nearest of the four center squares,
// used to reward queen centralization.
func centerDistance(sq board.Square) int {
	f, r := int(sq.File()), int(sq.Rank())
	df := minInt(abs(f-3), abs(f-4))
	dr := minInt(abs(r-3), abs(r-4))
	return maxInt(df, dr)
}

func queenCentralizationScore(pos *board.Position) board.Score {
	var score board.Score
	for _, sq := range pos.PieceBB(board.White, board.Queen).ToSquares() {
		score += board.Score(3-centerDistance(sq)) * queenCenterBonus
	}
	for _, sq := range pos.PieceBB(board.Black, board.Queen).ToSquares() {
		score -= board.Score(3-centerDistance(sq)) * queenCenterBonus
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
