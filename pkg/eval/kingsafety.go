package eval

import "github.com/herohde/morlock/pkg/board"

// attackWeight is the contribution of one attacking piece of that kind toward the king-danger
// index, per the "get_piece_attack_weight"-style lookup used by stronger hand-written
// evaluators: queens and rooks threaten the king zone far more than a single knight or bishop.
var attackWeight = [board.NumPieces]int{
	board.Knight: 2,
	board.Bishop: 2,
	board.Rook:   3,
	board.Queen:  5,
}

// kingSafetyTable converts an attack-unit index into a centipawn penalty of i*i/2, growing
// quadratically until it is capped at 500.
var kingSafetyTable [128]board.Score

func init() {
	for i := range kingSafetyTable {
		v := i * i / 2
		if v > 500 {
			v = 500
		}
		kingSafetyTable[i] = board.Score(v)
	}
}

const pawnShieldPenalty board.Score = 12

// kingSafetyScore returns the White-relative king-safety term: attacker-weighted danger around
// each king plus a pawn-shield completeness bonus in front of it.
func kingSafetyScore(pos *board.Position) board.Score {
	score := pawnShieldScore(pos, board.White) - pawnShieldScore(pos, board.Black)
	score -= kingDangerScore(pos, board.White)
	score += kingDangerScore(pos, board.Black)
	return score
}

// kingDangerScore weights enemy pieces that attack the king's own square or any adjacent
// square, converting the summed attack units through the quadratic, capped kingSafetyTable.
func kingDangerScore(pos *board.Position, us board.Color) board.Score {
	them := us.Opponent()
	kingSq := pos.King(us)
	zone := board.KingAttackboard(kingSq).Set(kingSq)
	occ := pos.Occupied()

	units := 0
	for _, piece := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for _, sq := range pos.PieceBB(them, piece).ToSquares() {
			if board.Attackboard(occ, sq, piece)&zone != 0 {
				units += attackWeight[piece]
			}
		}
	}
	if units >= len(kingSafetyTable) {
		units = len(kingSafetyTable) - 1
	}
	return kingSafetyTable[units]
}

// pawnShieldScore penalizes missing pawns on the up-to-three files around the king, one or two
// ranks in front of it.
func pawnShieldScore(pos *board.Position, us board.Color) board.Score {
	kingSq := pos.King(us)
	f := kingSq.File()

	files := board.BitFile(f)
	if f > board.FileA {
		files |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		files |= board.BitFile(f + 1)
	}

	present := (pos.PieceBB(us, board.Pawn) & files & shieldRanks(us, kingSq.Rank())).PopCount()
	missing := 3 - present
	if missing < 0 {
		missing = 0
	}
	return -board.Score(missing) * pawnShieldPenalty
}

// shieldRanks returns the one or two ranks directly in front of the king, from c's perspective.
func shieldRanks(c board.Color, kingRank board.Rank) board.Bitboard {
	var mask board.Bitboard
	if c == board.White {
		for rr := int(kingRank) + 1; rr <= int(kingRank)+2 && rr <= int(board.Rank8); rr++ {
			mask |= board.BitRank(board.Rank(rr))
		}
	} else {
		for rr := int(kingRank) - 1; rr >= int(kingRank)-2 && rr >= int(board.Rank1); rr-- {
			mask |= board.BitRank(board.Rank(rr))
		}
	}
	return mask
}

// mopUpThreshold gates mop-up scoring to positions with at least a rook's worth of material
// imbalance -- otherwise pushing the opponent's king around is not actually winning anything.
var mopUpThreshold = NominalValue(board.Rook)

// mopUpScore rewards driving the weaker side's king to the edge of the board and bringing the
// stronger side's king close to it, active only deep in the endgame with a clear material edge.
func mopUpScore(pos *board.Position, ph int) board.Score {
	if ph > 6 {
		return 0
	}

	diff := nonPawnMaterial(pos, board.White) - nonPawnMaterial(pos, board.Black)
	if diff < 0 {
		diff = -diff
	}
	if diff < mopUpThreshold {
		return 0
	}

	strongKing, weakKing := pos.King(board.White), pos.King(board.Black)
	sign := board.Score(1)
	if nonPawnMaterial(pos, board.White) < nonPawnMaterial(pos, board.Black) {
		strongKing, weakKing = weakKing, strongKing
		sign = -1
	}

	cmd := centerManhattanDistance(weakKing)
	dist := squareDistance(strongKing, weakKing)
	return sign * (board.Score(cmd)*10 + board.Score(14-dist)*4)
}

func nonPawnMaterial(pos *board.Position, c board.Color) board.Score {
	var v board.Score
	for _, p := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		v += board.Score(pos.PieceBB(c, p).PopCount()) * NominalValue(p)
	}
	return v
}

func centerManhattanDistance(sq board.Square) int {
	f, r := int(sq.File()), int(sq.Rank())
	return abs(f*2-7) + abs(r*2-7)
}

func squareDistance(a, b board.Square) int {
	df := abs(int(a.File()) - int(b.File()))
	dr := abs(int(a.Rank()) - int(b.Rank()))
	return maxInt(df, dr)
}
