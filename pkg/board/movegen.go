package board

// GenerateMoves returns all fully legal moves for the side to move: no separate unmake-based
// filtering pass is needed because check, pin, and castle-path safety are folded into the
// per-piece masks below.
func GenerateMoves(p *Position) []Move {
	return generate(p, false)
}

// GenerateCaptures returns the quiescence move set: captures, en passant, and promotions
// (quiet ones included, since under-promoting or queening is never a "quiet" move worth
// pruning). Castling is omitted -- it is neither a capture nor a promotion. Check evasion
// still applies in full: if the side to move is in check, only evasions are returned.
func GenerateCaptures(p *Position) []Move {
	return generate(p, true)
}

func generate(p *Position, capturesOnly bool) []Move {
	us, them := p.Turn(), p.Turn().Opponent()
	kingSq := p.King(us)
	friendly := p.ColorBB(us)
	enemy := p.ColorBB(them)
	occ := p.Occupied()

	checkers := p.Checkers()

	var mask Bitboard
	switch checkers.PopCount() {
	case 0:
		mask = FullBitboard
	case 1:
		checkerSq := checkers.LastPopSquare()
		mask = Between(kingSq, checkerSq) | checkers
	default:
		mask = EmptyBitboard // double check: only the king may move
	}

	officerMask := mask
	if capturesOnly {
		officerMask &= enemy
	}

	var moves []Move
	if checkers.PopCount() < 2 {
		moves = append(moves, genPawnMoves(p, us, them, mask, capturesOnly)...)
		for _, piece := range []Piece{Knight, Bishop, Rook, Queen} {
			moves = append(moves, genOfficerMoves(p, us, piece, officerMask, occ, friendly)...)
		}
	}

	moves = append(moves, genKingMoves(p, us, them, kingSq, friendly, occ, capturesOnly)...)
	if !capturesOnly && checkers == 0 {
		moves = append(moves, genCastles(p, us, occ)...)
	}
	return moves
}

func genOfficerMoves(p *Position, us Color, piece Piece, mask Bitboard, occ, friendly Bitboard) []Move {
	var moves []Move
	for _, from := range p.PieceBB(us, piece).ToSquares() {
		if piece == Knight && p.IsPinned(from) {
			continue // a pinned knight's move pattern can never stay on a line
		}

		attacks := Attackboard(occ, from, piece) &^ friendly & mask
		if p.IsPinned(from) {
			attacks &= p.PinLine(from)
		}
		for _, to := range attacks.ToSquares() {
			moves = append(moves, NewMove(from, to, NoFlag))
		}
	}
	return moves
}

// PawnJumpStartRank returns the rank pawns of the given color double-push from.
func PawnJumpStartRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank2)
	}
	return BitRank(Rank7)
}

func pawnStep(c Color, sq Square) Square {
	if c == White {
		return sq + 8
	}
	return sq - 8
}

func addPawnMove(moves *[]Move, from, to Square, promoRank Bitboard) {
	if promoRank.IsSet(to) {
		*moves = append(*moves,
			NewMove(from, to, QueenPromoFlag),
			NewMove(from, to, RookPromoFlag),
			NewMove(from, to, BishopPromoFlag),
			NewMove(from, to, KnightPromoFlag))
		return
	}
	*moves = append(*moves, NewMove(from, to, NoFlag))
}

func genPawnMoves(p *Position, us, them Color, mask Bitboard, capturesOnly bool) []Move {
	var moves []Move
	occ := p.Occupied()
	promoRank := PawnPromotionRank(us)
	kingSq := p.King(us)
	checkers := p.Checkers()

	for _, from := range p.PieceBB(us, Pawn).ToSquares() {
		pinned := p.IsPinned(from)
		pinLine := FullBitboard
		if pinned {
			pinLine = p.PinLine(from)
		}

		// Captures (legal in both the normal and quiescence move sets).
		captures := PawnCaptureboard(us, BitMask(from)) & p.ColorBB(them) & mask
		if pinned {
			captures &= pinLine
		}
		for _, to := range captures.ToSquares() {
			addPawnMove(&moves, from, to, promoRank)
		}

		if !capturesOnly {
			single := PawnMoveboard(occ, us, BitMask(from)) & mask
			if pinned {
				single &= pinLine
			}
			for _, to := range single.ToSquares() {
				addPawnMove(&moves, from, to, promoRank)
			}

			if BitMask(from)&PawnJumpStartRank(us) != 0 {
				mid := pawnStep(us, from)
				if !occ.IsSet(mid) {
					to := pawnStep(us, mid)
					if !occ.IsSet(to) && mask.IsSet(to) && (!pinned || pinLine.IsSet(to)) {
						moves = append(moves, NewMove(from, to, NoFlag))
					}
				}
			}
		} else {
			quietPromo := PawnMoveboard(occ, us, BitMask(from)) & mask & promoRank
			if pinned {
				quietPromo &= pinLine
			}
			for _, to := range quietPromo.ToSquares() {
				addPawnMove(&moves, from, to, promoRank)
			}
		}

		// En passant: requires the dedicated horizontal-pin test, since removing both the
		// moving pawn and the captured pawn can expose the king along its rank.
		if ep, ok := p.EnPassant(); ok && PawnCaptureboard(us, BitMask(from)).IsSet(ep) {
			capSq := NewSquare(ep.File(), from.Rank())
			if (mask.IsSet(ep) || checkers.IsSet(capSq)) && (!pinned || pinLine.IsSet(ep)) {
				if p.enPassantHorizontalPinSafe(us, them, from, capSq, kingSq) {
					moves = append(moves, NewMove(from, ep, EnPassantFlag))
				}
			}
		}
	}
	return moves
}

// enPassantHorizontalPinSafe implements the en passant horizontal-pin test: after removing
// both the moving pawn and the captured pawn, if a rook or queen on the king's rank would then
// see through to the king, the capture is illegal.
func (p *Position) enPassantHorizontalPinSafe(us, them Color, from, capSq, kingSq Square) bool {
	if kingSq.Rank() != from.Rank() {
		return true
	}
	occAfter := p.Occupied().Clear(from).Clear(capSq)
	rookSliders := p.PieceBB(them, Rook) | p.PieceBB(them, Queen)
	return RookAttackboard(occAfter, kingSq)&rookSliders == 0
}

func genKingMoves(p *Position, us, them Color, kingSq Square, friendly, occ Bitboard, capturesOnly bool) []Move {
	var moves []Move
	targets := KingAttackboard(kingSq) &^ friendly
	if capturesOnly {
		targets &= p.ColorBB(them)
	}

	// Exclude the king itself from occupancy: a slider giving check still controls the square
	// directly behind the king along its line, and the king must not be allowed to step there.
	occWithoutKing := occ.Clear(kingSq)
	for _, to := range targets.ToSquares() {
		if p.AttackersTo(occWithoutKing, to, them) != 0 {
			continue
		}
		moves = append(moves, NewMove(kingSq, to, NoFlag))
	}
	return moves
}

type castleCandidate struct {
	right    Castling
	kingTo   Square
	empty    Bitboard
	kingPath []Square
}

func genCastles(p *Position, us Color, occ Bitboard) []Move {
	them := us.Opponent()
	kingSq := p.King(us)

	var candidates []castleCandidate
	if us == White {
		candidates = []castleCandidate{
			{WhiteKingSideCastle, G1, BitMask(F1) | BitMask(G1), []Square{E1, F1, G1}},
			{WhiteQueenSideCastle, C1, BitMask(B1) | BitMask(C1) | BitMask(D1), []Square{E1, D1, C1}},
		}
	} else {
		candidates = []castleCandidate{
			{BlackKingSideCastle, G8, BitMask(F8) | BitMask(G8), []Square{E8, F8, G8}},
			{BlackQueenSideCastle, C8, BitMask(B8) | BitMask(C8) | BitMask(D8), []Square{E8, D8, C8}},
		}
	}

	var moves []Move
	for _, c := range candidates {
		if !p.Castling().IsAllowed(c.right) {
			continue
		}
		if occ&c.empty != 0 {
			continue
		}
		safe := true
		for _, sq := range c.kingPath {
			if p.IsControlled(sq, them) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		flag := KingCastleFlag
		if c.right == WhiteQueenSideCastle || c.right == BlackQueenSideCastle {
			flag = QueenCastleFlag
		}
		moves = append(moves, NewMove(kingSq, c.kingTo, flag))
	}
	return moves
}
