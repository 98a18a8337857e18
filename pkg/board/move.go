package board

import "fmt"

// MoveFlag is the special-move tag carried in a Move's high bits.
type MoveFlag uint8

const (
	NoFlag MoveFlag = iota
	KnightPromoFlag
	BishopPromoFlag
	RookPromoFlag
	QueenPromoFlag
	KingCastleFlag
	QueenCastleFlag
	EnPassantFlag
)

// Move is a 16-bit encoding of a chess move: low 6 bits = from-square, next 6 bits =
// to-square, high 4 bits = special flag. The compact form matters because moves are stored
// by the million in the transposition table and move lists.
type Move uint16

// NoMove is the zero value, distinguishable from any real move because a1a1 is never legal.
const NoMove Move = 0

func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

func (m Move) From() Square {
	return Square(m & 0x3f)
}

func (m Move) To() Square {
	return Square((m >> 6) & 0x3f)
}

func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> 12) & 0xf)
}

func (m Move) IsPromotion() bool {
	switch m.Flag() {
	case KnightPromoFlag, BishopPromoFlag, RookPromoFlag, QueenPromoFlag:
		return true
	default:
		return false
	}
}

// Promotion returns the promoted-to piece, if this move is a promotion.
func (m Move) Promotion() (Piece, bool) {
	switch m.Flag() {
	case KnightPromoFlag:
		return Knight, true
	case BishopPromoFlag:
		return Bishop, true
	case RookPromoFlag:
		return Rook, true
	case QueenPromoFlag:
		return Queen, true
	default:
		return NoPiece, false
	}
}

func flagForPromotion(p Piece) MoveFlag {
	switch p {
	case Knight:
		return KnightPromoFlag
	case Bishop:
		return BishopPromoFlag
	case Rook:
		return RookPromoFlag
	case Queen:
		return QueenPromoFlag
	default:
		return NoFlag
	}
}

func (m Move) IsCastle() bool {
	return m.Flag() == KingCastleFlag || m.Flag() == QueenCastleFlag
}

func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassantFlag
}

// ParseUCIMove decodes the from/to/promotion triple out of pure algebraic coordinate
// notation, such as "a2a4" or "a7a8q". It does not resolve castling or en passant flags:
// the caller matches the triple against the side-to-move's legal move list (see
// Position.FindMove), since the same from/to pair is ambiguous without board context.
func ParseUCIMove(str string) (from, to Square, promo Piece, err error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return 0, 0, NoPiece, fmt.Errorf("invalid move: %q", str)
	}

	from, err = ParseSquare(runes[0], runes[1])
	if err != nil {
		return 0, 0, NoPiece, fmt.Errorf("invalid from in move %q: %w", str, err)
	}
	to, err = ParseSquare(runes[2], runes[3])
	if err != nil {
		return 0, 0, NoPiece, fmt.Errorf("invalid to in move %q: %w", str, err)
	}

	promo = NoPiece
	if len(runes) == 5 {
		p, ok := ParsePiece(runes[4])
		if !ok || p == Pawn || p == King {
			return 0, 0, NoPiece, fmt.Errorf("invalid promotion in move %q", str)
		}
		promo = p
	}
	return from, to, promo, nil
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	if p, ok := m.Promotion(); ok {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), p)
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
