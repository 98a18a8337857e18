package eval

import "github.com/herohde/morlock/pkg/board"

// MateScore is a large negative constant such that a checkmated side-to-move returns
// MateScore+ply: shorter mates are less negative, so the search prefers the fastest mate
// found and avoids the slowest escape from one being delivered against it.
const MateScore board.Score = -30000

// mateBand bounds how many plies out a mate score schedule extends; any score this close to
// MateScore (or its negation) is a mate encoding, not a material/positional evaluation.
const mateBand = 1000

// MateThreshold is the score at or beyond which a value encodes a winning mate-in-N found by
// the side to move; its negation bounds a losing mate-in-N being delivered against it. Exported
// for the transposition table, which must convert a mate score between its ply-relative search
// form and a ply-independent form before storing it under a hash that may be probed again at a
// different ply.
const MateThreshold = -MateScore - mateBand

// IsMateScore reports whether s falls in the mate-score band, i.e., was produced by a
// checkmate rather than ordinary evaluation.
func IsMateScore(s board.Score) bool {
	return s <= MateScore+mateBand || s >= -MateScore-mateBand
}

// MateDistance returns the number of plies to the mate encoded in s, and whether s encodes a
// mate at all. A positive distance means the side to move delivers mate in that many plies;
// negative means the side to move is mated in that many plies.
func MateDistance(s board.Score) (int, bool) {
	switch {
	case s <= MateScore+mateBand:
		return -int(s - MateScore), true
	case s >= -MateScore-mateBand:
		return int(-MateScore - s), true
	default:
		return 0, false
	}
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black. Used to convert a
// White-relative score into a side-to-move-relative one and back, the convention the negamax
// search works in.
func Unit(c board.Color) board.Score {
	if c == board.White {
		return 1
	}
	return -1
}
