package board

import "fmt"

// Score is a signed position or move score in centipawns, positive favors White. Search,
// evaluation, and the transposition table all share this type so alpha-beta bounds, stored
// scores, and UCI "score cp" output speak the same unit without per-layer conversion.
type Score int32

const (
	MinScore Score = -(1 << 20)
	MaxScore Score = 1 << 20
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}
