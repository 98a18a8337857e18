// Package search contains the parallel alpha-beta search and its supporting move ordering and
// transposition table.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herohde/morlock/pkg/board"
)

// ErrHalted indicates that the search was halted before it completed naturally.
var ErrHalted = errors.New("search halted")

// Context carries the per-search parameters threaded through every node: the alpha-beta
// window, the shared transposition table, and an optional forced line to explore first
// regardless of move ordering -- used by the console driver to report a score breakdown for a
// specific candidate move.
type Context struct {
	Alpha, Beta board.Score
	TT           TranspositionTable
	Ponder       []board.Move
}

// TranspositionTableFactory constructs a transposition table of the given byte size.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// Search is a fixed-depth search algorithm over a board position.
type Search interface {
	// Search returns the node count, best score (from the side-to-move's perspective) and
	// principal variation for b at the given depth.
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, board.Score, []board.Move, error)
}

// PV represents the principal variation found for some search depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.FormatMoves(p.Moves))
}
