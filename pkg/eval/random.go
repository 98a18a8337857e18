package eval

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/herohde/morlock/pkg/board"
)

// Noisy decorates an Evaluator with a small amount of randomness: the limit is in millipawns,
// and a value uniform in [-limit/2, limit/2) is drawn and added to the score rounded toward zero
// to centipawns. A limit of 0 disables it, returning the wrapped evaluator unchanged; this
// is useful for engine-vs-engine test matches that need decorrelated games from the same position.
// The limit is runtime-adjustable (see SetLimit) so a UCI/console driver can dial noise up or
// down without reconstructing the search root; it is read concurrently by parallel search
// workers, hence the atomic, and rand.Rand itself is not safe for concurrent use, hence the mutex
// around the one call site that draws from it.
type Noisy struct {
	Evaluator
	mu    sync.Mutex
	rand  *rand.Rand
	limit atomic.Int32
}

func NewNoisy(e Evaluator, limit int, seed int64) *Noisy {
	n := &Noisy{Evaluator: e, rand: rand.New(rand.NewSource(seed))}
	n.limit.Store(int32(limit))
	return n
}

// SetLimit adjusts the noise band in millipawns. Zero disables noise.
func (n *Noisy) SetLimit(limit int) {
	n.limit.Store(int32(limit))
}

func (n *Noisy) Evaluate(pos *board.Position) board.Score {
	score := n.Evaluator.Evaluate(pos)

	limit := int(n.limit.Load())
	if limit <= 0 {
		return score
	}

	n.mu.Lock()
	delta := n.rand.Intn(limit) - limit/2
	n.mu.Unlock()

	return score + board.Score(delta/10)
}
