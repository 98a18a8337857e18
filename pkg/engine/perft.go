package engine

import (
	"fmt"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
)

// Perft counts the leaf nodes of the full legal-move tree below pos at the given depth. It is a
// move-generation correctness check, not a production search: every node re-derives legal moves
// from scratch via board.GenerateMoves and applies them with Position.Make, never Board's
// incremental make/unmake path.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range board.GenerateMoves(pos) {
		next, ok := pos.Make(m)
		if !ok {
			continue
		}
		nodes += Perft(next, depth-1)
	}
	return nodes
}

// PerftDivide breaks down Perft one ply, reporting the leaf count contributed by each root move.
// Used to localize a move generator bug to a specific branch.
func PerftDivide(pos *board.Position, depth int) map[board.Move]uint64 {
	div := map[board.Move]uint64{}
	for _, m := range board.GenerateMoves(pos) {
		next, ok := pos.Make(m)
		if !ok {
			continue
		}
		if depth <= 1 {
			div[m] = 1
		} else {
			div[m] = Perft(next, depth-1)
		}
	}
	return div
}

// PerftScenario is one canonical move-generation verification case: a FEN position and the
// known-correct leaf count at a given depth.
type PerftScenario struct {
	Name  string
	FEN   string
	Depth int
	Nodes uint64
}

// PerftSuite is the standard six-position perft test suite used to validate a legal move
// generator against castling, en passant, promotion and check-evasion edge cases.
var PerftSuite = []PerftScenario{
	{Name: "startpos", FEN: fen.Initial, Depth: 5, Nodes: 4865609},
	{Name: "kiwipete", FEN: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", Depth: 4, Nodes: 4085603},
	{Name: "endgame", FEN: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", Depth: 5, Nodes: 674624},
	{Name: "tricky", FEN: "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", Depth: 4, Nodes: 422333},
	{Name: "mirror", FEN: "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", Depth: 4, Nodes: 2103487},
	{Name: "talkchess", FEN: "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", Depth: 4, Nodes: 3894594},
}

// PerftResult reports a single PerftSuite scenario's outcome.
type PerftResult struct {
	Scenario PerftScenario
	Got      uint64
}

func (r PerftResult) Passed() bool {
	return r.Got == r.Scenario.Nodes
}

func (r PerftResult) String() string {
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	return fmt.Sprintf("%v %v: depth=%v want=%v got=%v", status, r.Scenario.Name, r.Scenario.Depth, r.Scenario.Nodes, r.Got)
}

// RunPerftSuite runs every PerftSuite scenario and reports pass/fail for each.
func RunPerftSuite() []PerftResult {
	results := make([]PerftResult, 0, len(PerftSuite))
	for _, s := range PerftSuite {
		pos, _, _, _, err := fen.Decode(s.FEN)
		if err != nil {
			results = append(results, PerftResult{Scenario: s, Got: 0})
			continue
		}
		results = append(results, PerftResult{Scenario: s, Got: Perft(pos, s.Depth)})
	}
	return results
}
