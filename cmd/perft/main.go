// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/engine"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
	suite    = flag.Bool("suite", false, "Run the canonical six-position perft suite instead")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *suite {
		runSuite()
		return
	}

	if *position == "" {
		*position = fen.Initial
	}

	pos, _, _, _, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := engine.Perft(pos, i)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())

		if *divide && i == *depth {
			for m, count := range engine.PerftDivide(pos, i) {
				fmt.Printf("  %v: %v\n", m, count)
			}
		}
	}
}

func runSuite() {
	failed := false
	for _, r := range engine.RunPerftSuite() {
		fmt.Println(r)
		if !r.Passed() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
