package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/herohde/morlock/pkg/engine"
	"github.com/herohde/morlock/pkg/engine/console"
	"github.com/herohde/morlock/pkg/engine/uci"
	"github.com/herohde/morlock/pkg/eval"
	"github.com/herohde/morlock/pkg/search"
	"github.com/seekerror/logw"
)

var (
	noise   = flag.Int("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
	hash    = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	threads = flag.Uint("threads", 4, "Number of search worker threads at the root")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: morlock [options]

MORLOCK is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	noisy := eval.NewNoisy(eval.NewStandard(int(*hash)/16), *noise, time.Now().UnixNano())
	s := &search.AlphaBeta{
		Eval:    noisy,
		Threads: int(*threads),
	}
	e := engine.New(ctx, "morlock", "herohde", s,
		engine.WithOptions(engine.Options{
			Hash:    *hash,
			Noise:   uint(*noise),
			Threads: *threads,
		}),
		engine.WithNoise(noisy),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
