package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/herohde/morlock/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents time control information: remaining clock time and increment per
// side, and how many moves remain until the next time control (0 means rest of game).
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int
}

// Limits returns the soft and hard search-time budget for the side to move.
//
// soft = my_time/min(20, moves_to_go) + increment/2
// hard = soft + soft/5
//
// Both are clamped to my_time: running out the clock is worse than stopping a ply early.
// After the soft limit, no new iterative-deepening depth should be started; the hard limit is
// a backstop that force-halts a depth already in progress.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	movesToGo := 20
	if t.Moves > 0 && t.Moves < movesToGo {
		movesToGo = t.Moves
	}

	soft := remainder/time.Duration(movesToGo) + inc/2
	hard := soft + soft/5

	if soft > remainder {
		soft = remainder
	}
	if hard > remainder {
		hard = remainder
	}
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f(+%.1f)<>%.1f(+%.1f)", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds())
	}
	return fmt.Sprintf("%.1f(+%.1f)<>%.1f(+%.1f)[moves=%v]", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds(), t.Moves)
}

// EnforceTimeControl enforces the time control limits, if any. Returns the soft limit and
// whether a time control is in effect at all.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
