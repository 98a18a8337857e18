package searchctl

import (
	"testing"
	"time"

	"github.com/herohde/morlock/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestTimeControlLimitsRestOfGame(t *testing.T) {
	tc := TimeControl{White: 60 * time.Second, WhiteInc: 2 * time.Second}

	soft, hard := tc.Limits(board.White)
	// soft = 60s/20 + 2s/2 = 3s + 1s = 4s; hard = 4s + 4s/5 = 4.8s
	assert.Equal(t, 4*time.Second, soft)
	assert.Equal(t, 4*time.Second+800*time.Millisecond, hard)
}

func TestTimeControlLimitsFewMovesToGo(t *testing.T) {
	tc := TimeControl{Black: 30 * time.Second, Moves: 5}

	soft, hard := tc.Limits(board.Black)
	// moves_to_go = min(20,5) = 5; soft = 30s/5 = 6s; hard = 6s + 6s/5 = 7.2s
	assert.Equal(t, 6*time.Second, soft)
	assert.Equal(t, 7*time.Second+200*time.Millisecond, hard)
}

func TestTimeControlLimitsClampToRemainingTime(t *testing.T) {
	tc := TimeControl{White: 2 * time.Second, Moves: 1}

	soft, hard := tc.Limits(board.White)
	assert.LessOrEqual(t, soft, tc.White)
	assert.LessOrEqual(t, hard, tc.White)
}
