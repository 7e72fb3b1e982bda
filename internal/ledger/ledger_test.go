package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAppendNumbersAndTimestamps(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := New(clk.now)

	l.Append(StageParseQuery, "q")
	clk.advance(15 * time.Millisecond)
	l.Append(StageEvaluation, "ok")
	clk.advance(5 * time.Millisecond)
	l.Append(StageCommit, "done")

	steps := l.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, Step{Step: 1, Action: StageParseQuery, Detail: "q", Timestamp: 0}, steps[0])
	assert.Equal(t, int64(15), steps[1].Timestamp)
	assert.Equal(t, 3, steps[2].Step)
	assert.Equal(t, int64(20), steps[2].Timestamp)
}

func TestStepsReturnsCopy(t *testing.T) {
	l := New(nil)
	l.Append(StageCommit, "x")
	steps := l.Steps()
	steps[0].Detail = "mutated"
	assert.Equal(t, "x", l.Steps()[0].Detail)
}
