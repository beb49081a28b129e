package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch_Remaining(t *testing.T) {
	sw := NewStopwatch(time.Minute)

	left := sw.Remaining()
	assert.Greater(t, left, 50*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
	assert.GreaterOrEqual(t, sw.Elapsed(), time.Duration(0))
}

func TestStopwatch_FloorsAtZero(t *testing.T) {
	sw := NewStopwatch(time.Nanosecond)
	time.Sleep(time.Millisecond)

	assert.Equal(t, time.Duration(0), sw.Remaining())
}

func TestStopwatch_DefaultBudget(t *testing.T) {
	sw := NewStopwatch(0)
	assert.Greater(t, sw.Remaining(), 9*time.Minute)
}
