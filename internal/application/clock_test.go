package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClockNow(t *testing.T) {
	t.Parallel()

	var c Clock = SystemClock{}
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before))
	assert.WithinDuration(t, time.Now(), got, time.Second)
}
