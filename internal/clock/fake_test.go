package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAfterFuncFiresAtDeadline(t *testing.T) {
	t.Parallel()

	c := Fake(epoch)
	var fired []time.Time
	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, c.Now()) })

	c.Advance(299 * time.Millisecond)
	assert.Empty(t, fired)
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(time.Millisecond)
	assert.Equal(t, []time.Time{epoch.Add(300 * time.Millisecond)}, fired)
	assert.Zero(t, c.PendingCount())
}

func TestFakeStop(t *testing.T) {
	t.Parallel()

	c := Fake(epoch)
	calls := 0
	timer := c.AfterFunc(time.Second, func() { calls++ })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(2 * time.Second)
	assert.Zero(t, calls)
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	c := Fake(epoch)
	var order []string
	c.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	c.AfterFunc(time.Second, func() { order = append(order, "first") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "third") })

	c.Advance(5 * time.Second)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestFakeStopAfterFire(t *testing.T) {
	t.Parallel()

	c := Fake(epoch)
	timer := c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	assert.False(t, timer.Stop())
}
