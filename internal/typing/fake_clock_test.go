package typing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock(epoch)
	var order []string
	var firedAt []time.Time

	record := func(name string) func() {
		return func() {
			order = append(order, name)
			firedAt = append(firedAt, clock.Now())
		}
	}
	clock.AfterFunc(30*time.Millisecond, record("c"))
	clock.AfterFunc(10*time.Millisecond, record("a"))
	clock.AfterFunc(10*time.Millisecond, record("b"))

	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, epoch.Add(10*time.Millisecond), firedAt[0])
	assert.Equal(t, epoch.Add(25*time.Millisecond), clock.Now())

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, clock.Pending())
}

func TestFakeClockNestedScheduling(t *testing.T) {
	clock := NewFakeClock(epoch)
	count := 0
	var again func()
	again = func() {
		count++
		clock.AfterFunc(10*time.Millisecond, again)
	}
	clock.AfterFunc(10*time.Millisecond, again)

	clock.Advance(35 * time.Millisecond)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, clock.Pending())
}

func TestFakeClockStop(t *testing.T) {
	clock := NewFakeClock(epoch)
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	clock.Advance(time.Second)
	assert.False(t, fired)

	timer = clock.AfterFunc(-time.Second, func() { fired = true })
	assert.False(t, fired)
	clock.Advance(0)
	assert.True(t, fired)
	assert.False(t, timer.Stop())
}
