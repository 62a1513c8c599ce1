package searchflow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	values []string
}

func (c *collector) add(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func TestDebouncerLatestValueWins(t *testing.T) {
	var got collector
	d := NewDebouncer(30*time.Millisecond, got.add)
	defer d.Stop()

	d.Push("a")
	d.Push("ay")
	d.Push("aya")
	d.Push("ayam")

	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"ayam"}, got.get())
}

func TestDebouncerSeparatedPushesBothFire(t *testing.T) {
	var got collector
	d := NewDebouncer(10*time.Millisecond, got.add)
	defer d.Stop()

	d.Push("es")
	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 2*time.Millisecond)
	d.Push("es teh")
	require.Eventually(t, func() bool { return len(got.get()) == 2 }, time.Second, 2*time.Millisecond)

	assert.Equal(t, []string{"es", "es teh"}, got.get())
}

func TestDebouncerCancelAndStop(t *testing.T) {
	var got collector
	d := NewDebouncer(20*time.Millisecond, got.add)

	d.Push("kopi")
	d.Cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.get())

	d.Push("kopi susu")
	d.Stop()
	d.Push("kopi tubruk")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.get())
}

func TestDebouncerStopWaitsForDelivery(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished bool
	var mu sync.Mutex

	d := NewDebouncer(time.Millisecond, func(string) {
		close(started)
		<-release
		mu.Lock()
		finished = true
		mu.Unlock()
	})

	d.Push("martabak")
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished)
}
