package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bomtally/internal/report"
)

func TestCache_PutGet(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	r := &report.Report{RunID: "run-1", Unmatched: []string{"X"}}

	c.Put(r)

	got, ok := c.Get("run-1")
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_StatsAndClear(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	c.Put(&report.Report{RunID: "a"})
	c.Put(&report.Report{RunID: "b"})
	assert.Equal(t, Stats{Runs: 2, TTL: "5m0s"}, c.GetStats())

	c.Clear()
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, Stats{Runs: 0, TTL: "5m0s"}, c.GetStats())
}

func TestCache_Expiry(t *testing.T) {
	c := New(50*time.Millisecond, time.Minute)
	c.Put(&report.Report{RunID: "short"})

	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok, "expired runs are not returned")
}

func TestCache_Concurrent(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('A' + i%26))
			c.Put(&report.Report{RunID: id})
			c.Get(id)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.ItemCount(), 26)
}
