package timer

import (
	"sync"
	"time"
)

// Group is a set of timers addressed by key. Starting a timer under a key
// that is already pending cancels the previous one.
type Group struct {
	mu     sync.Mutex
	clock  Clock
	gen    uint64
	timers map[string]groupEntry
}

type groupEntry struct {
	gen  uint64
	stop Stopper
}

func NewGroup(clock Clock) *Group {
	return &Group{clock: clock, timers: make(map[string]groupEntry)}
}

func (g *Group) Start(key string, d time.Duration, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.timers[key]; ok {
		prev.stop.Stop()
	}
	g.gen++
	gen := g.gen
	stop := g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		cur, ok := g.timers[key]
		if !ok || cur.gen != gen {
			g.mu.Unlock()
			return
		}
		delete(g.timers, key)
		g.mu.Unlock()
		fn()
	})
	g.timers[key] = groupEntry{gen: gen, stop: stop}
}

// Stop cancels the timer under key. It reports whether one was pending.
func (g *Group) Stop(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.timers[key]
	if !ok {
		return false
	}
	entry.stop.Stop()
	delete(g.timers, key)
	return true
}

func (g *Group) Pending(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.timers[key]
	return ok
}

func (g *Group) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, entry := range g.timers {
		entry.stop.Stop()
		delete(g.timers, key)
	}
}
