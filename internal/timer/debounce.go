package timer

import "time"

const debounceKey = "debounce"

// Debouncer runs only the last function triggered within a quiet window.
type Debouncer struct {
	group  *Group
	window time.Duration
}

func NewDebouncer(clock Clock, window time.Duration) *Debouncer {
	return &Debouncer{group: NewGroup(clock), window: window}
}

func (d *Debouncer) Trigger(fn func()) {
	d.group.Start(debounceKey, d.window, fn)
}

func (d *Debouncer) Cancel() bool {
	return d.group.Stop(debounceKey)
}
