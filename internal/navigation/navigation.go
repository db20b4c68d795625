// Package navigation carries "go to page X" intents from stores to the view surface.
package navigation

import "sync"

type Route string

const (
	RouteNone    Route = ""
	RouteHome    Route = "home"
	RouteSignIn  Route = "signin"
	RouteProfile Route = "profile"
)

type Navigator interface {
	Navigate(route Route)
}

// Tracker remembers the latest requested route until the view consumes it.
type Tracker struct {
	mu      sync.Mutex
	pending Route
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Navigate(route Route) {
	t.mu.Lock()
	t.pending = route
	t.mu.Unlock()
}

// Take returns the pending route and clears it.
func (t *Tracker) Take() Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.pending
	t.pending = RouteNone
	return r
}
