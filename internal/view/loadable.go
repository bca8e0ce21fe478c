// ABOUTME: Explicit load-state holder for fetch-on-mount collections
// ABOUTME: Transitions only on caller action, never on a timer

// Package view holds small presentation-state helpers shared by the
// client binaries.
package view

import (
	"context"
	"sync"
)

// State is the lifecycle of a fetched collection.
type State int

const (
	NotLoaded State = iota
	Loading
	Loaded
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not-loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loadable tracks one backend-fetched value through
// NotLoaded → Loading → Loaded/Failed. A Failed or Loaded value can be
// re-fetched by calling Load again on explicit user action (menu refresh,
// retry); nothing refreshes on its own.
type Loadable[T any] struct {
	mu    sync.Mutex
	state State
	value T
	err   error
}

// Get returns the current value, state, and error. The value is only
// meaningful in the Loaded state, the error only in Failed.
func (l *Loadable[T]) Get() (T, State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.state, l.err
}

// Load runs fetch and records the outcome. A Load that overlaps another
// in-flight Load returns the zero value with no state change; callers
// gate concurrency themselves, this is just the backstop.
func (l *Loadable[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	if l.state == Loading {
		var zero T
		l.mu.Unlock()
		return zero, nil
	}
	l.state = Loading
	l.mu.Unlock()

	value, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = Failed
		l.err = err
		var zero T
		l.value = zero
		return zero, err
	}
	l.state = Loaded
	l.err = nil
	l.value = value
	return value, nil
}
