// Package interact implements the optimistic state machine behind
// toggle-style interactions (like, vibe, poll vote, bookmark, follow).
// Each control instance tracks one interaction for one viewer, e.g. "this
// post's like state". The visible value is updated before the write is
// confirmed and always converges to backend truth: on success the related
// cached reads are marked stale so they refetch, on failure the value is
// reverted and a transient notification is emitted.
package interact

import (
	"context"
	"sync"
)

// State of a control instance
type State int

const (
	// Settled means the visible value matches the last confirmed write
	Settled State = iota
	// Pending means a write is in flight and the visible value is
	// optimistic
	Pending
)

// Notifier surfaces transient, user-visible failure messages. A failed
// interaction is never retried automatically; the notification is the only
// signal.
type Notifier interface {
	Notify(message string)
}

// Invalidator marks cached reads stale after a confirmed write. The shared
// query cache satisfies this.
type Invalidator interface {
	Invalidate(key string)
	InvalidatePrefix(prefix string)
}

// Control tracks the optimistic value of one interaction instance. The
// zero value of T means "no relation" (false, no vibe, no vote).
type Control[T comparable] struct {
	mu       sync.Mutex
	value    T
	inflight int

	notifier      Notifier
	invalidator   Invalidator
	staleKeys     []string
	stalePrefixes []string
}

// NewControl creates a settled control holding the current confirmed value
func NewControl[T comparable](initial T, notifier Notifier, invalidator Invalidator) *Control[T] {
	return &Control[T]{
		value:       initial,
		notifier:    notifier,
		invalidator: invalidator,
	}
}

// OnSuccess registers cache keys and prefixes to invalidate after each
// confirmed write, so feed listings, the single-post view, and profile
// post lists reconcile with backend truth on their next read
func (c *Control[T]) OnSuccess(keys []string, prefixes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staleKeys = keys
	c.stalePrefixes = prefixes
}

// Value returns the currently visible value, optimistic while pending
func (c *Control[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// State reports whether a write is in flight
func (c *Control[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight > 0 {
		return Pending
	}
	return Settled
}

// Do applies next to the visible value immediately, issues the write, and
// settles: on success the value is kept and registered cached reads are
// invalidated; on failure the value is reverted to what it was when this
// write began and the notifier is told. A second interaction while one is
// pending is allowed and not serialized; the backend's last write wins.
func (c *Control[T]) Do(ctx context.Context, next T, write func(context.Context) error) error {
	c.mu.Lock()
	previous := c.value
	c.value = next
	c.inflight++
	c.mu.Unlock()

	err := write(ctx)

	// OnSuccess may be called concurrently, so snapshot the registered
	// keys while still holding the lock.
	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.value = previous
	}
	staleKeys := append([]string(nil), c.staleKeys...)
	stalePrefixes := append([]string(nil), c.stalePrefixes...)
	c.mu.Unlock()

	if err != nil {
		if c.notifier != nil {
			c.notifier.Notify("That didn't go through. Try again?")
		}
		return err
	}

	if c.invalidator != nil {
		for _, key := range staleKeys {
			c.invalidator.Invalidate(key)
		}
		for _, prefix := range stalePrefixes {
			c.invalidator.InvalidatePrefix(prefix)
		}
	}
	return nil
}

// NextToggle computes the next like/bookmark/follow state: a boolean flip
func NextToggle(current bool) bool {
	return !current
}

// NextChoice computes the next single-choice state (vibe kind, poll option
// ID): choosing the current value clears it, anything else replaces it
func NextChoice[T comparable](current, chosen T) T {
	var none T
	if current == chosen {
		return none
	}
	return chosen
}
