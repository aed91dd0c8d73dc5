// Package view holds the UI-facing state container for asynchronous
// fetches: one cell per page section, with mutually exclusive
// loading/error/data states and generation tokens that discard responses
// superseded by a newer request.
package view

import "sync"

// Snapshot is an immutable view of a cell's state. Exactly one of Loading,
// Err, or settled data applies at a time.
type Snapshot[T any] struct {
	Loading bool
	Err     error
	Data    T
	HasData bool
}

// Cell tracks one asynchronously loaded value. Begin issues a generation
// token for each new request; Resolve and Fail only apply when their token
// is still the latest, so a stale response can never overwrite newer state.
type Cell[T any] struct {
	mu         sync.Mutex
	generation uint64
	state      Snapshot[T]

	subs    map[int]func(Snapshot[T])
	nextSub int
}

// NewCell returns an empty cell: not loading, no error, no data.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{subs: make(map[int]func(Snapshot[T]))}
}

// Begin marks the cell loading and returns the token that the eventual
// Resolve or Fail call must present. Any previously issued token becomes
// stale immediately.
func (c *Cell[T]) Begin() uint64 {
	c.mu.Lock()
	c.generation++
	token := c.generation
	c.state.Loading = true
	c.state.Err = nil
	snapshot := c.state
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
	return token
}

// Resolve settles the cell with data. It reports false and changes nothing
// when token is not the latest issued.
func (c *Cell[T]) Resolve(token uint64, data T) bool {
	c.mu.Lock()
	if token != c.generation {
		c.mu.Unlock()
		return false
	}
	c.state = Snapshot[T]{Data: data, HasData: true}
	snapshot := c.state
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
	return true
}

// Fail settles the cell with an error, clearing any previous data. It
// reports false and changes nothing when token is not the latest issued.
func (c *Cell[T]) Fail(token uint64, err error) bool {
	c.mu.Lock()
	if token != c.generation {
		c.mu.Unlock()
		return false
	}
	c.state = Snapshot[T]{Err: err}
	snapshot := c.state
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
	return true
}

// Snapshot returns the current state.
func (c *Cell[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for state change notifications and returns an
// unsubscribe function. Callbacks run synchronously on the mutating
// goroutine, outside the cell lock.
func (c *Cell[T]) Subscribe(fn func(Snapshot[T])) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cell[T]) subscribers() []func(Snapshot[T]) {
	out := make([]func(Snapshot[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify[T any](subs []func(Snapshot[T]), snapshot Snapshot[T]) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
