// ABOUTME: Typed event bus delivering turn events to observers in subscription order
// ABOUTME: A panicking handler is isolated so publishers never observe the fault

package eventbus

import (
	"fmt"
	"sync"
)

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscriber[T any] struct {
	id      int
	handler Handler[T]
}

// Bus is a typed event bus. It is safe for concurrent use.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []subscriber[T]
	nextID  int
	onPanic func(error)
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// OnPanic sets the callback that receives recovered handler panics.
// Without one, panics are swallowed.
func (b *Bus[T]) OnPanic(fn func(error)) {
	b.mu.Lock()
	b.onPanic = fn
	b.mu.Unlock()
}

// Subscribe registers a handler and returns an unsubscribe function.
// Calling the returned function more than once is a no-op.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber[T]{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends event to every handler synchronously, in the order they
// subscribed. The lock is not held while handlers run.
func (b *Bus[T]) Publish(event T) {
	if b == nil {
		return
	}
	b.mu.RLock()
	snapshot := make([]subscriber[T], len(b.subs))
	copy(snapshot, b.subs)
	onPanic := b.onPanic
	b.mu.RUnlock()

	for _, s := range snapshot {
		deliver(s.handler, event, onPanic)
	}
}

func deliver[T any](h Handler[T], event T, onPanic func(error)) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(fmt.Errorf("event handler panic: %v", r))
		}
	}()
	h(event)
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
