// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package observable provides a minimal behavior-subject primitive: a mutable
value with synchronous reads and subscription channels that always start with
the current value.

# Semantics

  - Get returns the latest published value.
  - Subscribe delivers the current value immediately, then every subsequent Set.
  - Delivery is conflating: a slow consumer never blocks a publisher; it may
    skip intermediate values but always eventually observes the newest one.

Consumers that re-render from state snapshots (UI layers, route guards) only
care about the latest value, which is exactly what conflation guarantees.
*/
package observable

import "sync"

// Value is a thread-safe observable container holding a single value of type T.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

// New creates a Value seeded with the given initial value.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

// Get returns the current value synchronously.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set publishes a new value to all subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = val
	for _, ch := range v.subs {
		offer(ch, val)
	}
}

// Update applies fn to the current value under the lock and publishes the result.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = fn(v.current)
	for _, ch := range v.subs {
		offer(ch, v.current)
	}
	return v.current
}

// Subscribe registers a new observer.
//
// The returned channel is primed with the current value. The cancel function
// removes the subscription and closes the channel; it is safe to call twice.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++

	ch := make(chan T, 1)
	ch <- v.current
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if sub, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// offer performs a conflating, non-blocking send: if the subscriber has not
// consumed the previous value yet, it is replaced by the newer one.
func offer[T any](ch chan T, val T) {
	select {
	case ch <- val:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- val:
		default:
		}
	}
}
