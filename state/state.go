package state

import "sync"

// Listener receives every snapshot set after it was registered.
type Listener[T any] func(value T)

type subscriber[T any] struct {
	id       uint64
	since    uint64
	listener Listener[T]
}

type entry[T any] struct {
	seq   uint64
	value T
}

// Value is a reactive single-value container.
//
// Snapshots are delivered from a FIFO queue drained by the first Set in
// progress: a Set issued from a listener, or from another goroutine while a
// drain runs, updates the value at once and returns; its listeners run once
// the earlier snapshots were delivered. Update's fn runs under the lock and
// must not call back into the Value.
type Value[T any] struct {
	mux         sync.Mutex
	value       T
	seq         uint64
	pending     []entry[T]
	draining    bool
	subscribers []subscriber[T]
	nextID      uint64
}

// Get returns the current snapshot
func (v *Value[T]) Get() T {
	v.mux.Lock()
	defer v.mux.Unlock()
	return v.value
}

// Set replaces the snapshot and notifies listeners
func (v *Value[T]) Set(value T) {
	v.Update(func(T) T { return value })
}

// Update applies fn to the current snapshot and sets the result, returning it.
func (v *Value[T]) Update(fn func(current T) T) T {
	v.mux.Lock()
	v.value = fn(v.value)
	v.seq++
	next := v.value
	v.pending = append(v.pending, entry[T]{seq: v.seq, value: next})
	if v.draining {
		v.mux.Unlock()
		return next
	}
	v.draining = true
	v.mux.Unlock()
	v.drain()
	return next
}

// Subscribe registers listener for subsequent snapshots and returns an unsubscribe func.
func (v *Value[T]) Subscribe(listener Listener[T]) func() {
	v.mux.Lock()
	defer v.mux.Unlock()
	return v.subscribe(listener)
}

// Listen is like Subscribe but calls listener with the current snapshot first.
func (v *Value[T]) Listen(listener Listener[T]) func() {
	v.mux.Lock()
	unsubscribe := v.subscribe(listener)
	current := v.value
	v.mux.Unlock()
	listener(current)
	return unsubscribe
}

// Len returns number of registered listeners
func (v *Value[T]) Len() int {
	v.mux.Lock()
	defer v.mux.Unlock()
	return len(v.subscribers)
}

func (v *Value[T]) subscribe(listener Listener[T]) func() {
	v.nextID++
	id := v.nextID
	v.subscribers = append(v.subscribers, subscriber[T]{id: id, since: v.seq, listener: listener})
	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) drain() {
	done := false
	defer func() {
		if !done { // listener panicked
			v.mux.Lock()
			v.pending = nil
			v.draining = false
			v.mux.Unlock()
		}
	}()
	for {
		v.mux.Lock()
		if len(v.pending) == 0 {
			v.pending = nil
			v.draining = false
			v.mux.Unlock()
			done = true
			return
		}
		next := v.pending[0]
		v.pending = v.pending[1:]
		subscribers := make([]subscriber[T], len(v.subscribers))
		copy(subscribers, v.subscribers)
		v.mux.Unlock()
		for _, s := range subscribers {
			if s.since >= next.seq || !v.active(s.id) {
				continue
			}
			s.listener(next.value)
		}
	}
}

func (v *Value[T]) active(id uint64) bool {
	v.mux.Lock()
	defer v.mux.Unlock()
	for _, s := range v.subscribers {
		if s.id == id {
			return true
		}
	}
	return false
}

func (v *Value[T]) remove(id uint64) {
	v.mux.Lock()
	defer v.mux.Unlock()
	for i, s := range v.subscribers {
		if s.id == id {
			v.subscribers = append(v.subscribers[:i:i], v.subscribers[i+1:]...)
			return
		}
	}
}

// New creates a Value holding initial
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}
