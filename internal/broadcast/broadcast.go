// Package broadcast provides a small single-producer, multi-consumer notification channel.
package broadcast

import "sync"

// Broadcaster delivers published values to every live subscriber in subscription order.
// Delivery is synchronous: Publish returns once all handlers have run.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// New returns an empty Broadcaster.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Publish hands v to every subscriber registered at the time of the call.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	snapshot := make([]subscription[T], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		// a handler may have cancelled a later subscriber during this delivery
		if !b.live(s.id) {
			continue
		}
		s.fn(v)
	}
}

// Len reports the number of live subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Broadcaster[T]) live(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
