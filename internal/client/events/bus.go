// Package events is a small in-process publish/subscribe bus. It carries the
// "session invalidated" signal from the request gateway to every live
// session manager.
package events

import "sync"

type Topic string

// SessionInvalidated is published when the backend rejects the stored token.
const SessionInvalidated Topic = "session.invalidated"

type Handler func()

type subscription struct {
	id int
	fn Handler
}

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic Topic, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler of topic synchronously, in subscription order.
// Handlers may subscribe or unsubscribe while being called.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	list := append([]subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	for _, s := range list {
		s.fn()
	}
}
