// Package memory is an in-process, channel-based engine.Broadcaster: every
// mutation event is fanned out to every subscriber of its topic over a
// buffered channel, never blocking the mutating goroutine.
package memory

import (
	"sync"

	"github.com/soltiHQ/gridstore/engine"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity used when a
// caller does not request a specific size via SubscribeBuffered.
const DefaultSubscriberBuffer = 64

// Broadcaster fans out engine.Event values to per-topic subscriber channels.
// A topic is a view fingerprint (spec §4.3 "Observability"); the zero value
// is ready to use.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string][]*subscriber
	next uint64
}

type subscriber struct {
	id uint64
	ch chan engine.Event
}

// New returns a ready-to-use Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{subs: make(map[string][]*subscriber)}
}

// Subscribe registers a new listener for topic and returns a channel of
// events plus an unsubscribe function. The channel is closed by Unsubscribe,
// never by a send; callers must call unsubscribe exactly once when done.
func (b *Broadcaster) Subscribe(topic string) (<-chan engine.Event, func()) {
	return b.SubscribeBuffered(topic, DefaultSubscriberBuffer)
}

// SubscribeBuffered is Subscribe with an explicit channel buffer size.
func (b *Broadcaster) SubscribeBuffered(topic string, buffer int) (<-chan engine.Event, func()) {
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[string][]*subscriber)
	}
	b.next++
	sub := &subscriber{id: b.next, ch: make(chan engine.Event, buffer)}
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	return sub.ch, func() { b.unsubscribe(topic, sub.id) }
}

func (b *Broadcaster) unsubscribe(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			list = append(list[:i], list[i+1:]...)
			close(s.ch)
			break
		}
	}
	if len(list) == 0 {
		delete(b.subs, topic)
	} else {
		b.subs[topic] = list
	}
}

// Publish implements engine.Broadcaster. Delivery is non-blocking: a
// subscriber whose buffer is full drops the event rather than stalling the
// mutation that produced it, the same trade-off the teacher's bus makes by
// logging-and-continuing on a handler error instead of retrying.
func (b *Broadcaster) Publish(topic string, msg engine.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs[topic] {
		select {
		case s.ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports how many listeners are currently registered for
// topic, for admin/diagnostic use.
func (b *Broadcaster) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

var _ engine.Broadcaster = (*Broadcaster)(nil)
