// Package stream is the in-process pub/sub layer: a single global topic for
// post lifecycle events and lazily-created per-owner topics for reactions.
package stream

import (
	"sync"
	"sync/atomic"
)

const (
	postBuffer     = 1000
	reactionBuffer = 100
)

// Envelope wraps a delivered event. Gap marks the point where a slow
// receiver lost messages; the receiver keeps consuming afterwards.
type Envelope[T any] struct {
	Event T
	Gap   bool
}

type subscriber[T any] struct {
	ch      chan Envelope[T]
	dropped atomic.Int64
}

// Subscription is one receiver attached to a topic. Close detaches it
// promptly so publishes stop filling its buffer.
type Subscription[T any] struct {
	C      <-chan Envelope[T]
	cancel func()
	once   sync.Once
}

func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
}

// Topic is a broadcast channel with a bounded per-subscriber buffer.
// Publish never blocks: a full subscriber drops the message and sees a gap
// marker once it catches up; zero subscribers discard the event silently.
type Topic[T any] struct {
	mu     sync.RWMutex
	subs   map[*subscriber[T]]struct{}
	buffer int
}

func NewTopic[T any](buffer int) *Topic[T] {
	return &Topic[T]{subs: map[*subscriber[T]]struct{}{}, buffer: buffer}
}

// NewPostTopic builds the global post-event topic.
func NewPostTopic() *Topic[PostEvent] {
	return NewTopic[PostEvent](postBuffer)
}

func (t *Topic[T]) Subscribe() *Subscription[T] {
	sub := &subscriber[T]{ch: make(chan Envelope[T], t.buffer)}

	t.mu.Lock()
	t.subs[sub] = struct{}{}
	t.mu.Unlock()

	return &Subscription[T]{
		C: sub.ch,
		cancel: func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if _, ok := t.subs[sub]; ok {
				delete(t.subs, sub)
				close(sub.ch)
			}
		},
	}
}

func (t *Topic[T]) Publish(event T) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for sub := range t.subs {
		if sub.dropped.Load() > 0 {
			select {
			case sub.ch <- Envelope[T]{Gap: true}:
				sub.dropped.Store(0)
			default:
				// still behind, this event is lost too
				sub.dropped.Add(1)
				continue
			}
		}
		select {
		case sub.ch <- Envelope[T]{Event: event}:
		default:
			sub.dropped.Add(1)
		}
	}
}

// ReactionTopics maps post owners to their reaction topics. Topics are
// created on first subscribe under the write lock, so concurrent
// subscribers for the same owner never race into duplicate topics.
type ReactionTopics struct {
	mu     sync.RWMutex
	topics map[string]*Topic[ReactionEvent]
}

func NewReactionTopics() *ReactionTopics {
	return &ReactionTopics{topics: map[string]*Topic[ReactionEvent]{}}
}

func (r *ReactionTopics) Subscribe(ownerID string) *Subscription[ReactionEvent] {
	r.mu.Lock()
	topic, ok := r.topics[ownerID]
	if !ok {
		topic = NewTopic[ReactionEvent](reactionBuffer)
		r.topics[ownerID] = topic
	}
	r.mu.Unlock()

	return topic.Subscribe()
}

// Publish delivers to the owner's topic. Nobody ever subscribed means no
// topic exists and the event is dropped; that is not an error.
func (r *ReactionTopics) Publish(ownerID string, event ReactionEvent) {
	r.mu.RLock()
	topic := r.topics[ownerID]
	r.mu.RUnlock()

	if topic != nil {
		topic.Publish(event)
	}
}
