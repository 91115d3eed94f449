// Package eventbus implements a lossy, fixed-capacity broadcast of sync
// events.
//
// Publishers never block: events are appended to a ring buffer and the
// oldest event is overwritten once the buffer is full. Every subscription
// keeps its own cursor into the ring; a subscriber that falls further behind
// than the capacity skips to the oldest retained event and the number of
// skipped events is reported by Subscription.Dropped.
package eventbus

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-state-sync/models"
)

// DefaultCapacity is the number of events retained when no capacity is given.
const DefaultCapacity = 100

// ErrClosed is returned by Recv once the bus or the subscription is closed
// and all retained events have been consumed.
var ErrClosed = errors.New("event bus closed")

// Bus broadcasts models.SyncEvent values to any number of subscribers.
type Bus struct {
	mu     sync.Mutex
	ring   []models.SyncEvent
	head   uint64 // sequence number of the next event to be published
	notify chan struct{}
	closed bool
}

// New returns a bus retaining up to capacity events. A non-positive capacity
// selects DefaultCapacity.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		ring:   make([]models.SyncEvent, capacity),
		notify: make(chan struct{}),
	}
}

// Capacity returns the number of events retained by the bus.
func (b *Bus) Capacity() int {
	return len(b.ring)
}

// Publish appends ev to the ring and wakes waiting subscribers. It never
// blocks on subscribers and is a no-op after Close.
func (b *Bus) Publish(ev models.SyncEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.ring[b.head%uint64(len(b.ring))] = ev
	b.head++

	close(b.notify)
	b.notify = make(chan struct{})
}

// Subscribe returns a subscription that receives events published from now
// on. Events published before the call are not delivered.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &Subscription{bus: b, next: b.head, done: make(chan struct{})}
}

// Close stops the bus. Subscribers drain the events already retained and then
// receive ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.notify)
}

// Subscription is a single subscriber's cursor into a Bus. A Subscription is
// meant to be consumed by one goroutine.
type Subscription struct {
	bus     *Bus
	next    uint64
	dropped uint64

	closeOnce sync.Once
	done      chan struct{}
}

// Recv blocks until the next event is available, ctx is cancelled, or the
// bus or subscription is closed.
func (s *Subscription) Recv(ctx context.Context) (models.SyncEvent, error) {
	for {
		ev, ok, wait, closed := s.poll()
		if ok {
			return ev, nil
		}
		if closed {
			return models.SyncEvent{}, ErrClosed
		}

		select {
		case <-wait:
		case <-s.done:
			return models.SyncEvent{}, ErrClosed
		case <-ctx.Done():
			return models.SyncEvent{}, ctx.Err()
		}
	}
}

// TryRecv returns the next event without blocking. ok is false when no event
// is pending.
func (s *Subscription) TryRecv() (ev models.SyncEvent, ok bool) {
	ev, ok, _, _ = s.poll()
	return ev, ok
}

// Dropped returns the number of events this subscriber missed because it
// lagged behind by more than the bus capacity.
func (s *Subscription) Dropped() uint64 {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.dropped
}

// Close detaches the subscription. A blocked Recv returns ErrClosed.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Subscription) poll() (ev models.SyncEvent, ok bool, wait <-chan struct{}, closed bool) {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-s.done:
		return models.SyncEvent{}, false, nil, true
	default:
	}

	capacity := uint64(len(b.ring))
	if b.head > capacity && s.next < b.head-capacity {
		oldest := b.head - capacity
		s.dropped += oldest - s.next
		s.next = oldest
	}

	if s.next < b.head {
		ev = b.ring[s.next%capacity]
		s.next++
		return ev, true, nil, false
	}

	return models.SyncEvent{}, false, b.notify, b.closed
}
