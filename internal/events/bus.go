package events

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// DefaultBufferSize is the per-subscriber channel capacity
const DefaultBufferSize = 64

type subscription struct {
	pipelineID types.PipelineID
	ch         chan Event
}

// Bus fans events out to in-process subscribers. Delivery is best effort:
// a subscriber whose buffer is full misses the event rather than stalling the
// board writer. Subscribers re-read the latest snapshot on any event, so a
// dropped event only delays a refresh.
type Bus struct {
	mu         sync.RWMutex
	subs       map[int]*subscription
	nextID     int
	bufferSize int
	dropped    atomic.Int64
}

// NewBus creates a bus with the given per-subscriber buffer (<= 0 uses
// DefaultBufferSize).
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		subs:       make(map[int]*subscription),
		bufferSize: bufferSize,
	}
}

// Subscribe registers a new subscriber
func (b *Bus) Subscribe(pipelineID types.PipelineID) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	sub := &subscription{pipelineID: pipelineID, ch: make(chan Event, b.bufferSize)}
	b.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish delivers event to every matching subscriber without blocking
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !event.Touches(sub.pipelineID) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
			slog.Debug("event dropped, subscriber buffer full",
				"event_type", event.Type,
				"sequence_id", event.SequenceID,
				"subscription", sub.pipelineID)
		}
	}
}

// Subscribers returns the number of active subscriptions
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a buffer was full
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}
