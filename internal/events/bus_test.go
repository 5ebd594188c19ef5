package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/types"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func boardEvent(seq int64, pipelines ...types.PipelineID) Event {
	return Event{
		Type:        EventBoardChanged,
		Operation:   "move",
		PipelineIDs: pipelines,
		Timestamp:   time.Unix(0, 0),
		SequenceID:  seq,
	}
}

func TestEvent_Touches(t *testing.T) {
	t.Parallel()

	e := boardEvent(1, "a", "b")
	assert.True(t, e.Touches("a"))
	assert.True(t, e.Touches("b"))
	assert.True(t, e.Touches(""))
	assert.False(t, e.Touches("c"))
}

func TestBus_FiltersByPipeline(t *testing.T) {
	t.Parallel()

	bus := NewBus(4)
	all, cancelAll := bus.Subscribe("")
	defer cancelAll()
	onlyA, cancelA := bus.Subscribe("a")
	defer cancelA()

	bus.Publish(boardEvent(1, "b"))
	bus.Publish(boardEvent(2, "a"))

	require.Len(t, all, 2)
	require.Len(t, onlyA, 1)
	got := <-onlyA
	assert.Equal(t, int64(2), got.SequenceID)
}

func TestBus_DropsWhenFull(t *testing.T) {
	t.Parallel()

	bus := NewBus(1)
	ch, cancel := bus.Subscribe("")
	defer cancel()

	bus.Publish(boardEvent(1, "a"))
	bus.Publish(boardEvent(2, "a"))

	assert.Len(t, ch, 1)
	assert.Equal(t, int64(1), bus.Dropped())
	assert.Equal(t, int64(1), (<-ch).SequenceID)
}

func TestBus_CancelClosesChannelOnce(t *testing.T) {
	t.Parallel()

	bus := NewBus(0)
	ch, cancel := bus.Subscribe("a")
	assert.Equal(t, 1, bus.Subscribers())

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.Subscribers())

	// publishing after cancel must not panic on the closed channel
	bus.Publish(boardEvent(1, "a"))
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBufferSize)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, cancel := bus.Subscribe("")
			defer cancel()
			for j := 0; j < 10; j++ {
				bus.Publish(boardEvent(int64(j), "a"))
			}
			assert.NotEmpty(t, ch)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, bus.Subscribers())
}
