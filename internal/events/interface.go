package events

import "github.com/thenoetrevino/dealflow/internal/types"

// Publisher receives an event for every committed board snapshot.
// Publish is called synchronously by the board writer and must not block.
type Publisher interface {
	Publish(event Event)
}

// Subscriber lets a presentation layer watch for board changes
type Subscriber interface {
	// Subscribe returns a channel receiving events that touch pipelineID
	// ("" = all pipelines) and a cancel func that closes the channel.
	Subscribe(pipelineID types.PipelineID) (<-chan Event, func())
}

// Compile-time verification that *Bus implements both sides
var (
	_ Publisher  = (*Bus)(nil)
	_ Subscriber = (*Bus)(nil)
)
