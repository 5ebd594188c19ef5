package events

import (
	"time"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
)

// Event notifies subscribers that a new board snapshot was committed
type Event struct {
	Type        EventType
	Operation   string             // Mutation that produced the snapshot (e.g. "move")
	PipelineIDs []types.PipelineID // Pipelines whose contents changed
	Timestamp   time.Time          // When the snapshot was committed
	SequenceID  int64              // Snapshot version; strictly increasing
}

// Touches reports whether the event changed pipelineID. An empty id matches
// every event.
func (e Event) Touches(pipelineID types.PipelineID) bool {
	if pipelineID == "" {
		return true
	}
	for _, id := range e.PipelineIDs {
		if id == pipelineID {
			return true
		}
	}
	return false
}
