package domain

import (
	"context"
	"time"
)

// TimerEventKind classifies a timer lifecycle transition.
type TimerEventKind string

const (
	EventStarted   TimerEventKind = "started"
	EventReplaced  TimerEventKind = "replaced"
	EventCancelled TimerEventKind = "cancelled"
	EventReminder  TimerEventKind = "reminder"
	EventExpired   TimerEventKind = "expired"
	// EventOrphaned is recorded when a timer is dropped because its space
	// or channel could no longer be resolved.
	EventOrphaned TimerEventKind = "orphaned"
)

type TimerEventRecord struct {
	RunID            string
	Kind             TimerEventKind
	SpaceID          string
	ChannelID        string
	SchedulerID      string
	RemainingSeconds int
	OccurredAt       time.Time
}

// TimerEventRecorder sinks timer lifecycle events for offline analysis.
// Recording is best-effort; implementations must not fail the caller.
type TimerEventRecorder interface {
	RecordEvent(ctx context.Context, record TimerEventRecord) error
	Close() error
}
