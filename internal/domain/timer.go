package domain

import (
	"time"
)

// Key identifies the single timer slot of a channel. At most one timer
// exists per key at any instant.
type Key struct {
	SpaceID   string
	ChannelID string
}

// Timer is one active countdown bound to a channel. Records are owned by
// the registry; components outside the registry work on value copies.
type Timer struct {
	// EndAt is the absolute expiry time. Always after CreatedAt.
	EndAt     time.Time
	CreatedAt time.Time

	// SchedulerID is the user that started the timer. Immutable.
	SchedulerID string

	// LastReminderAt starts at CreatedAt and moves forward each time a
	// reminder is sent.
	LastReminderAt time.Time

	// LastReminderRef is the message reference of the most recent reminder,
	// empty when none was sent (or the send failed).
	LastReminderRef string

	// SchedulerResolutionFailed marks that the scheduler's identity could
	// not be resolved. Once set it is never cleared for the remaining
	// lifetime of the timer, so resolution is not retried every tick.
	SchedulerResolutionFailed bool
}

func NewTimer(schedulerID string, now time.Time, duration time.Duration) *Timer {
	return &Timer{
		EndAt:          now.Add(duration),
		CreatedAt:      now,
		SchedulerID:    schedulerID,
		LastReminderAt: now,
	}
}

// Remaining is the time left on the timer rounded to whole seconds,
// clamped at zero.
func (t *Timer) Remaining(now time.Time) time.Duration {
	d := t.EndAt.Sub(now).Round(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the timer has reached its end.
func (t *Timer) Expired(now time.Time) bool {
	return !now.Before(t.EndAt)
}
