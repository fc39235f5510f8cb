package timer

import (
	"fmt"
	"time"
)

// Attribution says whose timer a result talks about: the asking user's own,
// or another user identified by display name.
type Attribution struct {
	IsAsker     bool
	DisplayName string
}

// Label renders the attribution for use in a sentence. The capitalized form
// is used at sentence starts.
func (a Attribution) Label(capitalize bool) string {
	if a.IsAsker {
		if capitalize {
			return "Your timer"
		}
		return "your timer"
	}

	name := a.DisplayName
	if name == "" {
		name = "Unknown User"
	}
	return fmt.Sprintf("`%s`'s timer", name)
}

// ReplacedTimer describes the timer that a start command displaced.
type ReplacedTimer struct {
	Attribution Attribution
	Remaining   time.Duration
}

type StartResult struct {
	Duration time.Duration
	// Replaced is set when a previous timer existed at the same key and
	// was cancelled by this start.
	Replaced *ReplacedTimer
}

type CancelResult struct {
	Attribution Attribution
	Remaining   time.Duration
}

type StatusResult struct {
	Attribution Attribution
	Remaining   time.Duration
}
