package timer

import (
	"time"

	"github.com/hako/durafmt"
)

// FormatDuration humanizes a duration for user-facing messages
// ("10 seconds", "1 minute 30 seconds", "1 day"). Negative values are
// reported as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return durafmt.Parse(d).String()
}
