// Package cadence decides when a running timer is due for a reminder.
package cadence

// DefaultTable is the reminder cadence in seconds, largest interval first:
// hourly while far out, then every 30/10/5 minutes, then 60/30/10/5 seconds
// as the deadline approaches.
var DefaultTable = []int{3600, 1800, 600, 300, 60, 30, 10, 5}

// Due reports whether a reminder should fire at remainingSeconds before
// expiry, together with the interval that matched.
//
// The table is scanned in order for the first interval that both divides
// remainingSeconds evenly and is at least remainingSeconds; when no entry
// qualifies the first (largest) interval applies. With remainingSeconds
// below the smallest entry and not divisible by the fallback, no reminder
// fires at all for that tick.
func Due(remainingSeconds int, table []int) (int, bool) {
	if len(table) == 0 || remainingSeconds <= 0 {
		return 0, false
	}

	interval := table[0]
	for _, i := range table {
		if i >= remainingSeconds && remainingSeconds%i == 0 {
			interval = i
			break
		}
	}

	return interval, remainingSeconds%interval == 0
}
