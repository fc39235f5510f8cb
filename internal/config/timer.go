package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-channel-timer/internal/service/cadence"
)

const (
	maxDurationSecondsEnv     = "TIMER_MAX_DURATION_SECONDS"
	tickIntervalMsEnv         = "TICK_INTERVAL_MS"
	reminderCadenceEnv        = "REMINDER_CADENCE"
	deletePreviousReminderEnv = "DELETE_PREVIOUS_REMINDER"
	commandPrefixEnv          = "COMMAND_PREFIX"

	defaultMaxDurationSeconds = 24 * 60 * 60
	defaultTickIntervalMs     = 50
	defaultCommandPrefix      = "!"
)

type TimerConfig struct {
	// MaxDuration is the exclusive upper bound on a timer's length.
	MaxDuration time.Duration

	// TickInterval is the floor period of the tick loop.
	TickInterval time.Duration

	// CadenceTable is the reminder cadence in seconds, descending.
	CadenceTable []int

	// DeletePreviousReminder controls whether an earlier reminder message
	// is removed (best-effort) before a new notification goes out.
	DeletePreviousReminder bool

	CommandPrefix string
}

func LoadTimerConfig() *TimerConfig {
	maxDurationSeconds := defaultMaxDurationSeconds
	if v := os.Getenv(maxDurationSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxDurationSeconds = parsed
		}
	}

	tickIntervalMs := defaultTickIntervalMs
	if v := os.Getenv(tickIntervalMsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			tickIntervalMs = parsed
		}
	}

	table := cadence.DefaultTable
	if v := os.Getenv(reminderCadenceEnv); v != "" {
		if parsed, ok := parseCadence(v); ok {
			table = parsed
		}
	}

	deletePrevious := true
	if v := os.Getenv(deletePreviousReminderEnv); v != "" {
		deletePrevious = v == "true"
	}

	prefix := os.Getenv(commandPrefixEnv)
	if prefix == "" {
		prefix = defaultCommandPrefix
	}

	return &TimerConfig{
		MaxDuration:            time.Duration(maxDurationSeconds) * time.Second,
		TickInterval:           time.Duration(tickIntervalMs) * time.Millisecond,
		CadenceTable:           table,
		DeletePreviousReminder: deletePrevious,
		CommandPrefix:          prefix,
	}
}

func parseCadence(v string) ([]int, bool) {
	parts := strings.Split(v, ",")
	table := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		table = append(table, n)
	}
	return table, len(table) > 0
}
