// Package command tokenizes inbound chat messages into timer commands.
package command

import (
	"slices"
	"strings"
)

type Kind int

const (
	// KindNone means the message is not a timer command at all.
	KindNone Kind = iota
	// KindUsage is a bare timer command without arguments.
	KindUsage
	KindStart
	KindCancel
	KindStatus
)

const commandWord = "timer"

var (
	stopTexts   = []string{"cancel", "stop", "end"}
	statusTexts = []string{"status", "current"}
)

type Command struct {
	Kind Kind
	// Arg is the raw first argument of a start command; validation is the
	// timer service's job.
	Arg string
}

// Parse interprets a message body. prefix is the configured command prefix
// ("!" by default).
func Parse(content, prefix string) Command {
	if !strings.HasPrefix(content, prefix) {
		return Command{Kind: KindNone}
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return Command{Kind: KindNone}
	}

	cmd := strings.ToLower(strings.TrimPrefix(fields[0], prefix))
	if cmd != commandWord {
		return Command{Kind: KindNone}
	}

	if len(fields) == 1 {
		return Command{Kind: KindUsage}
	}

	arg := strings.ToLower(fields[1])
	switch {
	case slices.Contains(stopTexts, arg):
		return Command{Kind: KindCancel}
	case slices.Contains(statusTexts, arg):
		return Command{Kind: KindStatus}
	default:
		return Command{Kind: KindStart, Arg: fields[1]}
	}
}
