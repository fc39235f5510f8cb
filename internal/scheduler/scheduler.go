// Package scheduler drives the periodic pass over the timer registry that
// emits reminder and expiry notifications.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/rs/xid"

	"github.com/KasumiMercury/primind-channel-timer/internal/clock"
	"github.com/KasumiMercury/primind-channel-timer/internal/config"
	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
	"github.com/KasumiMercury/primind-channel-timer/internal/gateway"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/tracing"
	"github.com/KasumiMercury/primind-channel-timer/internal/registry"
	"github.com/KasumiMercury/primind-channel-timer/internal/service/cadence"
	timersvc "github.com/KasumiMercury/primind-channel-timer/internal/service/timer"
)

// unknownUser is the fallback identity when the scheduler's user cannot be
// resolved on the tick path.
const unknownUser = "Unknown user"

// reminderDebounce suppresses a second reminder for the same whole-second
// boundary when consecutive passes land inside it.
const reminderDebounce = time.Second

type entryOutcome int

const (
	outcomeNone entryOutcome = iota
	outcomeReminder
	outcomeExpired
	outcomeDropped
)

type Scheduler struct {
	registry     *registry.Registry
	gateway      gateway.ChatGateway
	clock        clock.Clock
	cfg          *config.TimerConfig
	timerMetrics *metrics.TimerMetrics
	recorder     domain.TimerEventRecorder
}

func New(
	reg *registry.Registry,
	gw gateway.ChatGateway,
	clk clock.Clock,
	cfg *config.TimerConfig,
	timerMetrics *metrics.TimerMetrics,
	recorder domain.TimerEventRecorder,
) *Scheduler {
	return &Scheduler{
		registry:     reg,
		gateway:      gw,
		clock:        clk,
		cfg:          cfg,
		timerMetrics: timerMetrics,
		recorder:     recorder,
	}
}

// Run loops until ctx is cancelled. After each pass the next one is
// scheduled after max(0, interval - elapsed), so passes never overlap and
// a slow pass does not accumulate backlog.
func (s *Scheduler) Run(ctx context.Context) {
	slog.InfoContext(ctx, "tick scheduler started",
		slog.Duration("interval", s.cfg.TickInterval),
	)

	for {
		started := time.Now()
		s.RunPass(ctx)

		delay := s.cfg.TickInterval - time.Since(started)
		if delay < 0 {
			delay = 0
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.InfoContext(ctx, "tick scheduler stopped")
			return
		case <-timer.C:
		}
	}
}

// RunPass walks every registered timer once. A failure on one entry never
// aborts the rest of the pass.
func (s *Scheduler) RunPass(ctx context.Context) {
	runID := xid.New().String()
	ctx, span := tracing.StartTickPassSpan(ctx, runID, s.registry.Len())
	defer span.End()

	started := time.Now()
	var expired, reminders, dropped int

	for _, spaceID := range s.registry.Spaces() {
		if _, err := s.gateway.ResolveSpace(ctx, spaceID); err != nil {
			slog.WarnContext(ctx, "removing timers of unresolvable space",
				slog.String("run_id", runID),
				slog.String("space_id", spaceID),
				slog.String("error", err.Error()),
			)
			dropped += s.dropSpace(ctx, runID, spaceID)
			continue
		}

		for _, ent := range s.registry.SpaceEntries(spaceID) {
			switch s.safeProcessEntry(ctx, runID, ent) {
			case outcomeReminder:
				reminders++
			case outcomeExpired:
				expired++
			case outcomeDropped:
				dropped++
			}
		}
	}

	if s.timerMetrics != nil {
		s.timerMetrics.RecordTick(ctx, time.Since(started))
	}
	tracing.RecordTickPassResult(span, expired, reminders, dropped, nil)
}

// safeProcessEntry shields the pass from a panic in one entry.
func (s *Scheduler) safeProcessEntry(ctx context.Context, runID string, ent registry.Entry) (result entryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while processing timer entry",
				slog.String("run_id", runID),
				slog.String("space_id", ent.Key.SpaceID),
				slog.String("channel_id", ent.Key.ChannelID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			result = outcomeNone
		}
	}()
	return s.processEntry(ctx, runID, ent)
}

func (s *Scheduler) processEntry(ctx context.Context, runID string, ent registry.Entry) entryOutcome {
	key := ent.Key
	t := ent.Timer

	if _, err := s.gateway.ResolveChannel(ctx, key.SpaceID, key.ChannelID); err != nil {
		slog.WarnContext(ctx, "removing timer of unresolvable channel",
			slog.String("run_id", runID),
			slog.String("space_id", key.SpaceID),
			slog.String("channel_id", key.ChannelID),
			slog.String("error", err.Error()),
		)
		if s.registry.Delete(key) {
			if s.timerMetrics != nil {
				s.timerMetrics.RecordTimerRemoved(ctx)
			}
			s.record(ctx, runID, domain.EventOrphaned, key, t.SchedulerID, t.Remaining(s.clock.Now()))
		}
		return outcomeDropped
	}

	mention := unknownUser
	displayName := unknownUser
	if !t.SchedulerResolutionFailed {
		member, err := s.gateway.ResolveMember(ctx, key.SpaceID, t.SchedulerID)
		if err != nil {
			slog.WarnContext(ctx, "failed to resolve timer scheduler, not retrying",
				slog.String("run_id", runID),
				slog.String("space_id", key.SpaceID),
				slog.String("channel_id", key.ChannelID),
				slog.String("scheduler_id", t.SchedulerID),
				slog.String("error", err.Error()),
			)
			s.registry.MarkSchedulerInvalid(key)
		} else {
			if member.Mention != "" {
				mention = member.Mention
			}
			if member.DisplayName != "" {
				displayName = member.DisplayName
			}
		}
	}

	now := s.clock.Now()
	if t.Expired(now) {
		return s.expire(ctx, runID, key, t, mention)
	}
	return s.remind(ctx, runID, key, t, displayName, now)
}

func (s *Scheduler) expire(ctx context.Context, runID string, key domain.Key, t domain.Timer, mention string) entryOutcome {
	if s.cfg.DeletePreviousReminder {
		s.tryRemovePreviousReminder(ctx, key.ChannelID, t.LastReminderRef)
	}

	content := fmt.Sprintf("%s, your timer in this channel has ended!", mention)
	if _, err := s.gateway.SendMessage(ctx, key.ChannelID, "", content); err != nil {
		slog.WarnContext(ctx, "failed to send expiry notification",
			slog.String("run_id", runID),
			slog.String("channel_id", key.ChannelID),
			slog.String("error", err.Error()),
		)
		if s.timerMetrics != nil {
			s.timerMetrics.RecordNotificationFailed(ctx, "expiry")
		}
	} else if s.timerMetrics != nil {
		s.timerMetrics.RecordNotificationSent(ctx, "expiry")
	}

	if s.registry.Delete(key) {
		if s.timerMetrics != nil {
			s.timerMetrics.RecordTimerRemoved(ctx)
		}
	}
	s.record(ctx, runID, domain.EventExpired, key, t.SchedulerID, 0)

	slog.InfoContext(ctx, "timer expired",
		slog.String("run_id", runID),
		slog.String("space_id", key.SpaceID),
		slog.String("channel_id", key.ChannelID),
		slog.String("scheduler_id", t.SchedulerID),
	)
	return outcomeExpired
}

func (s *Scheduler) remind(ctx context.Context, runID string, key domain.Key, t domain.Timer, displayName string, now time.Time) entryOutcome {
	remaining := t.Remaining(now)
	remainingSeconds := int(remaining / time.Second)

	if _, due := cadence.Due(remainingSeconds, s.cfg.CadenceTable); !due {
		return outcomeNone
	}
	if now.Sub(t.LastReminderAt) <= reminderDebounce {
		return outcomeNone
	}

	if s.cfg.DeletePreviousReminder {
		s.tryRemovePreviousReminder(ctx, key.ChannelID, t.LastReminderRef)
	}

	content := fmt.Sprintf("`%s`, your timer in this channel has %s remaining",
		displayName, timersvc.FormatDuration(remaining))

	ref := ""
	msg, err := s.gateway.SendMessage(ctx, key.ChannelID, "", content)
	if err != nil {
		slog.WarnContext(ctx, "failed to send reminder notification",
			slog.String("run_id", runID),
			slog.String("channel_id", key.ChannelID),
			slog.String("error", err.Error()),
		)
		if s.timerMetrics != nil {
			s.timerMetrics.RecordNotificationFailed(ctx, "reminder")
		}
	} else {
		ref = msg.ID
		if s.timerMetrics != nil {
			s.timerMetrics.RecordNotificationSent(ctx, "reminder")
		}
	}

	// The timer may have been cancelled while the send was in flight.
	if !s.registry.UpdateReminder(key, now, ref) {
		return outcomeNone
	}
	s.record(ctx, runID, domain.EventReminder, key, t.SchedulerID, remaining)
	return outcomeReminder
}

// tryRemovePreviousReminder is best-effort housekeeping: the bot may lack
// the permission, or the message may already be gone.
func (s *Scheduler) tryRemovePreviousReminder(ctx context.Context, channelID, ref string) {
	if ref == "" {
		return
	}
	if err := s.gateway.DeleteMessage(ctx, channelID, ref); err != nil {
		slog.WarnContext(ctx, "failed to remove previous reminder",
			slog.String("channel_id", channelID),
			slog.String("message_id", ref),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Scheduler) dropSpace(ctx context.Context, runID, spaceID string) int {
	entries := s.registry.SpaceEntries(spaceID)
	n := s.registry.DeleteSpace(spaceID)
	for _, ent := range entries {
		if s.timerMetrics != nil {
			s.timerMetrics.RecordTimerRemoved(ctx)
		}
		s.record(ctx, runID, domain.EventOrphaned, ent.Key, ent.Timer.SchedulerID, ent.Timer.Remaining(s.clock.Now()))
	}
	return n
}

func (s *Scheduler) record(ctx context.Context, runID string, kind domain.TimerEventKind, key domain.Key, schedulerID string, remaining time.Duration) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.RecordEvent(ctx, domain.TimerEventRecord{
		RunID:            runID,
		Kind:             kind,
		SpaceID:          key.SpaceID,
		ChannelID:        key.ChannelID,
		SchedulerID:      schedulerID,
		RemainingSeconds: int(remaining / time.Second),
		OccurredAt:       s.clock.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record timer event",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}
