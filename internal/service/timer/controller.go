// Package timer applies the domain rules for starting, cancelling and
// inspecting channel timers against the registry.
package timer

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-channel-timer/internal/clock"
	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
	"github.com/KasumiMercury/primind-channel-timer/internal/gateway"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-channel-timer/internal/registry"
)

type Controller struct {
	registry     *registry.Registry
	gateway      gateway.ChatGateway
	clock        clock.Clock
	maxDuration  time.Duration
	timerMetrics *metrics.TimerMetrics
	recorder     domain.TimerEventRecorder
}

func NewController(
	reg *registry.Registry,
	gw gateway.ChatGateway,
	clk clock.Clock,
	maxDuration time.Duration,
	timerMetrics *metrics.TimerMetrics,
	recorder domain.TimerEventRecorder,
) *Controller {
	return &Controller{
		registry:     reg,
		gateway:      gw,
		clock:        clk,
		maxDuration:  maxDuration,
		timerMetrics: timerMetrics,
		recorder:     recorder,
	}
}

// Start validates rawSeconds and installs a new timer at key, replacing and
// reporting any previous one. The registry is untouched when validation
// fails.
func (c *Controller) Start(ctx context.Context, key domain.Key, schedulerID, rawSeconds string) (*StartResult, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(rawSeconds))
	if err != nil {
		return nil, domain.ErrDurationNotANumber
	}
	if seconds <= 0 {
		return nil, domain.ErrDurationNotPositive
	}

	duration := time.Duration(seconds) * time.Second
	if duration >= c.maxDuration {
		return nil, domain.ErrDurationTooLong
	}

	result := &StartResult{Duration: duration}

	if prev, ok := c.registry.Get(key); ok {
		now := c.clock.Now()
		result.Replaced = &ReplacedTimer{
			Attribution: c.resolveAttribution(ctx, key.SpaceID, schedulerID, prev.SchedulerID),
			Remaining:   prev.Remaining(now),
		}

		slog.InfoContext(ctx, "replacing existing timer",
			slog.String("space_id", key.SpaceID),
			slog.String("channel_id", key.ChannelID),
			slog.String("previous_scheduler_id", prev.SchedulerID),
		)
		c.record(ctx, domain.EventReplaced, key, prev.SchedulerID, prev.Remaining(now))
		if c.timerMetrics != nil {
			c.timerMetrics.RecordTimerRemoved(ctx)
		}
	}

	now := c.clock.Now()
	c.registry.Set(key, domain.NewTimer(schedulerID, now, duration))

	slog.InfoContext(ctx, "timer started",
		slog.String("space_id", key.SpaceID),
		slog.String("channel_id", key.ChannelID),
		slog.String("scheduler_id", schedulerID),
		slog.Duration("duration", duration),
	)
	c.record(ctx, domain.EventStarted, key, schedulerID, duration)
	if c.timerMetrics != nil {
		c.timerMetrics.RecordTimerAdded(ctx)
	}

	return result, nil
}

// Cancel removes the timer at key and reports its state at the moment of
// cancellation.
func (c *Controller) Cancel(ctx context.Context, key domain.Key, askingUserID string) (*CancelResult, error) {
	t, ok := c.registry.Get(key)
	if !ok {
		return nil, domain.ErrNoActiveTimer
	}

	now := c.clock.Now()
	result := &CancelResult{
		Attribution: c.resolveAttribution(ctx, key.SpaceID, askingUserID, t.SchedulerID),
		Remaining:   t.Remaining(now),
	}

	// The timer may have expired or been replaced while the attribution
	// lookup was in flight; deleting whatever is there now matches the
	// cancel semantics either way.
	if c.registry.Delete(key) {
		if c.timerMetrics != nil {
			c.timerMetrics.RecordTimerRemoved(ctx)
		}
	}

	slog.InfoContext(ctx, "timer cancelled",
		slog.String("space_id", key.SpaceID),
		slog.String("channel_id", key.ChannelID),
		slog.String("asking_user_id", askingUserID),
	)
	c.record(ctx, domain.EventCancelled, key, t.SchedulerID, t.Remaining(now))

	return result, nil
}

// Status reports the timer at key without mutating anything.
func (c *Controller) Status(ctx context.Context, key domain.Key, askingUserID string) (*StatusResult, error) {
	t, ok := c.registry.Get(key)
	if !ok {
		return nil, domain.ErrNoActiveTimer
	}

	return &StatusResult{
		Attribution: c.resolveAttribution(ctx, key.SpaceID, askingUserID, t.SchedulerID),
		Remaining:   t.Remaining(c.clock.Now()),
	}, nil
}

// resolveAttribution resolves whose timer is being talked about. Lookup
// failures degrade to the unknown-user label; they are not cached here,
// unlike the tick path's sticky flag.
func (c *Controller) resolveAttribution(ctx context.Context, spaceID, askingUserID, schedulerID string) Attribution {
	if askingUserID == schedulerID {
		return Attribution{IsAsker: true}
	}

	member, err := c.gateway.ResolveMember(ctx, spaceID, schedulerID)
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve timer scheduler",
			slog.String("space_id", spaceID),
			slog.String("scheduler_id", schedulerID),
			slog.String("error", err.Error()),
		)
		return Attribution{}
	}

	return Attribution{DisplayName: member.DisplayName}
}

func (c *Controller) record(ctx context.Context, kind domain.TimerEventKind, key domain.Key, schedulerID string, remaining time.Duration) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.RecordEvent(ctx, domain.TimerEventRecord{
		Kind:             kind,
		SpaceID:          key.SpaceID,
		ChannelID:        key.ChannelID,
		SchedulerID:      schedulerID,
		RemainingSeconds: int(remaining / time.Second),
		OccurredAt:       c.clock.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record timer event",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}
