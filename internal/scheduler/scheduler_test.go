package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-channel-timer/internal/clock"
	"github.com/KasumiMercury/primind-channel-timer/internal/config"
	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
	"github.com/KasumiMercury/primind-channel-timer/internal/gateway"
	"github.com/KasumiMercury/primind-channel-timer/internal/registry"
	"github.com/KasumiMercury/primind-channel-timer/internal/service/cadence"
)

var testT0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(deletePrevious bool) *config.TimerConfig {
	return &config.TimerConfig{
		MaxDuration:            24 * time.Hour,
		TickInterval:           50 * time.Millisecond,
		CadenceTable:           cadence.DefaultTable,
		DeletePreviousReminder: deletePrevious,
		CommandPrefix:          "!",
	}
}

func newTestScheduler(t *testing.T, deletePrevious bool) (*Scheduler, *registry.Registry, *gateway.MockChatGateway, *clock.Fake) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := gateway.NewMockChatGateway(ctrl)
	reg := registry.New()
	clk := clock.NewFake(testT0)
	return New(reg, gw, clk, testConfig(deletePrevious), nil, nil), reg, gw, clk
}

func testKey() domain.Key {
	return domain.Key{SpaceID: "space-1", ChannelID: "channel-1"}
}

func expectResolutions(gw *gateway.MockChatGateway, member *gateway.Member) {
	gw.EXPECT().
		ResolveSpace(gomock.Any(), "space-1").
		Return(&gateway.Space{ID: "space-1", Name: "Test Space"}, nil).
		AnyTimes()
	gw.EXPECT().
		ResolveChannel(gomock.Any(), "space-1", "channel-1").
		Return(&gateway.Channel{ID: "channel-1", Name: "general"}, nil).
		AnyTimes()
	gw.EXPECT().
		ResolveMember(gomock.Any(), "space-1", "user-1").
		Return(member, nil).
		AnyTimes()
}

func TestRunPass_EmptyRegistryIsNoOp(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, false)
	// The strict mock fails the test on any gateway call.
	s.RunPass(context.Background())
}

func TestRunPass_ExpiryRemovesTimerAndNotifiesOnce(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	reg.Set(key, domain.NewTimer("user-1", testT0, 10*time.Second))

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", "@alice, your timer in this channel has ended!").
		Return(&gateway.MessageRef{ID: "msg-1"}, nil).
		Times(1)

	clk.Advance(10 * time.Second)
	s.RunPass(context.Background())

	if reg.Len() != 0 {
		t.Error("expired timer must be removed from the registry")
	}

	// A second pass over the now-empty registry must not notify again.
	s.RunPass(context.Background())
}

func TestRunPass_ReminderCadence(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	reg.Set(key, domain.NewTimer("user-1", testT0, 3700*time.Second))

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})

	// remaining=3700 is not an hourly multiple: nothing is sent.
	s.RunPass(context.Background())

	// remaining=3600 hits the hourly cadence.
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", "`Alice`, your timer in this channel has 1 hour remaining").
		Return(&gateway.MessageRef{ID: "reminder-1"}, nil).
		Times(1)

	clk.Advance(100 * time.Second)
	s.RunPass(context.Background())

	stored, ok := reg.Get(key)
	if !ok {
		t.Fatal("timer must survive a reminder")
	}
	if stored.LastReminderRef != "reminder-1" {
		t.Errorf("LastReminderRef: got %q, want %q", stored.LastReminderRef, "reminder-1")
	}
	if !stored.LastReminderAt.Equal(clk.Now()) {
		t.Errorf("LastReminderAt: got %v, want %v", stored.LastReminderAt, clk.Now())
	}
}

func TestRunPass_ReminderDebounce(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	reg.Set(key, domain.NewTimer("user-1", testT0, 3601*time.Second))

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", gomock.Any()).
		Return(&gateway.MessageRef{ID: "reminder-1"}, nil).
		Times(1)

	// lastReminderAt equals creation time, so the creation tick stays
	// silent; one second later the hourly boundary fires exactly once even
	// across repeated passes within the same second.
	clk.Advance(1001 * time.Millisecond)
	s.RunPass(context.Background())
	s.RunPass(context.Background())
}

func TestRunPass_SendFailureClearsReminderRef(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	timer := domain.NewTimer("user-1", testT0, 3610*time.Second)
	timer.LastReminderRef = "old-ref"
	reg.Set(key, timer)

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", gomock.Any()).
		Return(nil, gateway.ErrSendFailed).
		Times(1)

	clk.Advance(10 * time.Second)
	s.RunPass(context.Background())

	stored, _ := reg.Get(key)
	if stored.LastReminderRef != "" {
		t.Errorf("LastReminderRef after failed send: got %q, want empty", stored.LastReminderRef)
	}
	if !stored.LastReminderAt.Equal(clk.Now()) {
		t.Error("LastReminderAt must advance even when the send fails")
	}
}

func TestRunPass_UnresolvableSpaceDropsAllItsTimers(t *testing.T) {
	s, reg, gw, _ := newTestScheduler(t, false)
	reg.Set(domain.Key{SpaceID: "space-1", ChannelID: "channel-1"}, domain.NewTimer("user-1", testT0, time.Hour))
	reg.Set(domain.Key{SpaceID: "space-1", ChannelID: "channel-2"}, domain.NewTimer("user-2", testT0, time.Hour))

	gw.EXPECT().
		ResolveSpace(gomock.Any(), "space-1").
		Return(nil, gateway.ErrNotFound).
		Times(1)

	s.RunPass(context.Background())

	if reg.Len() != 0 {
		t.Errorf("registry len: got %d, want 0", reg.Len())
	}
}

func TestRunPass_UnresolvableChannelDropsOnlyThatTimer(t *testing.T) {
	s, reg, gw, _ := newTestScheduler(t, false)
	reg.Set(domain.Key{SpaceID: "space-1", ChannelID: "channel-1"}, domain.NewTimer("user-1", testT0, time.Hour))
	reg.Set(domain.Key{SpaceID: "space-1", ChannelID: "channel-2"}, domain.NewTimer("user-1", testT0, time.Hour))

	gw.EXPECT().
		ResolveSpace(gomock.Any(), "space-1").
		Return(&gateway.Space{ID: "space-1"}, nil).
		AnyTimes()
	gw.EXPECT().
		ResolveChannel(gomock.Any(), "space-1", "channel-1").
		Return(nil, gateway.ErrNotFound).
		AnyTimes()
	gw.EXPECT().
		ResolveChannel(gomock.Any(), "space-1", "channel-2").
		Return(&gateway.Channel{ID: "channel-2"}, nil).
		AnyTimes()
	gw.EXPECT().
		ResolveMember(gomock.Any(), "space-1", "user-1").
		Return(&gateway.Member{UserID: "user-1", DisplayName: "Alice"}, nil).
		AnyTimes()

	s.RunPass(context.Background())

	if _, ok := reg.Get(domain.Key{SpaceID: "space-1", ChannelID: "channel-1"}); ok {
		t.Error("timer with unresolvable channel must be dropped")
	}
	if _, ok := reg.Get(domain.Key{SpaceID: "space-1", ChannelID: "channel-2"}); !ok {
		t.Error("timer with resolvable channel must survive")
	}
}

func TestRunPass_SchedulerResolutionFailureIsSticky(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	reg.Set(key, domain.NewTimer("user-1", testT0, 10*time.Second))

	gw.EXPECT().
		ResolveSpace(gomock.Any(), "space-1").
		Return(&gateway.Space{ID: "space-1"}, nil).
		AnyTimes()
	gw.EXPECT().
		ResolveChannel(gomock.Any(), "space-1", "channel-1").
		Return(&gateway.Channel{ID: "channel-1"}, nil).
		AnyTimes()
	// Exactly one attempt: the failure is cached for the timer's lifetime.
	gw.EXPECT().
		ResolveMember(gomock.Any(), "space-1", "user-1").
		Return(nil, gateway.ErrNotFound).
		Times(1)

	s.RunPass(context.Background())

	stored, _ := reg.Get(key)
	if !stored.SchedulerResolutionFailed {
		t.Fatal("expected sticky resolution-failure flag")
	}

	// Second pass: no ResolveMember call; the expiry falls back to the
	// unknown-user identity.
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", "Unknown user, your timer in this channel has ended!").
		Return(&gateway.MessageRef{ID: "msg-1"}, nil).
		Times(1)

	clk.Advance(10 * time.Second)
	s.RunPass(context.Background())
}

func TestRunPass_DeletePreviousReminderBeforeExpiry(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, true)
	key := testKey()
	timer := domain.NewTimer("user-1", testT0, 10*time.Second)
	timer.LastReminderRef = "reminder-0"
	reg.Set(key, timer)

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})
	// Deletion being denied must not block the expiry notification.
	gw.EXPECT().
		DeleteMessage(gomock.Any(), "channel-1", "reminder-0").
		Return(gateway.ErrPermissionDenied).
		Times(1)
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", "@alice, your timer in this channel has ended!").
		Return(&gateway.MessageRef{ID: "msg-1"}, nil).
		Times(1)

	clk.Advance(10 * time.Second)
	s.RunPass(context.Background())

	if reg.Len() != 0 {
		t.Error("expired timer must be removed")
	}
}

func TestRunPass_DeletePreviousReminderDisabled(t *testing.T) {
	s, reg, gw, clk := newTestScheduler(t, false)
	key := testKey()
	timer := domain.NewTimer("user-1", testT0, 10*time.Second)
	timer.LastReminderRef = "reminder-0"
	reg.Set(key, timer)

	expectResolutions(gw, &gateway.Member{UserID: "user-1", DisplayName: "Alice", Mention: "@alice"})
	// No DeleteMessage expectation: the strict mock verifies the previous
	// reminder is left alone.
	gw.EXPECT().
		SendMessage(gomock.Any(), "channel-1", "", gomock.Any()).
		Return(&gateway.MessageRef{ID: "msg-1"}, nil).
		Times(1)

	clk.Advance(10 * time.Second)
	s.RunPass(context.Background())
}
