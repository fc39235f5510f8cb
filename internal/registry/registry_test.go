package registry

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
)

func testKey(space, channel string) domain.Key {
	return domain.Key{SpaceID: space, ChannelID: channel}
}

func TestRegistry_SetOverwritesExisting(t *testing.T) {
	reg := New()
	key := testKey("space-1", "channel-1")
	now := time.Now()

	reg.Set(key, domain.NewTimer("user-1", now, 10*time.Second))
	reg.Set(key, domain.NewTimer("user-2", now, 20*time.Second))

	got, ok := reg.Get(key)
	if !ok {
		t.Fatal("expected timer at key")
	}
	if got.SchedulerID != "user-2" {
		t.Errorf("scheduler: got %q, want %q", got.SchedulerID, "user-2")
	}
	if reg.Len() != 1 {
		t.Errorf("len: got %d, want 1", reg.Len())
	}
}

func TestRegistry_GetReturnsSnapshot(t *testing.T) {
	reg := New()
	key := testKey("space-1", "channel-1")
	now := time.Now()
	reg.Set(key, domain.NewTimer("user-1", now, 10*time.Second))

	snapshot, _ := reg.Get(key)
	snapshot.SchedulerResolutionFailed = true

	stored, _ := reg.Get(key)
	if stored.SchedulerResolutionFailed {
		t.Error("mutating a snapshot must not affect the stored record")
	}
}

func TestRegistry_DeleteDropsEmptySpace(t *testing.T) {
	reg := New()
	now := time.Now()
	reg.Set(testKey("space-1", "channel-1"), domain.NewTimer("u", now, time.Minute))
	reg.Set(testKey("space-1", "channel-2"), domain.NewTimer("u", now, time.Minute))

	if !reg.Delete(testKey("space-1", "channel-1")) {
		t.Fatal("expected delete to report presence")
	}
	if got := len(reg.Spaces()); got != 1 {
		t.Fatalf("spaces after first delete: got %d, want 1", got)
	}

	reg.Delete(testKey("space-1", "channel-2"))
	if got := len(reg.Spaces()); got != 0 {
		t.Errorf("spaces after last delete: got %d, want 0", got)
	}
}

func TestRegistry_DeleteMissing(t *testing.T) {
	reg := New()
	if reg.Delete(testKey("space-1", "channel-1")) {
		t.Error("delete on empty registry must report false")
	}
}

func TestRegistry_DeleteSpace(t *testing.T) {
	reg := New()
	now := time.Now()
	reg.Set(testKey("space-1", "channel-1"), domain.NewTimer("u", now, time.Minute))
	reg.Set(testKey("space-1", "channel-2"), domain.NewTimer("u", now, time.Minute))
	reg.Set(testKey("space-2", "channel-1"), domain.NewTimer("u", now, time.Minute))

	if got := reg.DeleteSpace("space-1"); got != 2 {
		t.Errorf("dropped count: got %d, want 2", got)
	}
	if reg.Len() != 1 {
		t.Errorf("len: got %d, want 1", reg.Len())
	}
}

func TestRegistry_UpdateReminder(t *testing.T) {
	reg := New()
	key := testKey("space-1", "channel-1")
	now := time.Now()
	reg.Set(key, domain.NewTimer("u", now, time.Minute))

	at := now.Add(5 * time.Second)
	if !reg.UpdateReminder(key, at, "msg-1") {
		t.Fatal("expected update to find the timer")
	}

	got, _ := reg.Get(key)
	if !got.LastReminderAt.Equal(at) {
		t.Errorf("LastReminderAt: got %v, want %v", got.LastReminderAt, at)
	}
	if got.LastReminderRef != "msg-1" {
		t.Errorf("LastReminderRef: got %q, want %q", got.LastReminderRef, "msg-1")
	}
}

func TestRegistry_UpdateReminderAfterDelete(t *testing.T) {
	reg := New()
	key := testKey("space-1", "channel-1")
	reg.Set(key, domain.NewTimer("u", time.Now(), time.Minute))
	reg.Delete(key)

	if reg.UpdateReminder(key, time.Now(), "msg-1") {
		t.Error("update on a deleted timer must report false")
	}
}

func TestRegistry_MarkSchedulerInvalid(t *testing.T) {
	reg := New()
	key := testKey("space-1", "channel-1")
	reg.Set(key, domain.NewTimer("u", time.Now(), time.Minute))

	if !reg.MarkSchedulerInvalid(key) {
		t.Fatal("expected mark to find the timer")
	}
	got, _ := reg.Get(key)
	if !got.SchedulerResolutionFailed {
		t.Error("expected SchedulerResolutionFailed to be set")
	}

	if reg.MarkSchedulerInvalid(testKey("space-1", "other")) {
		t.Error("mark on a missing timer must report false")
	}
}

func TestRegistry_SpaceEntriesSnapshot(t *testing.T) {
	reg := New()
	now := time.Now()
	reg.Set(testKey("space-1", "channel-1"), domain.NewTimer("u1", now, time.Minute))
	reg.Set(testKey("space-1", "channel-2"), domain.NewTimer("u2", now, time.Minute))

	entries := reg.SpaceEntries("space-1")
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Key.SpaceID != "space-1" {
			t.Errorf("entry space: got %q, want %q", e.Key.SpaceID, "space-1")
		}
	}
}
