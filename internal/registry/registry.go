// Package registry holds the process-wide mapping from (space, channel) to
// the single active timer of that channel. It is a pure store: domain rules
// live in the timer service and the tick scheduler.
package registry

import (
	"sync"
	"time"

	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
)

// Entry pairs a key with a snapshot of its timer.
type Entry struct {
	Key   domain.Key
	Timer domain.Timer
}

// Registry is safe for concurrent use. Readers receive value copies;
// live records are only touched under the lock, so a timer that was
// cancelled while a caller was blocked on an external call can be detected
// by the found flags of the mutating methods.
type Registry struct {
	mu     sync.RWMutex
	spaces map[string]map[string]*domain.Timer
}

func New() *Registry {
	return &Registry{
		spaces: make(map[string]map[string]*domain.Timer),
	}
}

// Get returns a snapshot of the timer at key.
func (r *Registry) Get(key domain.Key) (domain.Timer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.spaces[key.SpaceID][key.ChannelID]
	if !ok {
		return domain.Timer{}, false
	}
	return *t, true
}

// Set stores the timer at key, overwriting any previous record.
func (r *Registry) Set(key domain.Key, timer *domain.Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channels, ok := r.spaces[key.SpaceID]
	if !ok {
		channels = make(map[string]*domain.Timer)
		r.spaces[key.SpaceID] = channels
	}
	channels[key.ChannelID] = timer
}

// Delete removes the timer at key. The space bucket is dropped together
// with its last timer. Reports whether a timer was present.
func (r *Registry) Delete(key domain.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	channels, ok := r.spaces[key.SpaceID]
	if !ok {
		return false
	}
	if _, ok := channels[key.ChannelID]; !ok {
		return false
	}
	delete(channels, key.ChannelID)
	if len(channels) == 0 {
		delete(r.spaces, key.SpaceID)
	}
	return true
}

// DeleteSpace removes every timer of a space, returning how many were
// dropped.
func (r *Registry) DeleteSpace(spaceID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.spaces[spaceID])
	delete(r.spaces, spaceID)
	return n
}

// Spaces returns a snapshot of the space IDs that currently hold timers.
// Iteration order is not stable across calls.
func (r *Registry) Spaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.spaces))
	for id := range r.spaces {
		ids = append(ids, id)
	}
	return ids
}

// SpaceEntries returns snapshots of all timers of one space.
func (r *Registry) SpaceEntries(spaceID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := r.spaces[spaceID]
	entries := make([]Entry, 0, len(channels))
	for channelID, t := range channels {
		entries = append(entries, Entry{
			Key:   domain.Key{SpaceID: spaceID, ChannelID: channelID},
			Timer: *t,
		})
	}
	return entries
}

// Len returns the total number of active timers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, channels := range r.spaces {
		n += len(channels)
	}
	return n
}

// UpdateReminder records that a reminder was sent for the timer at key.
// An empty ref clears the stored reference (failed send). Returns false if
// the timer disappeared in the meantime.
func (r *Registry) UpdateReminder(key domain.Key, at time.Time, ref string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.spaces[key.SpaceID][key.ChannelID]
	if !ok {
		return false
	}
	t.LastReminderAt = at
	t.LastReminderRef = ref
	return true
}

// MarkSchedulerInvalid sets the sticky resolution-failure flag on the timer
// at key. The flag is never cleared. Returns false if the timer is gone.
func (r *Registry) MarkSchedulerInvalid(key domain.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.spaces[key.SpaceID][key.ChannelID]
	if !ok {
		return false
	}
	t.SchedulerResolutionFailed = true
	return true
}
