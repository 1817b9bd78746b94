// Package events is the in-process publish/subscribe bridge between the
// location/prayer core and its rendering consumers.
package events

import (
	"sync"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// Event names used by the core.
type Event string

const (
	// LocationUpdated carries a model.ResolvedLocation payload.
	LocationUpdated Event = "location-updated"
	// PrayerDataUpdated carries a PrayerUpdate payload.
	PrayerDataUpdated Event = "prayer-data-updated"
)

// PrayerUpdate is the payload of PrayerDataUpdated: the derived state plus
// the raw schedule, so list renderers do not refetch.
type PrayerUpdate struct {
	State    model.PrayerState    `json:"state"`
	Schedule model.PrayerSchedule `json:"schedule"`
}

// Handler receives a published payload.
type Handler func(payload any)

// Bus dispatches synchronously, in subscription order, at most once per
// publish. Subscribers registered after a publish never see that event;
// there is no replay.
type Bus struct {
	mu       sync.Mutex
	handlers map[Event][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]Handler)}
}

// Subscribe registers a handler for the event. Handlers cannot be removed;
// subscribers live as long as the page that registered them.
func (b *Bus) Subscribe(event Event, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], h)
}

// Publish invokes every handler registered for the event, in subscription
// order, on the caller's goroutine. Handlers may publish further events.
func (b *Bus) Publish(event Event, payload any) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers[event]))
	copy(handlers, b.handlers[event])
	b.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}
