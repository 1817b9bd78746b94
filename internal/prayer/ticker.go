package prayer

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// TickFunc receives the freshly derived state and the formatted countdown
// once per second.
type TickFunc func(state model.PrayerState, countdown string)

// Ticker drives the live countdown. Each tick recomputes the state from the
// wall clock, so the display never drifts the way a decrementing counter
// would. Starting a ticker cancels the previous one: a superseded schedule
// must never leave a competing timer writing to the same display.
type Ticker struct {
	mu   sync.Mutex
	stop chan struct{}
	now  func() time.Time
}

func NewTicker() *Ticker {
	return &Ticker{now: time.Now}
}

// NewTickerWithClock is NewTicker with an injected clock, for tests.
func NewTickerWithClock(now func() time.Time) *Ticker {
	return &Ticker{now: now}
}

// Start begins ticking once per second for the given schedule, cancelling
// any previous run first. onTick fires immediately with the initial state,
// then on every tick.
func (t *Ticker) Start(schedule model.PrayerSchedule, onTick TickFunc) {
	t.mu.Lock()
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	fire := func() bool {
		state, err := StateAt(schedule, t.now())
		if err != nil {
			log.Error().Err(err).Msg("[prayer] countdown state failed")
			return false
		}
		onTick(state, FormatCountdown(time.Duration(state.SecondsToNext)*time.Second))
		return true
	}
	if !fire() {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !fire() {
					return
				}
			}
		}
	}()
}

// Stop cancels the current run, if any.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
