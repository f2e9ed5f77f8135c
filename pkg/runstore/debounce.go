package runstore

import (
	"sync"
	"time"
)

// DefaultDebounce matches the delay the front-end waits after a delete or
// restore before pushing the mutated runs snapshot upstream.
const DefaultDebounce = 1500 * time.Millisecond

// Debouncer runs fire once the delay has elapsed since the last Trigger.
// A Trigger inside the window cancels and restarts the timer, so rapid
// delete/restore bursts collapse into one submission carrying the final
// state. Cancel must be called on teardown of the owning view.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fire  func()
}

func NewDebouncer(delay time.Duration, fire func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fire: fire}
}

// Trigger schedules fire after the delay, replacing any pending schedule.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Cancel drops any pending fire. Safe to call repeatedly and after the timer
// has already fired.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending schedule and fires immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fire := d.fire
	d.mu.Unlock()

	fire()
}
