package dictation

import (
	"sync"
	"time"
)

const (
	// DefaultQuietPeriod is how long the input must stay unchanged before
	// the pending text is handed to the parser. Long phrases typed or
	// dictated progressively are parsed once, after they stabilize.
	DefaultQuietPeriod = 500 * time.Millisecond

	// DefaultClearDelay is how long a successfully parsed command remains
	// visible before the input is cleared. Purely user feedback; it has no
	// effect on parser correctness.
	DefaultClearDelay = 1000 * time.Millisecond
)

// Debouncer serializes raw dictation text into parse attempts. Every Update
// re-arms a quiet-period timer; only when the text stops changing does the
// fire callback run. A superseded timer is simply discarded — each parse is
// a single cheap synchronous call, so nothing is ever cancelled
// mid-computation.
//
// When fire reports success, the clear callback is scheduled after the
// configured clear delay.
//
// A quiet period <= 0 disables debouncing: Update fires synchronously.
// All methods are safe for concurrent use.
type Debouncer struct {
	mu         sync.Mutex
	quiet      time.Duration
	clearDelay time.Duration
	fire       func(text string) bool
	clear      func()

	timer      *time.Timer
	clearTimer *time.Timer
	pending    string
	hasPending bool
	stopped    bool
}

// NewDebouncer creates a Debouncer. fire receives the stabilized text and
// reports whether the command was understood; clear is invoked clearDelay
// after a successful fire (it may be nil).
func NewDebouncer(quiet, clearDelay time.Duration, fire func(text string) bool, clear func()) *Debouncer {
	return &Debouncer{
		quiet:      quiet,
		clearDelay: clearDelay,
		fire:       fire,
		clear:      clear,
	}
}

// Update registers the latest input text and (re)arms the quiet-period
// timer. With debouncing disabled the text fires on the calling goroutine.
func (d *Debouncer) Update(text string) {
	if d.quiet <= 0 {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.dispatch(text)
		}
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = text
	d.hasPending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		if d.stopped || !d.hasPending {
			d.mu.Unlock()
			return
		}
		pending := d.pending
		d.hasPending = false
		d.mu.Unlock()
		d.dispatch(pending)
	})
}

// Flush fires any pending text immediately instead of waiting out the quiet
// period. Used when the input stream ends so the final command is not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending
	d.hasPending = false
	d.mu.Unlock()

	d.dispatch(pending)
}

// Stop discards any pending timers. A stopped Debouncer ignores further
// updates.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.clearTimer != nil {
		d.clearTimer.Stop()
		d.clearTimer = nil
	}
}

// dispatch runs the fire callback and schedules the clear callback when the
// command was understood.
func (d *Debouncer) dispatch(text string) {
	if !d.fire(text) || d.clear == nil {
		return
	}

	if d.clearDelay <= 0 {
		d.clear()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.clearTimer != nil {
		d.clearTimer.Stop()
	}
	d.clearTimer = time.AfterFunc(d.clearDelay, d.clear)
}
