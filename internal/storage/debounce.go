package storage

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of saves per user. Only the last scheduled
// function runs, once the user has been quiet for the configured delay.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[int64]*pendingSave
	gen     uint64
}

type pendingSave struct {
	gen   uint64
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a debouncer with the given quiet window
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[int64]*pendingSave),
	}
}

// Schedule replaces any pending save for userID and restarts its timer
func (d *Debouncer) Schedule(userID int64, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[userID]; ok {
		p.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.pending[userID] = &pendingSave{
		gen:   gen,
		fn:    fn,
		timer: time.AfterFunc(d.delay, func() { d.fire(userID, gen) }),
	}
}

func (d *Debouncer) fire(userID int64, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[userID]
	if !ok || p.gen != gen {
		// Superseded or flushed
		d.mu.Unlock()
		return
	}
	delete(d.pending, userID)
	d.mu.Unlock()

	p.fn()
}

// Cancel drops the pending save for userID without running it
func (d *Debouncer) Cancel(userID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[userID]; ok {
		p.timer.Stop()
		delete(d.pending, userID)
	}
}

// Flush runs every pending save immediately
func (d *Debouncer) Flush() {
	d.mu.Lock()
	saves := make([]*pendingSave, 0, len(d.pending))
	for userID, p := range d.pending {
		p.timer.Stop()
		saves = append(saves, p)
		delete(d.pending, userID)
	}
	d.mu.Unlock()

	for _, p := range saves {
		p.fn()
	}
}

// Pending returns the number of users with an unsaved change
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
