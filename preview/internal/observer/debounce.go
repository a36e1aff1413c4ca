package observer

import "time"

// debouncer collapses bursts of height readings into the last value of the
// window. A mount rewrites the whole tree and fires dozens of mutation
// records; only the settled height matters.
type debouncer struct {
	window  time.Duration
	last    int
	pending bool
	timer   *time.Timer
	timerCh <-chan time.Time
	flushFn func(px int)
}

func newDebouncer(window time.Duration, flushFn func(px int)) *debouncer {
	if window <= 0 {
		window = 150 * time.Millisecond
	}
	return &debouncer{window: window, flushFn: flushFn}
}

// add records a reading and (re)starts the window timer.
func (d *debouncer) add(px int) {
	d.last = px
	d.pending = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.NewTimer(d.window)
	d.timerCh = d.timer.C
}

// timerC returns the channel that fires when the window expires.
func (d *debouncer) timerC() <-chan time.Time {
	return d.timerCh
}

// flush emits the latest reading, then resets.
func (d *debouncer) flush() {
	if !d.pending {
		return
	}
	d.flushFn(d.last)

	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
		d.timerCh = nil
	}
}
