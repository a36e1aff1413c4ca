package observer

import (
	"testing"
	"time"
)

func TestDebouncerKeepsLastReading(t *testing.T) {
	var got []int
	d := newDebouncer(50*time.Millisecond, func(px int) { got = append(got, px) })

	d.add(500)
	d.add(620)
	d.add(810)
	d.flush()

	if len(got) != 1 || got[0] != 810 {
		t.Errorf("flush: got %v, want [810]", got)
	}
}

func TestDebouncerFlushWithoutReadingsIsNoop(t *testing.T) {
	d := newDebouncer(50*time.Millisecond, func(px int) {
		t.Error("flushFn called with no pending reading")
	})
	d.flush()
}

func TestDebouncerTimerFires(t *testing.T) {
	d := newDebouncer(10*time.Millisecond, func(px int) {})

	if d.timerC() != nil {
		t.Fatal("timer armed before any reading")
	}
	d.add(500)

	select {
	case <-d.timerC():
	case <-time.After(time.Second):
		t.Fatal("debounce timer never fired")
	}
}

func TestDebouncerResetsAfterFlush(t *testing.T) {
	var got []int
	d := newDebouncer(50*time.Millisecond, func(px int) { got = append(got, px) })

	d.add(500)
	d.flush()
	d.flush() // second flush must not re-emit

	if len(got) != 1 {
		t.Errorf("flushes: got %v, want exactly one emission", got)
	}
	if d.timerC() != nil {
		t.Error("timer channel not cleared after flush")
	}
}
