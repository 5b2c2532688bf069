package selector

import "time"

// Timer is a scheduled callback that can be stopped before it fires.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs deferred work. AfterFunc must never invoke f synchronously.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Surface is the host's scrollable view. The selector needs both a silent
// jump, used to recenter without the user noticing, and an animated scroll
// for programmatic selection.
type Surface interface {
	JumpTo(offset float64)
	AnimateTo(offset float64)
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules on the runtime timer heap. Callbacks run on their
// own goroutine.
var SystemScheduler Scheduler = clockScheduler{}
