package store

import "time"

// CancelFunc stops a pending scheduled call. It reports whether the call was
// stopped before running.
type CancelFunc func() bool

// Scheduler schedules one-shot deferred calls. The production implementation
// wraps the runtime timer; tests substitute a manually advanced fake.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

type timerScheduler struct{}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}
