// ABOUTME: Timer abstraction so the 401 grace delay is testable
// ABOUTME: Production code uses the system clock, tests a manual one

package chat

import "time"

// Clock schedules deferred work. The transcript uses it for the grace
// delay between showing the session-expired message and tearing the
// session down.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// SystemClock is the production Clock backed by time.AfterFunc.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
