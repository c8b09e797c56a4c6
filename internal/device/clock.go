package device

import "time"

// SystemClock is the wall clock. time.Time carries a monotonic reading,
// so durations measured through it are immune to wall-clock jumps.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
