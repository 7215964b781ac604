package metrics

import "time"

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Milliseconds returns the elapsed time as fractional milliseconds.
func (t *Timer) Milliseconds() float64 {
	return float64(t.Duration()) / float64(time.Millisecond)
}
