package bench

import "time"

// MeasureExec runs exec and reports how long it took.
func MeasureExec(exec func()) time.Duration {
	s := time.Now()
	exec()
	return time.Since(s)
}
