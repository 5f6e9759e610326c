package testutil

import "time"

// NowAt returns a clock that always reports t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
