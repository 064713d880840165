package auth

import "time"

// Clock abstracts time.Now so expiry logic is testable with fixed instants.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
