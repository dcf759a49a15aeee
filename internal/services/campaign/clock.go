package campaign

import "time"

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}
