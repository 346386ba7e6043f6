package services

import "time"

type clock struct {
	now func() time.Time
}

// SetClock overrides the time source.
func (c *clock) SetClock(now func() time.Time) {
	c.now = now
}

func (c *clock) timeNow() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now()
}
