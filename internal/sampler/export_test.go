package sampler

import "time"

// SetNow replaces the collector clock.
func (c *Collector) SetNow(now func() time.Time) {
	c.now = now
}
