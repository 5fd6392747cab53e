package countdown

import "time"

// Status is the display state of an auction. It is never stored.
type Status string

const (
	StatusActive     Status = "active"
	StatusEndingSoon Status = "ending_soon"
	StatusEnded      Status = "ended"
)

// StatusAt derives the display status of an auction ending at end.
func StatusAt(end, now time.Time) Status {
	left := end.Sub(now)
	switch {
	case left <= 0:
		return StatusEnded
	case left < EndingSoonThreshold:
		return StatusEndingSoon
	default:
		return StatusActive
	}
}
