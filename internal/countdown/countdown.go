// Package countdown renders the time left on an auction and its display status.
package countdown

import (
	"fmt"
	"time"
)

const (
	// EndedLabel is shown in listings once an auction has closed.
	EndedLabel = "Ended"
	// AuctionEndedLabel is shown on the auction detail view once it has closed.
	AuctionEndedLabel = "Auction ended"
	// EndingSoonLabel is the listing label when less than a minute remains.
	EndingSoonLabel = "Ending soon"

	// EndingSoonThreshold marks an open auction as ending soon.
	EndingSoonThreshold = 24 * time.Hour

	day = 24 * time.Hour
)

// View selects the granularity of a rendered label.
type View int

const (
	// ListView renders the two most significant units.
	ListView View = iota
	// DetailView renders down to seconds.
	DetailView
)

// Remaining is a positive duration split into whole units.
type Remaining struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
	Ended   bool
}

// Until decomposes end - now. A non-positive difference is Ended.
func Until(end, now time.Time) Remaining {
	d := end.Sub(now)
	if d <= 0 {
		return Remaining{Ended: true}
	}
	return Remaining{
		Days:    int64(d / day),
		Hours:   int64(d % day / time.Hour),
		Minutes: int64(d % time.Hour / time.Minute),
		Seconds: int64(d % time.Minute / time.Second),
	}
}

// Duration is the whole-second duration represented by r.
func (r Remaining) Duration() time.Duration {
	if r.Ended {
		return 0
	}
	return time.Duration(r.Days)*day +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
}

// ListLabel renders the coarse label used on auction cards.
func (r Remaining) ListLabel() string {
	switch {
	case r.Ended:
		return EndedLabel
	case r.Days > 0:
		return fmt.Sprintf("%d %s %d %s", r.Days, plural("day", r.Days), r.Hours, plural("hr", r.Hours))
	case r.Hours > 0:
		return fmt.Sprintf("%d %s %d %s", r.Hours, plural("hour", r.Hours), r.Minutes, plural("min", r.Minutes))
	case r.Minutes > 0:
		return fmt.Sprintf("%d %s", r.Minutes, plural("minute", r.Minutes))
	default:
		return EndingSoonLabel
	}
}

// DetailLabel renders the fine label used on the auction page.
func (r Remaining) DetailLabel() string {
	switch {
	case r.Ended:
		return AuctionEndedLabel
	case r.Days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", r.Days, r.Hours, r.Minutes, r.Seconds)
	default:
		return fmt.Sprintf("%dh %dm %ds", r.Hours, r.Minutes, r.Seconds)
	}
}

// TimeRemaining renders the label for view and reports whether the auction has ended.
func TimeRemaining(end, now time.Time, view View) (string, bool) {
	r := Until(end, now)
	if view == DetailView {
		return r.DetailLabel(), r.Ended
	}
	return r.ListLabel(), r.Ended
}

// plural adds an "s" for counts above one, so zero reads "0 hr".
func plural(unit string, n int64) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
