package history

import (
	"fmt"
	"time"
)

// FormatRunDate renders an ISO timestamp as the "02 January" display date
// the history views group on. Unparseable input renders as "Invalid Date"
// rather than failing.
func FormatRunDate(isoTimestamp string) string {
	ts, err := time.Parse(time.RFC3339, isoTimestamp)
	if err != nil {
		return "Invalid Date"
	}
	return ts.Format("02 January")
}

// FormatRelativeDate renders how long ago t was, in whole days relative to
// now: "Today", "1 day ago", "N days ago".
func FormatRelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
