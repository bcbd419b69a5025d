package util

import (
	"fmt"
	"time"
)

// StatusOffline is reported for users with no recorded activity
const StatusOffline = "Offline"

// TimeAgo renders how long ago t was relative to now, e.g. "5 minutes ago".
// Anything under a minute is reported as "Online just now".
func TimeAgo(t *time.Time, now time.Time) string {
	if t == nil {
		return StatusOffline
	}

	seconds := now.Sub(*t).Seconds()
	switch {
	case seconds < 60:
		return "Online just now"
	case seconds < 3600:
		return plural(int(seconds/60), "minute")
	case seconds < 86400:
		return plural(int(seconds/3600), "hour")
	default:
		return plural(int(seconds/86400), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
