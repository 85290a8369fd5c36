package model

import (
	"fmt"
	"regexp"
	"time"
)

// clockPattern is the only accepted trim time format: hh:mm:ss.
var clockPattern = regexp.MustCompile(`^(\d{2}):([0-5]\d):([0-5]\d)$`)

// ParseClock parses a time value in the fixed hh:mm:ss format. Anything else
// is rejected; there is no defaulting.
func ParseClock(s string) (time.Duration, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, expected hh:mm:ss", s)
	}
	var h, min, sec int
	fmt.Sscanf(s, "%02d:%02d:%02d", &h, &min, &sec)
	return time.Duration(h)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatClock renders a duration as hh:mm:ss for encoder arguments.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
