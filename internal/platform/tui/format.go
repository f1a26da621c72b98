package tui

import "fmt"

// FormatDuration renders whole seconds as "M Minute(s) S Second(s)".
// The minutes part is omitted below one minute.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	secs := plural(seconds%60, "Second")
	if seconds < 60 {
		return secs
	}
	return plural(seconds/60, "Minute") + " " + secs
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
