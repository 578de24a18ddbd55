// Package timer implements the rest-interval parser and the countdown state
// machine driving the rest timer in the session recording flow.
package timer

import (
	"regexp"
	"strconv"
	"strings"
)

// Rest intervals are free text entered by trainers, so several human formats
// must be tolerated. Patterns are tried in a fixed order; the bare-number
// form has to come last or "90" would be misread as minutes.
var (
	colonPattern    = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	combinedPattern = regexp.MustCompile(`(?i)^(\d+)\s*(?:m|min|mins|minute|minutes)\s*(\d+)\s*(?:s|sec|secs|second|seconds)?$`)
	minutesPattern  = regexp.MustCompile(`(?i)^(\d+)\s*(?:m|min|mins|minute|minutes)$`)
	secondsPattern  = regexp.MustCompile(`(?i)^(\d+)\s*(?:s|sec|secs|second|seconds)?$`)
)

// ParseRest converts a free-text rest interval ("1:30", "1m30s", "2m", "45s",
// "60") into a second count. ok is false for empty input or anything that
// matches no recognized pattern; the caller then shows no timer and displays
// the raw text as-is.
func ParseRest(raw string) (seconds int, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}

	if m := colonPattern.FindStringSubmatch(text); m != nil {
		mins, err1 := strconv.Atoi(m[1])
		secs, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return mins*60 + secs, true
	}

	if m := combinedPattern.FindStringSubmatch(text); m != nil {
		mins, err1 := strconv.Atoi(m[1])
		secs, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return mins*60 + secs, true
	}

	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		mins, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return mins * 60, true
	}

	if m := secondsPattern.FindStringSubmatch(text); m != nil {
		secs, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return secs, true
	}

	return 0, false
}
