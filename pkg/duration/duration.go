package duration

import (
	"regexp"
	"strconv"
)

// iso8601Re matches the time-only ISO 8601 duration subset the YouTube Data
// API emits: PT#H#M#S with any of the three groups optionally omitted.
var iso8601Re = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Parse converts an ISO 8601 duration code into total seconds.
//
// ok is false when the duration is unknown: empty input, a malformed code,
// or a well-formed code totalling exactly zero seconds (the API reports
// zero-length durations for videos it has no duration for, so zero is
// indistinguishable from unknown and treated as such).
func Parse(code string) (seconds int, ok bool) {
	if code == "" {
		return 0, false
	}

	m := iso8601Re.FindStringSubmatch(code)
	if m == nil {
		return 0, false
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	secs := atoiOrZero(m[3])

	total := hours*3600 + minutes*60 + secs
	if total == 0 {
		return 0, false
	}
	return total, true
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
