// Package timeutil parses and formats timeline durations, which the editor
// keeps as float seconds.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?|\.\d+)\s*([a-z]*)`)

	// Milliseconds per unit.
	unitMap = map[string]float64{
		"":        1000,
		"ms":      1,
		"s":       1000,
		"sec":     1000,
		"secs":    1000,
		"second":  1000,
		"seconds": 1000,
		"m":       60000,
		"min":     60000,
		"mins":    60000,
		"minute":  60000,
		"minutes": 60000,
		"h":       3600000,
		"hr":      3600000,
		"hour":    3600000,
		"hours":   3600000,
	}
)

// ParseSeconds parses a human-friendly duration ("4", "1.5s", "1m30s",
// "750ms") into seconds. A bare number is seconds. Negative values are
// rejected; zero is allowed.
func ParseSeconds(input string) (float64, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty duration")
	}

	totalMS := 0.0
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 || matches[0] == "" {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		scale, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		// A unitless segment is only valid on its own.
		if matches[2] == "" && (totalMS != 0 || len(remaining) != len(matches[0])) {
			return 0, fmt.Errorf("duration segment %q needs a unit", matches[1])
		}
		totalMS += value * scale
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	return totalMS / 1000, nil
}

// FormatSeconds renders seconds compactly, for example "4s", "1.5s" or
// "1m30s".
func FormatSeconds(sec float64) string {
	if math.IsNaN(sec) {
		return "0s"
	}
	// Whole milliseconds, rounded before minutes are split off so 59.9996
	// becomes 1m rather than 60s.
	ms := math.Round(sec * 1000)
	if ms <= 0 {
		return "0s"
	}
	minutes := math.Floor(ms / 60000)
	rest := (ms - minutes*60000) / 1000

	var b strings.Builder
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", int64(minutes))
		if rest == 0 {
			return b.String()
		}
	}
	b.WriteString(strconv.FormatFloat(rest, 'f', -1, 64))
	b.WriteString("s")
	return b.String()
}
