package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Lifetime is a duration written in the short form used for token lifetimes:
// "90s", "15m", "2h", "7d", "1w", "1y", "2 days". A bare number is
// milliseconds.
type Lifetime time.Duration

var lifetimePattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = time.Duration(365.25 * float64(day))
)

// EnvDecode satisfies envconfig.Decoder.
func (l *Lifetime) EnvDecode(val string) error {
	d, err := ParseLifetime(val)
	if err != nil {
		return err
	}
	*l = Lifetime(d)
	return nil
}

// Duration returns the lifetime as a time.Duration.
func (l Lifetime) Duration() time.Duration { return time.Duration(l) }

// ParseLifetime parses a lifetime string. Non-positive results are rejected.
func ParseLifetime(s string) (time.Duration, error) {
	m := lifetimePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid lifetime %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lifetime %q: %w", s, err)
	}

	var unit time.Duration
	switch u := strings.ToLower(m[2]); {
	case u == "" || strings.HasPrefix(u, "ms") || strings.HasPrefix(u, "milli"):
		unit = time.Millisecond
	case strings.HasPrefix(u, "s"):
		unit = time.Second
	case strings.HasPrefix(u, "m"):
		unit = time.Minute
	case strings.HasPrefix(u, "h"):
		unit = time.Hour
	case strings.HasPrefix(u, "d"):
		unit = day
	case strings.HasPrefix(u, "w"):
		unit = week
	case strings.HasPrefix(u, "y"):
		unit = year
	}

	d := time.Duration(n * float64(unit))
	if d <= 0 {
		return 0, fmt.Errorf("invalid lifetime %q: must be positive", s)
	}
	return d, nil
}
