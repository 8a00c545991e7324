package command

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxTimeout is the longest timeout the platform accepts: 28 days, 2,419,200,000 ms.
const MaxTimeout = 28 * 24 * time.Hour

var (
	ErrMissingDuration = errors.New("missing duration")
	ErrInvalidUnit     = errors.New("invalid duration unit")
	ErrDurationTooLong = errors.New("duration exceeds 28 days")
)

var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var unitMillis = map[string]int64{
	"s": 1000,
	"m": 60_000,
	"h": 3_600_000,
	"d": 86_400_000,
}

// ParseTimeout parses "<integer><unit>" with unit one of s, m, h, d into a
// timeout length. Anything longer than MaxTimeout is rejected, including
// magnitudes too large to represent.
func ParseTimeout(token string) (time.Duration, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 0, ErrMissingDuration
	}

	m := durationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, ErrInvalidUnit
	}

	unit := unitMillis[m[2]]
	limit := MaxTimeout.Milliseconds()

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > limit/unit {
		// Only digits got here, so a parse error is an overflow.
		return 0, ErrDurationTooLong
	}

	ms := n * unit
	if ms > limit {
		return 0, ErrDurationTooLong
	}
	if ms == 0 {
		return 0, ErrInvalidUnit
	}
	return time.Duration(ms) * time.Millisecond, nil
}
