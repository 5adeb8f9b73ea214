// Package timing converts upstream lap, pit-stop and finishing times into
// canonical millisecond counts while passing display strings through
// unchanged for storage.
package timing

import (
	"math"
	"strconv"
	"strings"
)

// Milliseconds converts a time expressed as minutes, seconds and
// sub-second microseconds into a rounded millisecond count. A source that
// omits the minutes field for single-digit-second durations passes zero.
func Milliseconds(minutes int, seconds float64, micros int) int {
	return int(math.Round(float64(minutes)*60*1000 + seconds*1000 + float64(micros)/1000))
}

// ParseElapsed normalizes an elapsed-time display string such as
// "1:23.456", "23.456" or "+5.478" into a millisecond count plus the
// original string. An absent value yields nil for both; a present but
// unparsable value keeps the display string and yields nil milliseconds,
// so the record is stored with degraded precision rather than dropped.
func ParseElapsed(value string) (*int, *string) {
	if value == "" {
		return nil, nil
	}

	display := value

	trimmed := strings.TrimPrefix(value, "+")
	parts := strings.Split(trimmed, ":")

	var hours, minutes int
	var seconds float64
	var err error

	switch len(parts) {
	case 1:
		seconds, err = strconv.ParseFloat(parts[0], 64)
	case 2:
		minutes, err = strconv.Atoi(parts[0])
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		hours, err = strconv.Atoi(parts[0])
		if err == nil {
			minutes, err = strconv.Atoi(parts[1])
		}
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[2], 64)
		}
	default:
		return nil, &display
	}

	if err != nil || seconds < 0 || minutes < 0 || hours < 0 {
		return nil, &display
	}

	ms := hours*3600*1000 + Milliseconds(minutes, seconds, 0)
	return &ms, &display
}
