// Package timecode converts between time-or-score text and canonical seconds.
//
// Swim times are entered as "m:ss.cc" (e.g. "4:15.00"); diving scores are
// plain decimals (e.g. "310.5"). Both are normalized to float64 seconds so
// the ranking engine can compare them with a single tolerance.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

const secondsPerMinute = 60

// ToSeconds parses time-or-score text into seconds.
//
// Text without a ":" separator is treated as a plain decimal (a diving
// score). Text with a separator is parsed as minutes:seconds. Unparseable
// input yields 0, never an error: a malformed time degrades that one entry
// instead of aborting the meet. Note the 0 sentinel sorts as the fastest
// swim / highest dive, a known distortion inherited from the source system.
func ToSeconds(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if !strings.Contains(text, ":") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0
		}
		return v
	}

	minText, secText, _ := strings.Cut(text, ":")
	minutes, err := strconv.Atoi(strings.TrimSpace(minText))
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(secText), 64)
	if err != nil {
		return 0
	}
	return float64(minutes)*secondsPerMinute + seconds
}

// FromSeconds renders seconds in the canonical "m:ss.cc" swim-time form:
// no leading zero on minutes, always two fractional digits.
func FromSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / secondsPerMinute
	rem := seconds - float64(minutes*secondsPerMinute)
	return fmt.Sprintf("%d:%05.2f", minutes, rem)
}

// Normalize re-renders swim-time text in the canonical "m:ss.cc" form.
// Diving scores (no separator) and unparseable text pass through unchanged.
func Normalize(text string) string {
	if !strings.Contains(text, ":") {
		return text
	}
	seconds := ToSeconds(text)
	if seconds == 0 {
		return text
	}
	return FromSeconds(seconds)
}
