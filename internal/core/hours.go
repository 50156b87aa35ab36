// Package core holds the ledger domain model and the pure calculations
// derived from it: worked hours, project summaries, date grouping and the
// fixed-locale display formatting the invoice depends on.
package core

import (
	"math"
	"strconv"
	"strings"
)

// CalculateHours computes the worked hours between two HH:MM clock times,
// rounded to two decimals. A missing or malformed time yields 0, as does an
// end time before the start time.
func CalculateHours(start, end string) float64 {
	sh, sm, ok := parseClock(start)
	if !ok {
		return 0
	}
	eh, em, ok := parseClock(end)
	if !ok {
		return 0
	}
	diff := (eh*60 + em) - (sh*60 + sm)
	if diff <= 0 {
		return 0
	}
	return math.Round(float64(diff)/60*100) / 100
}

func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

// ParseAmount coerces a user-supplied amount to a number, accepting a decimal
// comma with optional dot thousands separators ("1.200,50"). Unparseable input
// coerces to 0 rather than failing, mirroring how material amounts are edited
// in place.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		// Comma is the decimal mark, so any dots are grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
