package core

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The app is fixed to the Icelandic locale; the grouping separator matters
// because formatted totals appear on shared invoices.
var icelandic = message.NewPrinter(language.Icelandic)

// FormatCurrency renders an amount with no decimal places, locale thousands
// grouping and the fixed currency suffix: 1234567 -> "1.234.567 kr".
func FormatCurrency(amount float64) string {
	return icelandic.Sprint(number.Decimal(amount, number.MaxFractionDigits(0))) + " kr"
}

// FormatHours renders derived hours without trailing zeros (8.5, not 8.50).
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// FormatDate renders an ISO date as DD.MM.YYYY. Unrecognized input is
// returned unchanged.
func FormatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return dateStr
}

// FormatTime normalizes a clock time for display. Spreadsheet round-trips can
// hand back ISO datetimes (e.g. "1899-12-30T09:46:08.000Z"); the HH:MM part
// is extracted from those.
func FormatTime(timeStr string) string {
	if timeStr == "" {
		return "--:--"
	}
	if strings.Contains(timeStr, "T") {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, timeStr); err == nil {
				return t.UTC().Format("15:04")
			}
		}
	}
	return timeStr
}
