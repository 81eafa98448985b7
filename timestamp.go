package n3rgy

import (
	"time"

	"github.com/go-openapi/strfmt"
)

const (
	// dateTimeLayout is the provider's reading timestamp, e.g. "2024-08-09 01:00".
	dateTimeLayout = "2006-01-02 15:04"

	// queryDateLayout is used for the start/end query parameters only.
	queryDateLayout = "20060102"
)

// ParseDateTime parses a provider timestamp of the exact form "YYYY-MM-DD HH:MM".
//
// The provider reports local wall-clock time without a zone. The returned
// value carries that wall clock in UTC; no conversion is applied.
func ParseDateTime(s string) (time.Time, error) {
	return parseExact(dateTimeLayout, s)
}

// ParseDate parses a provider date of the exact form "YYYY-MM-DD".
func ParseDate(s string) (strfmt.Date, error) {
	t, err := parseExact(strfmt.RFC3339FullDate, s)
	if err != nil {
		return strfmt.Date{}, err
	}
	return strfmt.Date(t), nil
}

// parseExact rejects anything time.Parse would tolerate but the provider
// never sends: single-digit hours, signed years, missing zero padding.
func parseExact(layout, s string) (time.Time, error) {
	if !sameShape(layout, s) {
		return time.Time{}, &time.ParseError{
			Layout:  layout,
			Value:   s,
			Message: ": expected layout " + layout,
		}
	}
	return time.ParseInLocation(layout, s, time.UTC)
}

// sameShape reports whether s has a digit wherever layout has one and the
// identical separator everywhere else.
func sameShape(layout, s string) bool {
	if len(s) != len(layout) {
		return false
	}
	for i := 0; i < len(layout); i++ {
		if isDigit(layout[i]) {
			if !isDigit(s[i]) {
				return false
			}
			continue
		}
		if s[i] != layout[i] {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func formatQueryDate(t time.Time) string {
	return t.Format(queryDateLayout)
}
