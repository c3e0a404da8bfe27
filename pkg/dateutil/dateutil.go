// Package dateutil extracts dates embedded in free text, as found in the KP
// payout ledger where caseworkers type the treatment date into the payout
// name by hand ("Fodbehandling 01-05-2024", "fodpleje 010524", ...).
package dateutil

import (
	"regexp"
	"strconv"
	"time"
)

// extractFormat pairs a capture regex with the width of its year component.
// The order mirrors how often each style occurs in the ledger; extraction
// takes the first format that yields a valid calendar date anywhere in the
// text.
type extractFormat struct {
	re       *regexp.Regexp
	longYear bool
}

var extractFormats = []extractFormat{
	{regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), true},
	{regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{2})`), false},
	{regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`), true},
	{regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2})`), false},
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), true},
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2})`), false},
	{regexp.MustCompile(`(\d{2})(\d{2})(\d{4})`), true},
	{regexp.MustCompile(`(\d{2})(\d{2})(\d{2})`), false},
}

// ExtractDate scans text for a day-first date in any of the supported
// formats and returns the first valid match. ok is false when no format
// yields a real calendar date.
func ExtractDate(text string) (t time.Time, ok bool) {
	for _, f := range extractFormats {
		for _, m := range f.re.FindAllStringSubmatch(text, -1) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if !f.longYear {
				year = expandYear(year)
			}
			if d, valid := makeDate(year, month, day); valid {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// ParseDayFirst parses a complete dd-mm-yyyy date string, tolerating
// unpadded day and month.
func ParseDayFirst(s string) (time.Time, error) {
	return time.Parse("2-1-2006", s)
}

// expandYear maps a two-digit year onto its century with the usual pivot:
// 69–99 become 19xx, everything below 2069 stays in this century.
func expandYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}

// makeDate builds a UTC midnight date and reports whether the components
// named a real calendar day (time.Date would otherwise normalize 32-13 into
// the next month).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
