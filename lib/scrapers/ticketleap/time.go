package ticketleap

import (
	"fmt"
	"strings"
	"time"
)

// dateKeyLayout is the minute-truncated iso 8601 form used to join
// caller supplied dates against scraped performance uuids.
const dateKeyLayout = "2006-01-02T15:04"

// rangeLayout matches the admin panel's rendering of a performance
// start ("May 13, 2019 2:00PM") after dots are stripped and the text
// is uppercased.
const rangeLayout = "Jan 2, 2006 3:04PM"

// DateKey formats a start time the way Dates keys its results.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a date key ("2019-09-29T13:00") back into a
// time. Callers holding a time.Time should use DateKey instead.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(dateKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", InvalidDateRange, s, err)
	}
	return t, nil
}

// ISO8601 converts a rendered date range ("Sep 29, 2019
// 1:00p.m.-10:00p.m.") to the date key of its start time
// ("2019-09-29T13:00"). Only the start half has to parse.
func ISO8601(text string) (string, error) {
	startText, _, err := splitRange(text)
	if err != nil {
		return "", err
	}
	start, err := time.Parse(rangeLayout, startText)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", InvalidDateRange, text, err)
	}
	return start.Format(dateKeyLayout), nil
}

// splitRange cuts a rendered range at its dash and normalizes both
// halves for time.Parse. The panel leaves the date off the end half
// when it falls on the same day as the start, so a short end half
// borrows the start's date prefix.
func splitRange(text string) (startText, endText string, err error) {
	clean := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), ".", ""))
	startText, endText, found := strings.Cut(clean, "-")
	if !found {
		return "", "", fmt.Errorf("%w: %q", InvalidDateRange, text)
	}
	startText = strings.TrimSpace(startText)
	endText = strings.TrimSpace(endText)

	// a bare clock time is at most 7 runes ("12:59PM"), anything with
	// a date in it is far longer
	if len(endText) < 8 {
		endText = strings.TrimRight(startText, "0123456789APM:") + endText
	}
	return startText, endText, nil
}

// parseDateRange parses a rendered range into its start and end times.
// Times are naive, whatever wall clock the event venue uses.
func parseDateRange(text string) (start, end time.Time, err error) {
	startText, endText, err := splitRange(text)
	if err != nil {
		return start, end, err
	}
	start, err = time.Parse(rangeLayout, startText)
	if err != nil {
		return start, end, fmt.Errorf("%w: %q: %v", InvalidDateRange, text, err)
	}
	end, err = time.Parse(rangeLayout, endText)
	if err != nil {
		return start, end, fmt.Errorf("%w: %q: %v", InvalidDateRange, text, err)
	}
	return start, end, nil
}
