package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseEntryDate parses the date field of the journal form. Entries are
// keyed by calendar date, so whatever the input carries, the result is
// truncated to midnight in loc.
func ParseEntryDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	now := time.Now().In(loc)

	switch strings.ToLower(input) {
	case "today", "now":
		return midnight(now, loc), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1), loc), nil
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"02/01/2006", // European format
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"2 January 2006",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			return midnight(t, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
