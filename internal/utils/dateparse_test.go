package utils

import (
	"testing"
	"time"
)

func TestParseEntryDate_Formats(t *testing.T) {
	loc := time.UTC
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)

	for _, input := range []string{
		"2024-05-01",
		"2024/05/01",
		"May 1, 2024",
		"1 May 2024",
		"2024-05-01T15:30:00Z",
	} {
		got, err := ParseEntryDate(input, loc)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q = %v, want %v", input, got, want)
		}
	}
}

func TestParseEntryDate_Today(t *testing.T) {
	loc := time.UTC
	got, err := ParseEntryDate("today", loc)
	if err != nil {
		t.Fatalf("parse today: %v", err)
	}
	now := time.Now().In(loc)
	if got.Year() != now.Year() || got.YearDay() != now.YearDay() {
		t.Fatalf("today = %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("today not truncated to midnight: %v", got)
	}
}

func TestParseEntryDate_Invalid(t *testing.T) {
	if _, err := ParseEntryDate("", time.UTC); err == nil {
		t.Fatalf("empty input should fail")
	}
	if _, err := ParseEntryDate("not a date", time.UTC); err == nil {
		t.Fatalf("garbage input should fail")
	}
}
