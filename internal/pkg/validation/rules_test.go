package validation

import (
	"testing"
	"time"
)

func TestValidDateOrder(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if !ValidDateOrder(start, start) {
		t.Fatalf("expected equal dates to be valid")
	}
	if !ValidDateOrder(start, start.AddDate(0, 0, 5)) {
		t.Fatalf("expected increasing dates to be valid")
	}
	if ValidDateOrder(start, start.AddDate(0, 0, -1)) {
		t.Fatalf("expected decreasing dates to be invalid")
	}
}

func TestWithinWindow(t *testing.T) {
	windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		expect bool
	}{
		{"inside", windowStart.AddDate(0, 0, 9), windowStart.AddDate(0, 0, 14), true},
		{"exact bounds", windowStart, windowEnd, true},
		{"starts before window", windowStart.AddDate(0, 0, -1), windowStart.AddDate(0, 0, 5), false},
		{"ends after window", windowEnd.AddDate(0, 0, -5), windowEnd.AddDate(0, 0, 1), false},
		{"fully outside", windowEnd.AddDate(0, 1, 0), windowEnd.AddDate(0, 1, 5), false},
	}

	for _, tc := range cases {
		if got := WithinWindow(tc.start, tc.end, windowStart, windowEnd); got != tc.expect {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expect, got)
		}
	}
}

func TestRegisterNumberPattern(t *testing.T) {
	valid := []string{"CS20230042", "IT20219999"}
	for _, v := range valid {
		if !CompiledPatterns.RegisterNumber.MatchString(v) {
			t.Fatalf("expected register number %s to be valid", v)
		}
	}
	invalid := []string{"20230042", "cs20230042", "CS2023", "CSE2023004"}
	for _, v := range invalid {
		if CompiledPatterns.RegisterNumber.MatchString(v) {
			t.Fatalf("expected register number %s to be invalid", v)
		}
	}
}
