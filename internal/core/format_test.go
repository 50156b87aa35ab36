package core

import (
	"strings"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234567, "1.234.567 kr"},
		{50000, "50.000 kr"},
		{950, "950 kr"},
		{0, "0 kr"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-01-15", "15.01.2024"},
		{"2024-12-01", "01.12.2024"},
		{"", ""},
		{"not-a-date", "not-a-date"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"09:30", "09:30"},
		{"", "--:--"},
		{"1899-12-30T09:46:08.000Z", "09:46"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.in); got != tc.want {
			t.Errorf("FormatTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(8.5); got != "8.5" {
		t.Errorf("FormatHours(8.5) = %q", got)
	}
	if got := FormatHours(8); got != "8" {
		t.Errorf("FormatHours(8) = %q", got)
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		id := GenerateID()
		if id == "" || !strings.Contains(id, "-") {
			t.Fatalf("unexpected id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateDraft(t *testing.T) {
	if err := ValidateDraft("", "", 0); err != ErrEmptyDraft {
		t.Errorf("empty draft: got %v, want ErrEmptyDraft", err)
	}
	if err := ValidateDraft("Baðherbergi", "", 4500); err != nil {
		t.Errorf("name only: %v", err)
	}
	if err := ValidateDraft("", "Jón", 4500); err != nil {
		t.Errorf("client only: %v", err)
	}
	if err := ValidateDraft("x", "y", -1); err != ErrNegativeRate {
		t.Errorf("negative rate: got %v, want ErrNegativeRate", err)
	}
}
