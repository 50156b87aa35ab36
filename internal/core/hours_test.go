package core

import "testing"

func TestCalculateHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:30", 8.5},
		{"08:00", "16:00", 8},
		{"00:00", "23:59", 23.98},
		{"09:15", "09:30", 0.25},
		{"10:00", "10:00", 0},
		{"17:00", "09:00", 0}, // end before start clamps to zero
		{"", "17:00", 0},
		{"09:00", "", 0},
		{"", "", 0},
		{"junk", "17:00", 0},
		{"09:00", "5pm", 0},
		{"9:00", "17:00", 8}, // single-digit hour is accepted
	}
	for _, tc := range cases {
		if got := CalculateHours(tc.start, tc.end); got != tc.want {
			t.Errorf("CalculateHours(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"50000", 50000},
		{"1234.5", 1234.5},
		{"1234,5", 1234.5},
		{"1.200,50", 1200.5},
		{"1.234.567,00", 1234567},
		{"1,2,3", 0},
		{" 42 ", 42},
		{"", 0},
		{"abc", 0},
		{"12kr", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
