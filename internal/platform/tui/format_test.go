package tui

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0 Seconds"},
		{1, "1 Second"},
		{59, "59 Seconds"},
		{60, "1 Minute 0 Seconds"},
		{61, "1 Minute 1 Second"},
		{125, "2 Minutes 5 Seconds"},
		{-3, "0 Seconds"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.expected {
			t.Errorf("FormatDuration(%d) = %q, expected %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestShortDuration(t *testing.T) {
	if got := shortDuration(125); got != "2:05" {
		t.Errorf("shortDuration(125) = %q, expected 2:05", got)
	}
}
