package util

import (
	"testing"
	"time"
)

func TestCalculateActualDate(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		targetDay int
		want      time.Time
	}{
		{"regular day", 2026, time.March, 15, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"31 in February", 2026, time.February, 31, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{"31 in leap February", 2028, time.February, 31, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"31 in April", 2026, time.April, 31, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateActualDate(tt.year, tt.month, tt.targetDay)
			if !got.Equal(tt.want) {
				t.Errorf("CalculateActualDate(%d, %s, %d) = %v, want %v", tt.year, tt.month, tt.targetDay, got, tt.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"same day next month", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"clamps month end", time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"crosses year", time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC), 3, time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"twelve months", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 12, time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"zero", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 0, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"backwards", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), -1, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 1, 1, 0, 0, 0, time.UTC)

	if got := DaysBetween(start, end); got != 365 {
		t.Errorf("DaysBetween = %d, want 365", got)
	}
	if got := DaysBetween(end, start); got != -365 {
		t.Errorf("DaysBetween reversed = %d, want -365", got)
	}
}
