package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical ranges", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial overlap", at(10, 0), at(11, 30), at(11, 0), at(12, 0), true},
		{"contained range", at(10, 0), at(14, 0), at(11, 0), at(12, 0), true},
		{"adjacent ranges do not overlap", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint ranges", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBilledHours(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{10, 1},
		{59, 1},
		{60, 1},
		{61, 2},
		{90, 2},
		{121, 3},
	}

	for _, tt := range tests {
		start := at(10, 0)
		end := start.Add(time.Duration(tt.minutes) * time.Minute)
		assert.Equal(t, tt.want, BilledHours(start, end), "minutes=%d", tt.minutes)
	}
}
