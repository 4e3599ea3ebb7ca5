package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		total  float64
		want   Progress
	}{
		{name: "nothing logged", target: 10000, total: 0, want: Progress{Remaining: 10000, Completed: false, Percentage: 0}},
		{name: "half way", target: 8, total: 4, want: Progress{Remaining: 4, Completed: false, Percentage: 50}},
		{name: "floors fractional percentage", target: 10000, total: 9990, want: Progress{Remaining: 10, Completed: false, Percentage: 99}},
		{name: "exactly met", target: 10000, total: 10000, want: Progress{Remaining: 0, Completed: true, Percentage: 100}},
		{name: "overshoot saturates", target: 10000, total: 10500, want: Progress{Remaining: 0, Completed: true, Percentage: 100}},
		{name: "ten times target", target: 3, total: 30, want: Progress{Remaining: 0, Completed: true, Percentage: 100}},
		{name: "just below target never shows 100", target: 1000000, total: 999999.99, want: Progress{Remaining: 1000000 - 999999.99, Completed: false, Percentage: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(tt.target, tt.total)
			assert.InDelta(t, tt.want.Remaining, got.Remaining, 1e-6)
			assert.Equal(t, tt.want.Completed, got.Completed)
			assert.Equal(t, tt.want.Percentage, got.Percentage)
		})
	}
}

func TestComputeProgressInvariants(t *testing.T) {
	for _, target := range []float64{0.5, 1, 7, 8, 10000} {
		for _, total := range []float64{0, 0.1, 1, 3.3, 7, 7.99, 8, 12, 100000} {
			got := ComputeProgress(target, total)

			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
			assert.GreaterOrEqual(t, got.Remaining, 0.0)
			if got.Completed {
				assert.Equal(t, 100, got.Percentage, "target=%v total=%v", target, total)
			} else {
				assert.Less(t, got.Percentage, 100, "target=%v total=%v", target, total)
			}
		}
	}
}
