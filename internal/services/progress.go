package services

import "math"

// Progress is the derived view of a total measured against a target.
type Progress struct {
	Remaining  float64 `json:"remaining"`
	Completed  bool    `json:"completed"`
	Percentage int     `json:"percentage"`
}

// ComputeProgress floors the percentage and caps it at 100. A percentage of
// 100 is only reported once the target is actually met.
func ComputeProgress(target float64, total float64) Progress {
	if target <= 0 {
		return Progress{Remaining: 0, Completed: true, Percentage: 100}
	}

	completed := total >= target
	percentage := int(math.Floor(total*100/target + 1e-9))
	switch {
	case percentage < 0:
		percentage = 0
	case percentage > 100:
		percentage = 100
	}
	if !completed && percentage >= 100 {
		percentage = 99
	}

	return Progress{
		Remaining:  math.Max(target-total, 0),
		Completed:  completed,
		Percentage: percentage,
	}
}
