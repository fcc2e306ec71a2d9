package accounting

import "github.com/daftarhq/daftar/internal/core/domain"

// AgingShape selects the bucket layout of an aging schedule.
type AgingShape string

const (
	ThreeBucket AgingShape = "three_bucket" // current, 31-60, 60+
	FourBucket  AgingShape = "four_bucket"  // current, 31-60, 61-90, 90+
)

// AgingSchedule accumulates an entity's outstanding balance into age bands.
// Buckets are ordered youngest first; cutoffs[i] is the inclusive upper
// age bound of bucket i, with the last bucket unbounded.
type AgingSchedule struct {
	labels  []string
	cutoffs []int
	amounts []int64
}

// NewAgingSchedule builds an empty schedule for the given shape.
func NewAgingSchedule(shape AgingShape) *AgingSchedule {
	if shape == FourBucket {
		return &AgingSchedule{
			labels:  []string{"current", "days_31_60", "days_61_90", "days_90_plus"},
			cutoffs: []int{30, 60, 90},
			amounts: make([]int64, 4),
		}
	}
	return &AgingSchedule{
		labels:  []string{"current", "days_31_60", "days_60_plus"},
		cutoffs: []int{30, 60},
		amounts: make([]int64, 3),
	}
}

// bucketFor maps an age in days to a bucket index.
func (s *AgingSchedule) bucketFor(daysOld int) int {
	for i, cutoff := range s.cutoffs {
		if daysOld <= cutoff {
			return i
		}
	}
	return len(s.amounts) - 1
}

// Apply folds one movement in. A positive delta adds into the bucket
// matching the movement's age. A negative delta is a settlement: it consumes
// from the oldest non-empty bucket first, clamping each bucket at zero and
// carrying any remainder to the next-oldest. A settlement exceeding the
// total outstanding leaves every bucket at zero.
func (s *AgingSchedule) Apply(daysOld int, delta int64) {
	if delta >= 0 {
		s.amounts[s.bucketFor(daysOld)] += delta
		return
	}
	remaining := -delta
	for i := len(s.amounts) - 1; i >= 0 && remaining > 0; i-- {
		take := remaining
		if take > s.amounts[i] {
			take = s.amounts[i]
		}
		s.amounts[i] -= take
		remaining -= take
	}
}

// Total is the outstanding balance across all buckets.
func (s *AgingSchedule) Total() int64 {
	var total int64
	for _, a := range s.amounts {
		total += a
	}
	return total
}

// Buckets returns the labeled amounts, youngest first.
func (s *AgingSchedule) Buckets() []domain.BucketAmount {
	out := make([]domain.BucketAmount, len(s.amounts))
	for i := range s.amounts {
		out[i] = domain.BucketAmount{Label: s.labels[i], Amount: s.amounts[i]}
	}
	return out
}
