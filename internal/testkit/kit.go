package testkit

import (
	"math/rand"
)

// TestKit generates deterministic synthetic process data for tests and
// demos. Every generator takes an explicit seed so fixtures are
// reproducible.
type TestKit struct{}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{}
}

// NormalProcess generates n measurements from a stable process
// centered at mean with the given spread.
func (k *TestKit) NormalProcess(n int, mean, sd float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = mean + rng.NormFloat64()*sd
	}
	return sample
}

// ShiftedProcess generates a process that drifts upward by shift after
// the breakpoint, the classic special-cause pattern Western Electric
// rules should catch.
func (k *TestKit) ShiftedProcess(n int, mean, sd, shift float64, breakpoint int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	sample := make([]float64, n)
	for i := range sample {
		offset := 0.0
		if i >= breakpoint {
			offset = shift
		}
		sample[i] = mean + offset + rng.NormFloat64()*sd
	}
	return sample
}

// DefectSeries generates (defects, opportunities) subgroups around a
// target defect proportion.
func (k *TestKit) DefectSeries(groups, opportunitiesPerGroup int, proportion float64, seed int64) (defects, opportunities []int) {
	rng := rand.New(rand.NewSource(seed))
	defects = make([]int, groups)
	opportunities = make([]int, groups)
	for i := 0; i < groups; i++ {
		opportunities[i] = opportunitiesPerGroup
		count := 0
		for j := 0; j < opportunitiesPerGroup; j++ {
			if rng.Float64() < proportion {
				count++
			}
		}
		defects[i] = count
	}
	return defects, opportunities
}
