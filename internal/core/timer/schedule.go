package timer

import "time"

// RandomSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Int63n(n int64) int64
}

// Range defines a duration range with uniform sampling over [Min, Max).
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range, or Min when the range
// is empty.
func (value Range) Random(rng RandomSource) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}
