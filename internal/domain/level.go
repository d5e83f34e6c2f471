package domain

import "math"

// idealResponseSeconds is the response time that neither rewards nor
// penalizes; faster answers scale the gain up, slower ones scale it down.
const idealResponseSeconds = 30

// Buckets are the quantized difficulty labels used to partition the
// question bank and drive generation prompts.
var Buckets = []int{20, 40, 60, 80, 100}

// Adjust maps the current level, answer correctness, and response time to
// a new level in [0, 100].
//
// The asymmetry is deliberate policy: a correct answer awards up to 15
// points (10 * time factor), an incorrect one costs between ~3.3 and 10
// (5 / time factor), so the estimate drifts upward for a user answering
// at a steady pace. Changing these constants changes assessment behavior.
func Adjust(level float64, correct bool, timeTaken float64) float64 {
	timeFactor := clamp(idealResponseSeconds/(timeTaken+1), 0.5, 1.5)
	if correct {
		return math.Min(100, level+10*timeFactor)
	}
	return math.Max(0, level-5/timeFactor)
}

// BucketFor quantizes a raw level into one of Buckets. The bucket, not the
// raw level, selects the bank partition and the generation difficulty, so
// small level fluctuations do not thrash across partitions.
func BucketFor(level float64) int {
	switch {
	case level <= 20:
		return 20
	case level <= 40:
		return 40
	case level <= 60:
		return 60
	case level <= 80:
		return 80
	default:
		return 100
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
