package crewpram

import "math"

// StageCount returns the number of stages P processors need to settle a
// search over n elements: the smallest g with (p+1)^g >= n+1.
//
// The count is computed with integer arithmetic, so it is never smaller than
// the number of stages the narrowing actually requires.
func StageCount(n, p int) int {
	if n < 1 || p < 1 {
		return 0
	}

	if p >= n {
		return 1
	}

	base := p + 1
	g, reach := 0, 1
	for reach <= n {
		g++
		if reach > math.MaxInt/base {
			break
		}
		reach *= base
	}
	return g
}

// LegacyStageCount returns ceil(log2(n+1) / log2(p+1)) computed in floating
// point. Used by BoundsLegacy.
func LegacyStageCount(n, p int) int {
	if n < 1 || p < 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(n+1)) / math.Log2(float64(p+1))))
}

// intPow returns base^exp for exp >= 0, saturating at math.MaxInt.
func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		if result > math.MaxInt/base {
			return math.MaxInt
		}
		result *= base
	}
	return result
}
