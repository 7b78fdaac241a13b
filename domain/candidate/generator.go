package candidate

import (
	"drawcast/domain/core"
)

// GenerateMains enumerates every main candidate whose consecutive
// distances equal gaps and whose last value stays within [1, maxValue].
// Output is ascending by the first value, with no duplicates; that
// ordering is what makes the first-occurrence tie-break reproducible.
func GenerateMains(gaps Gaps, maxValue int) ([]Main, error) {
	if err := gaps.Validate(); err != nil {
		return nil, err
	}
	span := gaps.Span()
	if maxValue-span < 1 {
		return nil, core.NewRangeError(maxValue, span)
	}

	candidates := make([]Main, 0, maxValue-span)
	for p1 := 1; p1 <= maxValue-span; p1++ {
		c := Main{p1}
		for i, d := range gaps {
			c[i+1] = c[i] + d
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// GenerateStars enumerates every strictly increasing pair within
// [1, maxValue], ascending by the first value then the second. The count
// is maxValue*(maxValue-1)/2.
func GenerateStars(maxValue int) ([]Star, error) {
	if maxValue < 2 {
		return nil, core.NewRangeError(maxValue, 1)
	}

	candidates := make([]Star, 0, maxValue*(maxValue-1)/2)
	for a := 1; a < maxValue; a++ {
		for b := a + 1; b <= maxValue; b++ {
			candidates = append(candidates, Star{a, b})
		}
	}
	return candidates, nil
}
