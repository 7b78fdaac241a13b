package candidate

import (
	"drawcast/domain/core"
)

// extremeIndices returns the positions of the maximum and minimum score.
// Ties go to the first occurrence in generation order, for both extremes;
// this is a determinism requirement, not an accident.
func extremeIndices(scores []int) (maxIdx, minIdx int) {
	for i, s := range scores {
		if s > scores[maxIdx] {
			maxIdx = i
		}
		if s < scores[minIdx] {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}

// SelectMains returns the highest- and lowest-scoring main candidates.
// candidates and scores are parallel slices in generation order.
func SelectMains(candidates []Main, scores []int) (most, least Main, err error) {
	if len(candidates) == 0 {
		return Main{}, Main{}, core.ErrNoCandidates
	}
	if len(candidates) != len(scores) {
		return Main{}, Main{}, core.ErrScoreMismatch
	}
	maxIdx, minIdx := extremeIndices(scores)
	return candidates[maxIdx], candidates[minIdx], nil
}

// SelectStars returns the highest- and lowest-scoring star candidates.
func SelectStars(candidates []Star, scores []int) (most, least Star, err error) {
	if len(candidates) == 0 {
		return Star{}, Star{}, core.ErrNoCandidates
	}
	if len(candidates) != len(scores) {
		return Star{}, Star{}, core.ErrScoreMismatch
	}
	maxIdx, minIdx := extremeIndices(scores)
	return candidates[maxIdx], candidates[minIdx], nil
}
