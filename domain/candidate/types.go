package candidate

import (
	"drawcast/domain/core"
	"drawcast/domain/draw"
)

// Main is a five-value candidate for slots P1..P5, ascending by
// construction: each value follows the previous by a fixed gap.
type Main [draw.MainSlots]int

// Star is a strictly increasing pair candidate for slots P6 and P7.
type Star [draw.StarSlots]int

// Gap returns the distance between the two star values.
func (s Star) Gap() int {
	return s[1] - s[0]
}

// Gaps holds the four fixed consecutive distances that constrain main
// candidates. These are configuration constants, reproduced verbatim in
// the final report rather than recomputed.
type Gaps [draw.MainSlots - 1]int

// Span returns the total distance covered from P1 to P5.
func (g Gaps) Span() int {
	sum := 0
	for _, d := range g {
		sum += d
	}
	return sum
}

// Validate rejects non-positive gaps.
func (g Gaps) Validate() error {
	for _, d := range g {
		if d <= 0 {
			return core.ErrInvalidGap
		}
	}
	return nil
}
