package candidate

import (
	"drawcast/domain/draw"
	"drawcast/domain/frequency"
)

// MainScorer scores main candidates against one frequency table per slot.
type MainScorer struct {
	Tables [draw.MainSlots]frequency.Table
}

// Score sums the per-slot historical frequency of each value, with
// never-observed values contributing zero. Pure and idempotent.
func (s MainScorer) Score(c Main) int {
	total := 0
	for i, v := range c {
		total += s.Tables[i].Count(v)
	}
	return total
}

// StarScorer scores star candidates against the two star slot tables and
// the star-gap distribution table.
type StarScorer struct {
	Low  frequency.Table // P6
	High frequency.Table // P7
	Gaps frequency.Table // P7 - P6 distribution
}

// Score adds the P6 frequency, the P7 frequency, and the gap frequency,
// each defaulting to zero when absent. The three terms are unweighted:
// the gap distribution counts as much as either position table.
func (s StarScorer) Score(c Star) int {
	return s.Low.Count(c[0]) + s.High.Count(c[1]) + s.Gaps.Count(c.Gap())
}
