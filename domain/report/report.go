package report

import (
	"time"

	"drawcast/domain/candidate"
)

// Positions holds the seven resolved slot values of one outcome.
type Positions struct {
	P1 int `json:"P1"`
	P2 int `json:"P2"`
	P3 int `json:"P3"`
	P4 int `json:"P4"`
	P5 int `json:"P5"`
	P6 int `json:"P6"`
	P7 int `json:"P7"`
}

// Distances holds the five canonical gaps between consecutive positions.
// The first four are the configured constants, reproduced verbatim; only
// P6_P7 is computed from the selected star pair.
type Distances struct {
	P1P2 int `json:"P1_P2"`
	P2P3 int `json:"P2_P3"`
	P3P4 int `json:"P3_P4"`
	P4P5 int `json:"P4_P5"`
	P6P7 int `json:"P6_P7"`
}

// Outcome is one side of the report: a full seven-position combination
// with its distances.
type Outcome struct {
	Positions Positions `json:"positions"`
	Distances Distances `json:"distances"`
}

// Report is the final immutable result of one prediction run.
type Report struct {
	TargetDate  string  `json:"target_date"`
	DayOfWeek   string  `json:"day_of_week"`
	MostLikely  Outcome `json:"most_likely"`
	LeastLikely Outcome `json:"least_likely"`
}

// Assemble merges the extremal candidates of the two sub-problems into one
// report. Pure data transformation; no recomputation of the fixed gaps.
func Assemble(target time.Time, gaps candidate.Gaps,
	mostMain, leastMain candidate.Main, mostStar, leastStar candidate.Star) Report {
	return Report{
		TargetDate:  target.Format("2006-01-02"),
		DayOfWeek:   target.Weekday().String(),
		MostLikely:  newOutcome(gaps, mostMain, mostStar),
		LeastLikely: newOutcome(gaps, leastMain, leastStar),
	}
}

func newOutcome(gaps candidate.Gaps, m candidate.Main, s candidate.Star) Outcome {
	return Outcome{
		Positions: Positions{
			P1: m[0], P2: m[1], P3: m[2], P4: m[3], P5: m[4],
			P6: s[0], P7: s[1],
		},
		Distances: Distances{
			P1P2: gaps[0],
			P2P3: gaps[1],
			P3P4: gaps[2],
			P4P5: gaps[3],
			P6P7: s.Gap(),
		},
	}
}
