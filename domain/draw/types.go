package draw

import (
	"time"

	"drawcast/domain/core"
)

// Slot counts for one draw record.
const (
	MainSlots = 5 // P1..P5
	StarSlots = 2 // P6, P7
)

// Draw is one historical observation: five main positions and two star
// positions, each ascending, plus the star gap derived upstream by the
// feature step (P7 - P6). Draws are read-only once loaded.
type Draw struct {
	Date    time.Time
	Mains   [MainSlots]int
	Stars   [StarSlots]int
	StarGap int
}

// Validate checks slot ranges and ordering against the configured maxima.
func (d Draw) Validate(mainMax, starMax int) error {
	for i, v := range d.Mains {
		if v < 1 || v > mainMax {
			return core.NewDrawError(i+1, v)
		}
		if i > 0 && v <= d.Mains[i-1] {
			return core.NewDrawError(i+1, v)
		}
	}
	for i, v := range d.Stars {
		if v < 1 || v > starMax {
			return core.NewDrawError(MainSlots+i+1, v)
		}
		if i > 0 && v <= d.Stars[i-1] {
			return core.NewDrawError(MainSlots+i+1, v)
		}
	}
	return nil
}

// History is the full set of loaded observations, already filtered to the
// relevant weekdays by the data source.
type History []Draw

// MainColumn returns the values of main slot i (0-based) across the history.
func (h History) MainColumn(i int) []int {
	col := make([]int, len(h))
	for j, d := range h {
		col[j] = d.Mains[i]
	}
	return col
}

// StarColumn returns the values of star slot i (0-based) across the history.
func (h History) StarColumn(i int) []int {
	col := make([]int, len(h))
	for j, d := range h {
		col[j] = d.Stars[i]
	}
	return col
}

// StarGaps returns the derived star-gap column across the history.
func (h History) StarGaps() []int {
	col := make([]int, len(h))
	for j, d := range h {
		col[j] = d.StarGap
	}
	return col
}
