package profile

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"drawcast/domain/draw"
	"drawcast/domain/frequency"
)

// SlotProfile describes the historical distribution of one slot. Purely
// descriptive; the scoring pipeline never consults it.
type SlotProfile struct {
	Slot    string  `json:"slot"`
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
	Entropy float64 `json:"entropy"`
}

// Describe profiles every slot column of the history plus the star-gap
// distribution, in slot order.
func Describe(h draw.History) ([]SlotProfile, error) {
	profiles := make([]SlotProfile, 0, draw.MainSlots+draw.StarSlots+1)

	for i := 0; i < draw.MainSlots; i++ {
		p, err := describeColumn(slotName(i), h.MainColumn(i))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	for i := 0; i < draw.StarSlots; i++ {
		p, err := describeColumn(slotName(draw.MainSlots+i), h.StarColumn(i))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	p, err := describeColumn("D67", h.StarGaps())
	if err != nil {
		return nil, err
	}
	profiles = append(profiles, p)

	return profiles, nil
}

func describeColumn(name string, values []int) (SlotProfile, error) {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return SlotProfile{}, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return SlotProfile{}, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return SlotProfile{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return SlotProfile{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return SlotProfile{}, err
	}

	return SlotProfile{
		Slot:    name,
		Samples: len(values),
		Mean:    mean,
		StdDev:  stdDev,
		Min:     min,
		Max:     max,
		Median:  median,
		Entropy: tableEntropy(frequency.Build(values)),
	}, nil
}

// tableEntropy computes the Shannon entropy of the slot's value
// frequencies. Higher means the historical values are spread more evenly.
func tableEntropy(t frequency.Table) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	p := make([]float64, 0, len(t))
	for _, n := range t {
		p = append(p, float64(n)/float64(total))
	}
	return stat.Entropy(p)
}

func slotName(i int) string {
	return [7]string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}[i]
}
