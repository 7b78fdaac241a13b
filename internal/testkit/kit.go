package testkit

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"drawcast/domain/draw"
	"drawcast/ports"
)

// InMemorySource is a DrawSource test double serving a fixed history.
type InMemorySource struct {
	History draw.History
	Err     error
}

var _ ports.DrawSource = (*InMemorySource)(nil)

func (s *InMemorySource) Load(ctx context.Context) (draw.History, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.History, nil
}

// SyntheticHistory generates n valid draws on alternating Tuesdays and
// Fridays, deterministically from seed.
func SyntheticHistory(n int, seed int64) draw.History {
	rng := rand.New(rand.NewSource(seed))
	// 2025-11-04 is a Tuesday.
	date := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)

	history := make(draw.History, 0, n)
	for i := 0; i < n; i++ {
		d := draw.Draw{Date: date}
		copy(d.Mains[:], pickAscending(rng, draw.MainSlots, 50))
		copy(d.Stars[:], pickAscending(rng, draw.StarSlots, 12))
		d.StarGap = d.Stars[1] - d.Stars[0]
		history = append(history, d)

		// Tuesday -> Friday is 3 days, Friday -> Tuesday is 4.
		if date.Weekday() == time.Tuesday {
			date = date.AddDate(0, 0, 3)
		} else {
			date = date.AddDate(0, 0, 4)
		}
	}
	return history
}

// pickAscending draws k distinct values from [1, max] in ascending order.
func pickAscending(rng *rand.Rand, k, max int) []int {
	seen := make(map[int]bool, k)
	values := make([]int, 0, k)
	for len(values) < k {
		v := rng.Intn(max) + 1
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Ints(values)
	return values
}

// HistoryFromMains builds a history whose main columns repeat the given
// tuple the given number of times, with fixed stars. Useful for steering
// frequency tables toward a known maximum.
func HistoryFromMains(mains [5]int, stars [2]int, repeat int) draw.History {
	history := make(draw.History, 0, repeat)
	date := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < repeat; i++ {
		history = append(history, draw.Draw{
			Date:    date,
			Mains:   mains,
			Stars:   stars,
			StarGap: stars[1] - stars[0],
		})
		date = date.AddDate(0, 0, 7)
	}
	return history
}
