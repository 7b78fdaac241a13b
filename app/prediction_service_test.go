package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawcast/domain/candidate"
	"drawcast/domain/core"
	"drawcast/domain/draw"
	"drawcast/domain/report"
	"drawcast/internal/config"
	"drawcast/internal/testkit"
	"drawcast/ports"
)

func testConfig() config.PredictionConfig {
	return config.PredictionConfig{
		TargetDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Gaps:       candidate.Gaps{5, 2, 11, 10},
		MainMax:    50,
		StarMax:    12,
		Weekdays:   []time.Weekday{time.Tuesday, time.Friday},
	}
}

func TestPredict_CandidateCounts(t *testing.T) {
	source := &testkit.InMemorySource{History: testkit.SyntheticHistory(40, 1)}
	svc := NewPredictionService(testConfig(), source, nil, nil)

	result, err := svc.Predict(context.Background())
	require.NoError(t, err)

	// 50 - (5+2+11+10) = 22 main tuples; 12*11/2 = 66 star pairs.
	assert.Equal(t, 22, result.MainCandidates)
	assert.Equal(t, 66, result.StarCandidates)
	assert.Equal(t, 40, result.Draws)
	assert.False(t, core.ID(result.RunID).IsEmpty())
	assert.Len(t, result.Profiles, 8)
}

func TestPredict_KnownMaximumWins(t *testing.T) {
	// Every historical draw is the v1=10 tuple itself, so each slot table
	// supports only that candidate: unique maximum 25, all others 0.
	source := &testkit.InMemorySource{
		History: testkit.HistoryFromMains([5]int{10, 15, 17, 28, 38}, [2]int{3, 9}, 5),
	}
	svc := NewPredictionService(testConfig(), source, nil, nil)

	result, err := svc.Predict(context.Background())
	require.NoError(t, err)

	most := result.Report.MostLikely.Positions
	assert.Equal(t, 10, most.P1)
	assert.Equal(t, 15, most.P2)
	assert.Equal(t, 17, most.P3)
	assert.Equal(t, 28, most.P4)
	assert.Equal(t, 38, most.P5)

	// Stars (3,9) dominate all three terms.
	assert.Equal(t, 3, most.P6)
	assert.Equal(t, 9, most.P7)
	assert.Equal(t, 6, result.Report.MostLikely.Distances.P6P7)

	// The least-likely side is the first zero-scoring candidate in
	// generation order.
	least := result.Report.LeastLikely.Positions
	assert.Equal(t, 1, least.P1)
	assert.Equal(t, 1, least.P6)
	assert.Equal(t, 2, least.P7)
}

func TestPredict_Deterministic(t *testing.T) {
	source := &testkit.InMemorySource{History: testkit.SyntheticHistory(60, 7)}
	svc := NewPredictionService(testConfig(), source, nil, nil)

	first, err := svc.Predict(context.Background())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report)
}

func TestPredict_FixedGapsInReport(t *testing.T) {
	source := &testkit.InMemorySource{History: testkit.SyntheticHistory(25, 3)}
	svc := NewPredictionService(testConfig(), source, nil, nil)

	result, err := svc.Predict(context.Background())
	require.NoError(t, err)

	for _, d := range []report.Distances{result.Report.MostLikely.Distances, result.Report.LeastLikely.Distances} {
		assert.Equal(t, 5, d.P1P2)
		assert.Equal(t, 2, d.P2P3)
		assert.Equal(t, 11, d.P3P4)
		assert.Equal(t, 10, d.P4P5)
	}
	assert.Equal(t, "2026-02-03", result.Report.TargetDate)
	assert.Equal(t, "Tuesday", result.Report.DayOfWeek)
}

func TestPredict_EmptyHistoryFails(t *testing.T) {
	svc := NewPredictionService(testConfig(), &testkit.InMemorySource{}, nil, nil)

	_, err := svc.Predict(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyHistory)
}

func TestPredict_SourceErrorPropagates(t *testing.T) {
	sourceErr := fmt.Errorf("csv file not found")
	svc := NewPredictionService(testConfig(), &testkit.InMemorySource{Err: sourceErr}, nil, nil)

	_, err := svc.Predict(context.Background())
	assert.ErrorIs(t, err, sourceErr)
}

func TestPredict_RangeCollapsedFails(t *testing.T) {
	cfg := testConfig()
	cfg.MainMax = 28 // equals the gap span, no room for P1

	svc := NewPredictionService(cfg, &testkit.InMemorySource{History: testkit.SyntheticHistory(5, 1)}, nil, nil)
	_, err := svc.Predict(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRangeCollapsed)
}

// recordingRefiner swaps the star pair so tests can see the hook ran.
type recordingRefiner struct {
	calls int
}

var _ ports.Refiner = (*recordingRefiner)(nil)

func (r *recordingRefiner) Refine(ctx context.Context, rep report.Report) (report.Report, error) {
	r.calls++
	rep.MostLikely.Positions.P6 = 1
	rep.MostLikely.Positions.P7 = 12
	rep.MostLikely.Distances.P6P7 = 11
	return rep, nil
}

func TestPredict_RefinerApplied(t *testing.T) {
	refiner := &recordingRefiner{}
	source := &testkit.InMemorySource{History: testkit.SyntheticHistory(10, 2)}
	svc := NewPredictionService(testConfig(), source, refiner, nil)

	result, err := svc.Predict(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, refiner.calls)
	assert.Equal(t, 1, result.Report.MostLikely.Positions.P6)
	assert.Equal(t, 12, result.Report.MostLikely.Positions.P7)
}

func TestPredict_NilRefinerPassesThrough(t *testing.T) {
	history := testkit.HistoryFromMains([5]int{10, 15, 17, 28, 38}, [2]int{3, 9}, 3)
	withNil := NewPredictionService(testConfig(), &testkit.InMemorySource{History: history}, nil, nil)
	withIdentity := NewPredictionService(testConfig(), &testkit.InMemorySource{History: history},
		ports.RefinerFunc(func(ctx context.Context, rep report.Report) (report.Report, error) {
			return rep, nil
		}), nil)

	a, err := withNil.Predict(context.Background())
	require.NoError(t, err)
	b, err := withIdentity.Predict(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Report, b.Report)
}

func TestPredict_SparseHistorySelectsByPartialHits(t *testing.T) {
	h := draw.History{{
		Date:    time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		Mains:   [5]int{5, 10, 20, 30, 45},
		Stars:   [2]int{6, 7},
		StarGap: 1,
	}}
	svc := NewPredictionService(testConfig(), &testkit.InMemorySource{History: h}, nil, nil)

	result, err := svc.Predict(context.Background())
	require.NoError(t, err)

	most := result.Report.MostLikely.Positions
	// The v1=5 tuple (5,10,12,23,33) hits both P1=5 and P2=10, scoring 2;
	// every other tuple scores at most 1.
	assert.Equal(t, 5, most.P1)
	assert.Equal(t, 6, most.P6)
	assert.Equal(t, 7, most.P7)
}
