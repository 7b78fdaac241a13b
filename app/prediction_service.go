package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"drawcast/domain/candidate"
	"drawcast/domain/core"
	"drawcast/domain/draw"
	"drawcast/domain/frequency"
	"drawcast/domain/report"
	"drawcast/internal"
	"drawcast/internal/config"
	"drawcast/internal/errors"
	"drawcast/internal/profile"
	"drawcast/ports"
)

// PredictionService runs one complete prediction: load history, build
// frequency tables, enumerate and score candidates, select extremes,
// assemble the report, and optionally refine it.
type PredictionService struct {
	cfg     config.PredictionConfig
	source  ports.DrawSource
	refiner ports.Refiner // nil when refinement is disabled
	logger  *internal.Logger
}

// RunResult carries the report together with run metadata.
type RunResult struct {
	RunID          core.RunID            `json:"run_id"`
	Report         report.Report         `json:"report"`
	Profiles       []profile.SlotProfile `json:"profiles"`
	Draws          int                   `json:"draws"`
	MainCandidates int                   `json:"main_candidates"`
	StarCandidates int                   `json:"star_candidates"`
	RuntimeMs      int64                 `json:"runtime_ms"`
}

// NewPredictionService creates a prediction service. refiner may be nil,
// which leaves the assembled report untouched.
func NewPredictionService(cfg config.PredictionConfig, source ports.DrawSource, refiner ports.Refiner, logger *internal.Logger) *PredictionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PredictionService{cfg: cfg, source: source, refiner: refiner, logger: logger}
}

// Predict executes one run. All errors are fatal to the run; there is no
// retry and no partial report.
func (s *PredictionService) Predict(ctx context.Context) (*RunResult, error) {
	runID := core.NewRunID()
	start := time.Now()

	history, err := s.source.Load(ctx)
	if err != nil {
		// Upstream I/O errors propagate unchanged.
		return nil, err
	}
	if len(history) == 0 {
		return nil, errors.Wrap(core.ErrEmptyHistory, "no draws available for scoring")
	}
	s.logger.Info("run %s: loaded %d draws", runID, len(history))

	var mostMain, leastMain candidate.Main
	var mostStar, leastStar candidate.Star
	var mainCount, starCount int

	// The two sub-problems are independent; each is internally sequential,
	// so the ordering and tie-break guarantees hold regardless of which
	// finishes first.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mostMain, leastMain, mainCount, err = s.solveMains(gctx, history)
		return err
	})
	g.Go(func() error {
		var err error
		mostStar, leastStar, starCount, err = s.solveStars(gctx, history)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := report.Assemble(s.cfg.TargetDate, s.cfg.Gaps, mostMain, leastMain, mostStar, leastStar)

	if s.refiner != nil {
		s.logger.Info("run %s: applying refinement hook", runID)
		rep, err = s.refiner.Refine(ctx, rep)
		if err != nil {
			return nil, errors.Wrap(err, "refinement failed")
		}
	}

	profiles, err := profile.Describe(history)
	if err != nil {
		return nil, errors.Wrap(err, "failed to profile history")
	}
	for _, p := range profiles {
		s.logger.Debug("run %s: slot %s mean=%.2f stddev=%.2f entropy=%.3f",
			runID, p.Slot, p.Mean, p.StdDev, p.Entropy)
	}

	return &RunResult{
		RunID:          runID,
		Report:         rep,
		Profiles:       profiles,
		Draws:          len(history),
		MainCandidates: mainCount,
		StarCandidates: starCount,
		RuntimeMs:      time.Since(start).Milliseconds(),
	}, nil
}

// solveMains scores the gap-constrained five-tuples against the per-slot
// frequency tables and returns the extremes.
func (s *PredictionService) solveMains(ctx context.Context, history draw.History) (most, least candidate.Main, count int, err error) {
	if ctx.Err() != nil {
		return most, least, 0, ctx.Err()
	}

	candidates, err := candidate.GenerateMains(s.cfg.Gaps, s.cfg.MainMax)
	if err != nil {
		return most, least, 0, errors.Wrap(err, "main candidate generation failed")
	}

	var scorer candidate.MainScorer
	for i := range scorer.Tables {
		scorer.Tables[i] = frequency.Build(history.MainColumn(i))
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = scorer.Score(c)
	}

	most, least, err = candidate.SelectMains(candidates, scores)
	if err != nil {
		return most, least, 0, errors.Wrap(err, "main selection failed")
	}
	return most, least, len(candidates), nil
}

// solveStars scores the strictly increasing pairs against the star tables
// and the star-gap distribution, and returns the extremes.
func (s *PredictionService) solveStars(ctx context.Context, history draw.History) (most, least candidate.Star, count int, err error) {
	if ctx.Err() != nil {
		return most, least, 0, ctx.Err()
	}

	candidates, err := candidate.GenerateStars(s.cfg.StarMax)
	if err != nil {
		return most, least, 0, errors.Wrap(err, "star candidate generation failed")
	}

	scorer := candidate.StarScorer{
		Low:  frequency.Build(history.StarColumn(0)),
		High: frequency.Build(history.StarColumn(1)),
		Gaps: frequency.Build(history.StarGaps()),
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = scorer.Score(c)
	}

	most, least, err = candidate.SelectStars(candidates, scores)
	if err != nil {
		return most, least, 0, errors.Wrap(err, "star selection failed")
	}
	return most, least, len(candidates), nil
}
