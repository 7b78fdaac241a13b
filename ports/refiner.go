package ports

import (
	"context"

	"drawcast/domain/report"
)

// Refiner is the optional post-processing hook applied to the assembled
// report. It must return a report of the same shape. The hook is disabled
// by default; when disabled the assembled report passes through untouched.
// Injectable so the core stays testable without it.
type Refiner interface {
	Refine(ctx context.Context, rep report.Report) (report.Report, error)
}

// RefinerFunc adapts a plain function to the Refiner interface.
type RefinerFunc func(ctx context.Context, rep report.Report) (report.Report, error)

func (f RefinerFunc) Refine(ctx context.Context, rep report.Report) (report.Report, error) {
	return f(ctx, rep)
}
