package ports

import (
	"context"

	"drawcast/domain/draw"
)

// DrawSource supplies the historical draw history for one prediction run.
// Implementations must deliver draws already filtered to the configured
// weekdays, with all seven slots populated and the star gap derived; the
// core performs no weekday filtering of its own. I/O errors propagate
// unchanged.
type DrawSource interface {
	Load(ctx context.Context) (draw.History, error)
}
