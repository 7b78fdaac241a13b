package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"drawcast/domain/report"
	"drawcast/internal/errors"
	"drawcast/ports"
)

const refinePrompt = `Below is a JSON report of the most and least likely
seven-position draw combinations for a target date, derived from historical
frequencies. Review it and return a report with EXACTLY the same JSON shape
(same keys, integer values). You may adjust the selected positions, but keep
P1..P5 consistent with the fixed P1_P2..P4_P5 distances and keep P6 < P7.
Return only the JSON document, no commentary.

%s`

// Refiner sends the assembled report through a chat-completion model and
// parses a same-shape report back. It is the disabled-by-default
// post-processing hook; the service only constructs it when refinement is
// enabled in configuration.
type Refiner struct {
	client    Client
	model     string
	maxTokens int
}

var _ ports.Refiner = (*Refiner)(nil)

// NewRefiner creates a report refiner over the given client.
func NewRefiner(client Client, model string) *Refiner {
	return &Refiner{client: client, model: model, maxTokens: 2048}
}

// Refine submits the report and decodes the model's replacement. Any
// transport or parse failure is fatal to the run, matching the error
// policy of the rest of the pipeline.
func (r *Refiner) Refine(ctx context.Context, rep report.Report) (report.Report, error) {
	encoded, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return rep, errors.Wrap(err, "failed to encode report for refinement")
	}

	raw, err := r.client.ChatCompletion(ctx, r.model, fmt.Sprintf(refinePrompt, encoded), r.maxTokens)
	if err != nil {
		return rep, errors.ExternalServiceError("llm", err)
	}

	var refined report.Report
	if err := json.Unmarshal([]byte(stripFences(raw)), &refined); err != nil {
		return rep, errors.ExternalServiceError("llm", fmt.Errorf("malformed refined report: %w", err))
	}
	if refined.TargetDate == "" || refined.MostLikely.Positions.P1 == 0 {
		return rep, errors.ExternalServiceError("llm", fmt.Errorf("refined report missing fields"))
	}
	return refined, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
