package hr

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Result is the output of one pipeline invocation. All three structures are
// created fresh per run; there is no history of prior runs to diff against.
type Result struct {
	RunID    string        `json:"run_id"`
	Records  []Employee    `json:"records"`
	Issues   []Issue       `json:"issues"`
	KPIs     KPISnapshot   `json:"kpis"`
	Duration time.Duration `json:"duration"`
}

// Run executes the full pipeline: clean, then validate and compute KPIs over
// the same canonical set. Validator and MetricEngine have no ordering
// dependency on each other; both are read-only over the cleaned records.
func Run(raw []RawRecord) Result {
	start := time.Now()

	records := Clean(raw)
	issues := Validate(records)
	kpis := ComputeKPIs(records)

	result := Result{
		RunID:    uuid.NewString(),
		Records:  records,
		Issues:   issues,
		KPIs:     kpis,
		Duration: time.Since(start),
	}

	slog.Debug("pipeline run complete",
		"run_id", result.RunID,
		"records", len(records),
		"issues", len(issues),
		"duration", result.Duration,
	)

	return result
}
