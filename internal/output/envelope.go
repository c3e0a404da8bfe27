// Package output renders evaluation results for the calling RPA flow,
// wrapped in the run metadata the platform stores for its audit trail.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

// Envelope wraps one evaluation result with run identification and timing.
type Envelope struct {
	RunID       string         `json:"run_id"`
	CaseID      int            `json:"case_id"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	DurationMs  int64          `json:"duration_ms"`
	Result      *domain.Result `json:"result"`
}

// NewEnvelope builds the envelope for a finished run.
func NewEnvelope(caseID int, startedAt time.Time, result *domain.Result) Envelope {
	completed := time.Now().UTC()
	return Envelope{
		RunID:       uuid.New().String(),
		CaseID:      caseID,
		StartedAt:   startedAt.UTC(),
		CompletedAt: completed,
		DurationMs:  completed.Sub(startedAt).Milliseconds(),
		Result:      result,
	}
}
