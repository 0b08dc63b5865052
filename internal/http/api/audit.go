package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
)

// RunResponse is the wire form of an audit run, shared by the feed and audit endpoints.
type RunResponse struct {
	ID         uuid.UUID      `json:"id"`
	Kind       audit.Kind     `json:"kind"`
	RanAt      time.Time      `json:"ran_at"`
	Passed     bool           `json:"passed"`
	SnapshotID *uuid.UUID     `json:"snapshot_id,omitempty"`
	Results    []audit.Result `json:"results"`
}

func NewRunResponse(run *audit.Run) *RunResponse {
	if run == nil {
		return nil
	}

	return &RunResponse{
		ID:         run.ID,
		Kind:       run.Kind,
		RanAt:      run.RanAt,
		Passed:     run.Passed,
		SnapshotID: run.SnapshotID,
		Results:    run.Results,
	}
}
