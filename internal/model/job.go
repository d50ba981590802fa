package model

import "time"

// JobState tracks a submitted fact-check job through its lifecycle.
type JobState string

const (
	JobWaiting   JobState = "waiting"
	JobActive    JobState = "active"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// ProgressFunc receives the 0-100 progress checkpoints of a running check.
type ProgressFunc func(percent int)

// JobSnapshot is the poll-visible view of a job.
type JobSnapshot struct {
	ID          string           `json:"id"`
	State       JobState         `json:"state"`
	Progress    int              `json:"progress"` // 0-100
	SubmittedAt time.Time        `json:"submitted_at"`
	Result      *FactCheckResult `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
}
