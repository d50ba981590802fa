package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoResult marks the catastrophic case: both the comprehensive and the
// simplified pipeline failed to produce any result. Only then does a job
// transition to failed.
var ErrNoResult = errors.New("no result could be produced")

// PhaseTimeoutError reports that one phase's sub-budget expired. Recoverable
// by skipping forward with partial data, except for preprocessing which has
// no partial mode.
type PhaseTimeoutError struct {
	Phase  Phase
	Budget time.Duration
}

func (e *PhaseTimeoutError) Error() string {
	return fmt.Sprintf("phase %s exceeded its %v budget", e.Phase, e.Budget)
}

// BudgetExhaustedError reports that the global budget is insufficient to
// safely start a phase. Fatal for the comprehensive run; the caller falls
// back to the simplified pipeline.
type BudgetExhaustedError struct {
	Phase     Phase
	Remaining time.Duration
	Required  time.Duration
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("insufficient budget to start phase %s: %v remaining, %v required", e.Phase, e.Remaining, e.Required)
}
