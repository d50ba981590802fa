package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/store"
)

// Checker runs the comprehensive pipeline and falls back to the simplified
// one when it fails. Results and evidence are persisted through the store;
// an error escapes only when both pipelines collapse.
type Checker struct {
	orch       *Orchestrator
	simplified *Simplified
	store      store.Store
	logger     *log.Logger
}

// NewChecker assembles the two-tier pipeline.
func NewChecker(orch *Orchestrator, simplified *Simplified, st store.Store, logger *log.Logger) *Checker {
	return &Checker{orch: orch, simplified: simplified, store: st, logger: logger}
}

// Check fact-checks one claim end to end.
func (c *Checker) Check(ctx context.Context, claim model.Claim, onProgress ProgressFunc) (*model.FactCheckResult, error) {
	recordID, err := c.store.CreateRecord(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	result, err := c.orch.Run(ctx, claim, onProgress)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoResult, ctx.Err())
		}
		c.logf("comprehensive pipeline failed, falling back to simplified: %v", err)
		result = c.simplified.Run(ctx, claim, onProgress)
	}
	if result == nil {
		return nil, ErrNoResult
	}

	c.persist(ctx, recordID, result)
	return result, nil
}

// persist is best-effort: a storage failure is logged, not propagated, so a
// completed verdict is never discarded over bookkeeping.
func (c *Checker) persist(ctx context.Context, recordID string, result *model.FactCheckResult) {
	for _, ev := range flattenBuckets(result.Evidence) {
		if err := c.store.AppendEvidence(ctx, recordID, ev); err != nil {
			c.logf("warn: append evidence for record %s: %v", recordID, err)
			break
		}
	}
	if err := c.store.UpdateRecord(ctx, recordID, result); err != nil {
		c.logf("warn: update record %s: %v", recordID, err)
	}
}

func (c *Checker) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func flattenBuckets(b model.EvidenceBuckets) []model.Evidence {
	out := make([]model.Evidence, 0, b.Total())
	out = append(out, b.Supporting...)
	out = append(out, b.Contradicting...)
	out = append(out, b.Neutral...)
	return out
}
