package worker

import (
	"context"
	"log"
	"sort"

	"github.com/ppiankov/veridict/internal/model"
)

// Checker is the single-claim capability a batch fans out over.
type Checker interface {
	Check(ctx context.Context, claim model.Claim, onProgress model.ProgressFunc) (*model.FactCheckResult, error)
}

// BatchItem is the outcome for one claim in a batch.
type BatchItem struct {
	Index  int
	Claim  string
	Result *model.FactCheckResult
	Err    error
}

// GetError implements Result.
func (b *BatchItem) GetError() error {
	return b.Err
}

// claimJob adapts one claim to the pool's Job interface.
type claimJob struct {
	index   int
	text    string
	checker Checker
	logger  *log.Logger
}

func (j *claimJob) Execute(ctx context.Context) Result {
	item := &BatchItem{Index: j.index, Claim: j.text}

	claim, err := model.NewClaim(j.text)
	if err != nil {
		item.Err = err
		return item
	}

	result, err := j.checker.Check(ctx, claim, nil)
	if err != nil {
		item.Err = err
		return item
	}
	item.Result = result
	if j.logger != nil {
		j.logger.Printf("batch claim %d: %s (%.0f%%)", j.index, result.Verdict, result.Confidence)
	}
	return item
}

// BatchProcessor fact-checks many claims concurrently over a worker pool.
type BatchProcessor struct {
	checker Checker
	workers int
	logger  *log.Logger
}

// NewBatchProcessor creates a batch processor with the given fan-out width.
func NewBatchProcessor(checker Checker, workers int, logger *log.Logger) *BatchProcessor {
	return &BatchProcessor{checker: checker, workers: workers, logger: logger}
}

// Process checks every claim and returns the items in submission order.
// Per-claim failures are reported in the item, not as a batch error.
func (b *BatchProcessor) Process(ctx context.Context, claims []string) []*BatchItem {
	pool := NewPool(b.workers)
	pool.Start()

	for i, text := range claims {
		pool.Submit(&claimJob{index: i, text: text, checker: b.checker, logger: b.logger})
	}

	done := make(chan []Result, 1)
	go func() { done <- pool.Wait() }()

	var results []Result
	select {
	case results = <-done:
	case <-ctx.Done():
		pool.Shutdown()
		results = <-done
	}

	items := make([]*BatchItem, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*BatchItem); ok {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Index < items[j].Index })
	return items
}
