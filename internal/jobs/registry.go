package jobs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/pipeline"
)

// Runner is the fact-checking capability a job executes.
type Runner interface {
	Check(ctx context.Context, claim model.Claim, onProgress pipeline.ProgressFunc) (*model.FactCheckResult, error)
}

// Registry is the admission layer. It validates claims before accepting
// them, collapses duplicate submissions of the same normalized claim inside
// the dedup window onto one job, and bounds concurrency with a fixed number
// of slots. Jobs are not retried: a failed job stays failed.
type Registry struct {
	runner Runner
	logger *log.Logger

	mu    sync.RWMutex
	jobs  map[string]*job
	dedup *gocache.Cache // normalized-claim hash -> job id
	slots chan struct{}
}

type job struct {
	mu       sync.RWMutex
	snapshot model.JobSnapshot
}

// NewRegistry creates an admission layer with cfg.Slots concurrent jobs and
// a cfg.DedupWindow duplicate-collapse window.
func NewRegistry(runner Runner, cfg model.JobsConfig, logger *log.Logger) *Registry {
	slots := cfg.Slots
	if slots < 1 {
		slots = 1
	}
	return &Registry{
		runner: runner,
		logger: logger,
		jobs:   make(map[string]*job),
		dedup:  gocache.New(cfg.DedupWindow, cfg.DedupWindow),
		slots:  make(chan struct{}, slots),
	}
}

// Submit validates and admits a claim. Invalid claims are rejected without
// creating a job. A resubmission of the same normalized claim within the
// dedup window returns the existing job's id.
func (r *Registry) Submit(ctx context.Context, text string) (string, error) {
	claim, err := model.NewClaim(text)
	if err != nil {
		return "", err
	}

	key := claimKey(claim)

	r.mu.Lock()
	if existing, ok := r.dedup.Get(key); ok {
		id := existing.(string)
		r.mu.Unlock()
		r.logf("job %s: duplicate submission collapsed", id)
		return id, nil
	}

	id := uuid.NewString()
	j := &job{snapshot: model.JobSnapshot{
		ID:          id,
		State:       model.JobWaiting,
		SubmittedAt: time.Now(),
	}}
	r.jobs[id] = j
	r.dedup.SetDefault(key, id)
	r.mu.Unlock()

	go r.run(ctx, j, claim)
	r.logf("job %s: admitted claim %q", id, claim.Text)
	return id, nil
}

// Status returns the current snapshot of a job.
func (r *Registry) Status(jobID string) (model.JobSnapshot, bool) {
	r.mu.RLock()
	j, ok := r.jobs[jobID]
	r.mu.RUnlock()
	if !ok {
		return model.JobSnapshot{}, false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.snapshot, true
}

// run waits for a slot, executes the claim and records the terminal state.
func (r *Registry) run(ctx context.Context, j *job, claim model.Claim) {
	select {
	case r.slots <- struct{}{}:
		defer func() { <-r.slots }()
	case <-ctx.Done():
		j.fail(ctx.Err().Error())
		return
	}

	j.setState(model.JobActive)

	result, err := r.runner.Check(ctx, claim, j.setProgress)
	if err != nil {
		r.logf("job %s: failed: %v", j.id(), err)
		j.fail(err.Error())
		return
	}
	j.complete(result)
	r.logf("job %s: completed with verdict %s", j.id(), result.Verdict)
}

func (r *Registry) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func (j *job) id() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.snapshot.ID
}

func (j *job) setState(s model.JobState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.snapshot.State.Terminal() {
		j.snapshot.State = s
	}
}

func (j *job) setProgress(pct int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if pct > j.snapshot.Progress {
		j.snapshot.Progress = pct
	}
}

func (j *job) complete(result *model.FactCheckResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.snapshot.State = model.JobCompleted
	j.snapshot.Progress = 100
	j.snapshot.Result = result
}

func (j *job) fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.snapshot.State = model.JobFailed
	j.snapshot.Error = msg
}

// claimKey hashes the normalized claim text so the dedup window treats
// case- and whitespace-variants as the same submission.
func claimKey(claim model.Claim) string {
	sum := sha256.Sum256([]byte(claim.Normalized()))
	return hex.EncodeToString(sum[:])
}
