package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ppiankov/veridict/internal/model"
)

// Store is the persistence collaborator. The pipeline creates one record per
// job, appends evidence as it is extracted, and writes the final result
// once; the record is read-only afterwards.
type Store interface {
	CreateRecord(ctx context.Context, claim model.Claim) (string, error)
	UpdateRecord(ctx context.Context, recordID string, result *model.FactCheckResult) error
	AppendEvidence(ctx context.Context, recordID string, evidence model.Evidence) error
}

// Record is one persisted fact-check.
type Record struct {
	ID       string
	Claim    model.Claim
	Evidence []model.Evidence
	Result   *model.FactCheckResult
}

// Memory is the in-process Store used by the CLI and tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

// CreateRecord registers a new record for the claim.
func (m *Memory) CreateRecord(_ context.Context, claim model.Claim) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = &Record{ID: id, Claim: claim}
	return id, nil
}

// UpdateRecord attaches the final result.
func (m *Memory) UpdateRecord(_ context.Context, recordID string, result *model.FactCheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[recordID]
	if !ok {
		return fmt.Errorf("record %s not found", recordID)
	}
	rec.Result = result
	return nil
}

// AppendEvidence adds one evidence item to the record.
func (m *Memory) AppendEvidence(_ context.Context, recordID string, evidence model.Evidence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[recordID]
	if !ok {
		return fmt.Errorf("record %s not found", recordID)
	}
	rec.Evidence = append(rec.Evidence, evidence)
	return nil
}

// Get returns a record by id.
func (m *Memory) Get(recordID string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[recordID]
	return rec, ok
}

// All returns every record. Order is unspecified.
func (m *Memory) All() []*Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out
}
