package battles

import (
	"context"
	"sync"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/pkg/clock"
)

type inMemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	records map[string]BattleRecord
}

// NewInMemoryRepository creates a map-backed repository for tests and
// single-process development runs.
func NewInMemoryRepository(clk clock.Clock) Repository {
	if clk == nil {
		clk = clock.New()
	}
	return &inMemoryRepository{
		clock:   clk,
		records: make(map[string]BattleRecord),
	}
}

var _ Repository = (*inMemoryRepository)(nil)

// Save stores or replaces a battle record
func (r *inMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	record := *input.Record
	if record.CompletedAt.IsZero() {
		record.CompletedAt = r.clock.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record

	out := record
	return &SaveOutput{Record: &out}, nil
}

// Get retrieves a battle record by ID
func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[input.ID]
	if !ok {
		return nil, errors.NotFound("battle record not found: " + input.ID)
	}

	out := record
	return &GetOutput{Record: &out}, nil
}

// Delete removes a battle record
func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, input.ID)

	return &DeleteOutput{}, nil
}
