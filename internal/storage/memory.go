package storage

import (
	"context"
	"sync"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// MemoryRepository keeps the registry in memory only
type MemoryRepository struct {
	mu      sync.RWMutex
	records registry
}

// NewMemoryRepository returns a repository seeded with the given records
func NewMemoryRepository(seed ...domain.EmployeeRecord) *MemoryRepository {
	r := &MemoryRepository{records: make(registry, len(seed))}
	for _, rec := range seed {
		r.records[rec.ID] = rec
	}
	return r
}

func (m *MemoryRepository) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records.sorted(), nil
}

func (m *MemoryRepository) Get(ctx context.Context, id int) (domain.EmployeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmployeeRecord{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records.get(id)
}

func (m *MemoryRepository) Create(ctx context.Context, name string, gross decimal.Decimal) (domain.EmployeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmployeeRecord{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.create(name, gross)
}

func (m *MemoryRepository) Update(ctx context.Context, record domain.EmployeeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.update(record)
}

func (m *MemoryRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.delete(id)
}
