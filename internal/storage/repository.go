// Package storage persists the employee registry.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("employee not found")
	ErrInvalidRecord = errors.New("invalid employee record")
)

// EmployeeRepository stores employee records keyed by sequential id
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.EmployeeRecord, error)
	Get(ctx context.Context, id int) (domain.EmployeeRecord, error)
	Create(ctx context.Context, name string, gross decimal.Decimal) (domain.EmployeeRecord, error)
	Update(ctx context.Context, record domain.EmployeeRecord) error
	Delete(ctx context.Context, id int) error
}

// registry is the in-memory state shared by the repository implementations.
// It is not safe for concurrent use; callers hold their own lock.
type registry map[int]domain.EmployeeRecord

func (r registry) sorted() []domain.EmployeeRecord {
	out := make([]domain.EmployeeRecord, 0, len(r))
	for _, rec := range r {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r registry) nextID() int {
	maxID := 0
	for id := range r {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (r registry) clone() registry {
	c := make(registry, len(r))
	for id, rec := range r {
		c[id] = rec
	}
	return c
}

func (r registry) get(id int) (domain.EmployeeRecord, error) {
	rec, ok := r[id]
	if !ok {
		return domain.EmployeeRecord{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (r registry) create(name string, gross decimal.Decimal) (domain.EmployeeRecord, error) {
	rec := domain.EmployeeRecord{ID: r.nextID(), Name: strings.TrimSpace(name), GrossSalary: gross}
	if err := checkRecord(rec); err != nil {
		return domain.EmployeeRecord{}, err
	}
	r[rec.ID] = rec
	return rec, nil
}

func (r registry) update(rec domain.EmployeeRecord) error {
	if _, ok := r[rec.ID]; !ok {
		return fmt.Errorf("employee %d: %w", rec.ID, ErrNotFound)
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if err := checkRecord(rec); err != nil {
		return err
	}
	r[rec.ID] = rec
	return nil
}

func (r registry) delete(id int) error {
	if _, ok := r[id]; !ok {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	delete(r, id)
	return nil
}

func checkRecord(rec domain.EmployeeRecord) error {
	if err := config.ValidateEmployeeRecord(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

var (
	_ EmployeeRepository = (*CSVRepository)(nil)
	_ EmployeeRepository = (*MemoryRepository)(nil)
)
