package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"id", "name", "gross_salary"}

// CSVRepository persists the registry to a CSV file. The whole file is
// rewritten after every mutation.
type CSVRepository struct {
	path    string
	logger  calculation.Logger
	mu      sync.RWMutex
	records registry
}

// OpenCSVRepository loads the registry at path. A missing file is an empty registry.
func OpenCSVRepository(path string) (*CSVRepository, error) {
	r := &CSVRepository{path: path, logger: calculation.NopLogger{}}
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	r.records = records
	return r, nil
}

// SetLogger sets the logger used for load and save messages
func (r *CSVRepository) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	r.logger = l
	r.logger.Infof("employee registry %s: %d records", r.path, len(r.records))
}

// Path returns the backing file
func (r *CSVRepository) Path() string { return r.path }

func (r *CSVRepository) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records.sorted(), nil
}

func (r *CSVRepository) Get(ctx context.Context, id int) (domain.EmployeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmployeeRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records.get(id)
}

func (r *CSVRepository) Create(ctx context.Context, name string, gross decimal.Decimal) (domain.EmployeeRecord, error) {
	var created domain.EmployeeRecord
	err := r.mutate(ctx, func(next registry) error {
		rec, err := next.create(name, gross)
		created = rec
		return err
	})
	if err != nil {
		return domain.EmployeeRecord{}, err
	}
	r.logger.Infof("added employee %d (%s)", created.ID, created.Name)
	return created, nil
}

func (r *CSVRepository) Update(ctx context.Context, record domain.EmployeeRecord) error {
	if err := r.mutate(ctx, func(next registry) error { return next.update(record) }); err != nil {
		return err
	}
	r.logger.Infof("updated employee %d", record.ID)
	return nil
}

func (r *CSVRepository) Delete(ctx context.Context, id int) error {
	if err := r.mutate(ctx, func(next registry) error { return next.delete(id) }); err != nil {
		return err
	}
	r.logger.Infof("deleted employee %d", id)
	return nil
}

// mutate applies fn to a copy of the registry and swaps it in only after the
// file has been written.
func (r *CSVRepository) mutate(ctx context.Context, fn func(next registry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.records.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := writeCSV(r.path, next); err != nil {
		r.logger.Errorf("failed to save %s: %v", r.path, err)
		return err
	}
	r.records = next
	return nil
}

func readCSV(path string) (registry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return registry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	records := registry{}
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		line++
		if line == 1 && row[0] == csvHeader[0] {
			continue
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid id %q", path, line, row[0])
		}
		gross, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid gross salary %q", path, line, row[2])
		}
		if _, dup := records[id]; dup {
			return nil, fmt.Errorf("%s line %d: duplicate id %d", path, line, id)
		}
		records[id] = domain.EmployeeRecord{ID: id, Name: row[1], GrossSalary: gross}
	}

	return records, nil
}

// writeCSV writes to a temp file in the same directory and renames it over path
func writeCSV(path string, records registry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, rec := range records.sorted() {
		row := []string{strconv.Itoa(rec.ID), rec.Name, rec.GrossSalary.StringFixed(2)}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	// CreateTemp uses 0600; keep the registry's existing mode instead
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
