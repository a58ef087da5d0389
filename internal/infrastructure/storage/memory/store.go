// Package memory is the in-process Document & Rule Store. It holds inventory
// documents, accounting rules, reference catalogs, generated accounting
// documents and the audit log, and serializes all mutations.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"invacc/internal/core/tx"
	"invacc/internal/domain/audit"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/reports"
	"invacc/internal/domain/rules"
)

var tracer = otel.Tracer("invacc/storage/memory")

var errNotLoaded = errors.New("memory store: reference data not loaded")

// Compile-time interface checks.
var (
	_ tx.Manager           = (*Store)(nil)
	_ conversion.Store     = (*Store)(nil)
	_ journal.Repository   = (*Store)(nil)
	_ inventory.Repository = (*Store)(nil)
	_ rules.Repository     = (*Store)(nil)
	_ reports.Repository   = (*Store)(nil)
	_ catalogs.Repository  = (*Store)(nil)
	_ audit.Recorder       = (*Store)(nil)
	_ audit.Reader         = (*Store)(nil)
)

// Store keeps all state in memory.
//
// writeMu is the single mutation queue: a transaction holds it for its whole
// duration and a write outside a transaction holds it for one call. mu guards
// the data itself. Readers outside a transaction may observe uncommitted writes.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    state

	// logs are append-only and survive a rolled back transaction.
	logs []audit.Entry
}

type state struct {
	docs      map[string]inventory.Document
	docOrder  []string
	rules     []rules.AccountingRule
	generated []journal.GeneratedDocInfo

	warehouses  []catalogs.Warehouse
	docTypes    []catalogs.DocType
	accounts    []catalogs.Account
	costCenters []catalogs.CostCenter
}

func (s state) clone() state {
	return state{
		docs:        maps.Clone(s.docs),
		docOrder:    slices.Clone(s.docOrder),
		rules:       slices.Clone(s.rules),
		generated:   slices.Clone(s.generated),
		warehouses:  slices.Clone(s.warehouses),
		docTypes:    slices.Clone(s.docTypes),
		accounts:    slices.Clone(s.accounts),
		costCenters: slices.Clone(s.costCenters),
	}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: state{docs: make(map[string]inventory.Document)},
	}
}

// txKey marks a context as running inside a transaction of one particular store.
type txKey struct{ s *Store }

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{s}).(bool)
	return v
}

// RunInTransaction implements tx.Manager. Nested calls join the outer
// transaction. If fn fails, every change made since the outermost call
// started is discarded.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "transaction")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{s}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, "rolled back")
		return err
	}
	return nil
}

// lockWrite acquires the locks needed to mutate data from ctx and returns the release func.
func (s *Store) lockWrite(ctx context.Context) func() {
	if s.inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.writeMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.writeMu.Unlock()
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

// Ping reports whether reference data has been loaded.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data.warehouses) == 0 {
		return errNotLoaded
	}
	return nil
}
