package memory

import (
	"context"
	"slices"

	"invacc/internal/domain/catalogs"
)

// Catalogs is the reference data loaded at startup.
type Catalogs struct {
	Warehouses  []catalogs.Warehouse
	DocTypes    []catalogs.DocType
	Accounts    []catalogs.Account
	CostCenters []catalogs.CostCenter
}

// SetCatalogs replaces all reference data.
func (s *Store) SetCatalogs(ctx context.Context, c Catalogs) {
	unlock := s.lockWrite(ctx)
	defer unlock()

	s.data.warehouses = slices.Clone(c.Warehouses)
	s.data.docTypes = slices.Clone(c.DocTypes)
	s.data.accounts = slices.Clone(c.Accounts)
	s.data.costCenters = slices.Clone(c.CostCenters)
}

// ListWarehouses implements catalogs.Repository and conversion.Store.
func (s *Store) ListWarehouses(_ context.Context) ([]catalogs.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.warehouses), nil
}

// ListDocTypes implements catalogs.Repository.
func (s *Store) ListDocTypes(_ context.Context) ([]catalogs.DocType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.docTypes), nil
}

// ListAccounts implements catalogs.Repository.
func (s *Store) ListAccounts(_ context.Context) ([]catalogs.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.accounts), nil
}

// ListCostCenters implements catalogs.Repository.
func (s *Store) ListCostCenters(_ context.Context) ([]catalogs.CostCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.costCenters), nil
}
