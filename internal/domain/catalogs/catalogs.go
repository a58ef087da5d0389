// Package catalogs holds the reference data the conversion engine reads:
// warehouses, document types, ledger accounts and cost centers.
package catalogs

import (
	"context"

	"invacc/internal/core/types"
)

// Repository reads reference data.
type Repository interface {
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
	ListDocTypes(ctx context.Context) ([]DocType, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	ListCostCenters(ctx context.Context) ([]CostCenter, error)
}

// Warehouse is a physical storage location.
type Warehouse struct {
	ID   types.Code `json:"id" yaml:"id" validate:"required"`
	Name string     `json:"name" yaml:"name" validate:"required"`
}

// DocType describes an inventory document subtype (e.g. 40 = sales dispatch).
type DocType struct {
	ID   types.Code `json:"id" yaml:"id" validate:"required"`
	Name string     `json:"name" yaml:"name" validate:"required"`
	Kind string     `json:"kind" yaml:"kind" validate:"required,oneof=receipt dispatch"`
}

// Account is a ledger account.
type Account struct {
	ID   types.Code `json:"id" yaml:"id" validate:"required"`
	Name string     `json:"name" yaml:"name" validate:"required"`
}

// CostCenter is a cost allocation unit.
type CostCenter struct {
	ID   types.Code `json:"id" yaml:"id" validate:"required"`
	Name string     `json:"name" yaml:"name" validate:"required"`
}

// WarehouseName returns the display name of id, or id itself when unknown.
func WarehouseName(warehouses []Warehouse, id types.Code) string {
	for _, w := range warehouses {
		if w.ID == id {
			return w.Name
		}
	}
	return id.String()
}

// AccountName returns the name of account id, or empty string when unknown.
func AccountName(accounts []Account, id types.Code) string {
	for _, a := range accounts {
		if a.ID == id {
			return a.Name
		}
	}
	return ""
}
