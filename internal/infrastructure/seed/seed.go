// Package seed loads reference data, accounting rules and inventory documents
// from a YAML file into the store.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"invacc/internal/core/types"
	"invacc/internal/core/validation"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/rules"
	"invacc/internal/infrastructure/storage/memory"
	"invacc/pkg/logger"
)

// Data is the content of a seed file.
type Data struct {
	Warehouses  []catalogs.Warehouse   `yaml:"warehouses" validate:"dive"`
	DocTypes    []catalogs.DocType     `yaml:"docTypes" validate:"dive"`
	Accounts    []catalogs.Account     `yaml:"accounts" validate:"dive"`
	CostCenters []catalogs.CostCenter  `yaml:"costCenters" validate:"dive"`
	Rules       []rules.AccountingRule `yaml:"rules" validate:"dive"`
	Documents   []inventory.Document   `yaml:"documents" validate:"dive"`
}

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates seed YAML.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	d.fill()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// fill derives document fields that can be read off the catalogs.
func (d *Data) fill() {
	kinds := make(map[types.Code]catalogs.DocType, len(d.DocTypes))
	for _, dt := range d.DocTypes {
		kinds[dt.ID] = dt
	}

	for i := range d.Documents {
		doc := &d.Documents[i]
		if dt, ok := kinds[doc.DocTypeCode]; ok {
			if doc.Kind == "" {
				doc.Kind = inventory.Kind(dt.Kind)
			}
			if doc.DocTypeDescription == "" {
				doc.DocTypeDescription = dt.Name
			}
		}
		if doc.WarehouseName == "" {
			doc.WarehouseName = catalogs.WarehouseName(d.Warehouses, doc.WarehouseID)
		}
		for j := range doc.Details {
			if doc.Details[j].Row == 0 {
				doc.Details[j].Row = j + 1
			}
		}
	}
}

// Validate checks struct tags, document amounts and the rule set.
func (d *Data) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	if err := rules.ValidateSet(d.Rules); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(d.Documents))
	for i := range d.Documents {
		doc := &d.Documents[i]
		if _, dup := seen[doc.ID]; dup {
			return fmt.Errorf("duplicate document id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		if err := doc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes d into store.
func Apply(ctx context.Context, store *memory.Store, d *Data) error {
	return store.RunInTransaction(ctx, func(ctx context.Context) error {
		store.SetCatalogs(ctx, memory.Catalogs{
			Warehouses:  d.Warehouses,
			DocTypes:    d.DocTypes,
			Accounts:    d.Accounts,
			CostCenters: d.CostCenters,
		})
		if err := store.ReplaceRules(ctx, d.Rules); err != nil {
			return fmt.Errorf("seed rules: %w", err)
		}
		if err := store.PutDocuments(ctx, d.Documents); err != nil {
			return fmt.Errorf("seed documents: %w", err)
		}

		logger.Info(ctx, "seed data loaded",
			"warehouses", len(d.Warehouses),
			"rules", len(d.Rules),
			"documents", len(d.Documents))
		return nil
	})
}
