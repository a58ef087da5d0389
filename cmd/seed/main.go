// Package main provides a CLI tool that checks a seed file before it is served:
// it loads and validates the data, applies it to an in-memory store and reports
// which documents have no active accounting rule.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/infrastructure/seed"
	"invacc/internal/infrastructure/storage/memory"
	"invacc/pkg/logger"
)

func main() {
	path := flag.String("file", "configs/seed.yaml", "seed file to check")
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	data, err := seed.LoadFile(*path)
	if err != nil {
		log.Fatalw("invalid seed file", "path", *path, "error", err)
	}

	store := memory.New()
	if err := seed.Apply(ctx, store, data); err != nil {
		log.Fatalw("failed to apply seed data", "error", err)
	}

	log.Infow("seed file is valid",
		"path", *path,
		"warehouses", len(data.Warehouses),
		"doc_types", len(data.DocTypes),
		"accounts", len(data.Accounts),
		"cost_centers", len(data.CostCenters),
		"rules", len(data.Rules),
		"documents", len(data.Documents),
	)

	if err := reportCoverage(ctx, store, data.Documents, log); err != nil {
		log.Fatalw("coverage check failed", "error", err)
	}
}

// reportCoverage logs every document that could not be converted as seeded.
func reportCoverage(ctx context.Context, store *memory.Store, docs []inventory.Document, log *logger.Logger) error {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	fetched, err := store.GetDocuments(ctx, ids)
	if err != nil {
		return err
	}
	active, err := store.ListActiveRules(ctx)
	if err != nil {
		return err
	}
	warehouses, err := store.ListWarehouses(ctx)
	if err != nil {
		return err
	}

	missing := 0
	for _, check := range conversion.Preflight(fetched, active, warehouses) {
		if check.HasRule {
			continue
		}
		missing++
		log.Warnw("document has no active rule",
			"document_id", check.DocumentID,
			"doc_no", check.DocNo,
			"message", check.Message,
		)
	}
	log.Infow("rule coverage checked", "documents", len(fetched), "without_rule", missing)
	return nil
}
