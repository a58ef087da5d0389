package reports

import (
	"context"

	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
)

// Repository defines report data access interface.
type Repository interface {
	// GeneratedDocsByStatus returns generated documents in creation order.
	// A nil status returns all of them.
	GeneratedDocsByStatus(ctx context.Context, status *journal.ApprovalStatus) ([]journal.GeneratedDocInfo, error)

	// MatchingDocuments returns every inventory document passing filter, ignoring pagination.
	MatchingDocuments(ctx context.Context, filter inventory.ListFilter) ([]inventory.Document, error)

	ListAccounts(ctx context.Context) ([]catalogs.Account, error)
}
