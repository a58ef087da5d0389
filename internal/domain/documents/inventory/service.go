package inventory

import (
	"context"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/domain"
)

// Service provides read access to inventory documents, confined to the
// caller's warehouse when the caller is a storekeeper.
type Service struct {
	repo Repository
}

// NewService creates a new inventory document service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns documents matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[Document], error) {
	if scope, restricted := appctx.WarehouseScope(ctx); restricted {
		if !filter.WarehouseID.IsEmpty() && filter.WarehouseID != scope {
			return domain.ListResult[Document]{Items: []Document{}, Limit: filter.Normalize().Limit, Offset: filter.Offset}, nil
		}
		filter.WarehouseID = scope
	}
	filter.ListFilter = filter.ListFilter.Normalize()
	return s.repo.ListDocuments(ctx, filter)
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if !appctx.HasWarehouseAccess(ctx, doc.WarehouseID) {
		// Hidden rather than forbidden so ids of other warehouses are not disclosed.
		return Document{}, apperror.NewNotFound("inventory_document", id)
	}
	return doc, nil
}
