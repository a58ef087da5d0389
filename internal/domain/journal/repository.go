package journal

import (
	"context"

	"invacc/internal/domain"
)

// Repository stores generated accounting documents.
type Repository interface {
	ListGeneratedDocs(ctx context.Context, filter ListFilter) (domain.ListResult[GeneratedDocInfo], error)
	GetGeneratedDoc(ctx context.Context, id string) (GeneratedDocInfo, error)
	AppendGeneratedDoc(ctx context.Context, info GeneratedDocInfo) error
	UpdateGeneratedDoc(ctx context.Context, info GeneratedDocInfo) error
	DeleteGeneratedDoc(ctx context.Context, id string) error
}

// ListFilter for filtering generated documents.
type ListFilter struct {
	domain.ListFilter

	ApprovalStatus *ApprovalStatus
	// SourceDocID limits the result to documents generated from this inventory document.
	SourceDocID string
}
