package dto

import (
	"invacc/internal/domain"
	"invacc/internal/domain/journal"
)

// GeneratedDocListQuery is the query string of GET /generated-docs.
type GeneratedDocListQuery struct {
	ApprovalStatus string `form:"approvalStatus" binding:"omitempty,oneof=draft approved"`
	SourceDocID    string `form:"sourceDocId"`
	Search         string `form:"search"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter maps the query to the domain filter.
func (q GeneratedDocListQuery) ToFilter() journal.ListFilter {
	f := journal.ListFilter{
		ListFilter: domain.ListFilter{
			Search: q.Search,
			Limit:  q.Limit,
			Offset: q.Offset,
		},
		SourceDocID: q.SourceDocID,
	}
	if q.ApprovalStatus != "" {
		s := journal.ApprovalStatus(q.ApprovalStatus)
		f.ApprovalStatus = &s
	}
	return f
}

// GeneratedDocResponse adds display labels to a generated document.
type GeneratedDocResponse struct {
	journal.GeneratedDocInfo
	ApprovalStatusLabel string `json:"approvalStatusLabel"`
}

// FromGeneratedDoc creates GeneratedDocResponse from journal.GeneratedDocInfo.
func FromGeneratedDoc(g journal.GeneratedDocInfo) GeneratedDocResponse {
	return GeneratedDocResponse{
		GeneratedDocInfo:    g,
		ApprovalStatusLabel: g.ApprovalStatus.Label(),
	}
}

// UpdateEntryRequest replaces the entry of a draft. Totals are recomputed from lines.
type UpdateEntryRequest struct {
	Entry journal.Entry `json:"entry"`
}

// FromBatchItems converts batch outcomes.
func FromBatchItems(items []journal.BatchItem) BatchResponse {
	resp := BatchResponse{Items: make([]BatchItemResponse, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, BatchItemResponse{
			ID:    it.ID,
			OK:    it.OK,
			Error: FromError(it.Error),
		})
		if it.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}
