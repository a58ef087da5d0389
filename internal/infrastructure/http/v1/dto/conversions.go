package dto

import (
	"invacc/internal/core/types"
	"invacc/internal/domain/allocation"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/journal"
)

// PreflightRequest asks which documents have an active rule.
type PreflightRequest struct {
	DocumentIDs []string `json:"documentIds" binding:"required,min=1,dive,required"`
}

// ConsolidatedRequest is the body of POST /conversions/consolidated.
// Amount accepts a JSON number or a decimal string.
type ConsolidatedRequest struct {
	DocumentIDs []string    `json:"documentIds" binding:"required,min=1,dive,required"`
	Amount      types.Money `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
}

// ToDomain maps the request to the service input.
func (r ConsolidatedRequest) ToDomain() conversion.ConsolidatedRequest {
	return conversion.ConsolidatedRequest{
		DocumentIDs: r.DocumentIDs,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
	}
}

// ConsolidatedResponse is the generated document and how it was spread.
type ConsolidatedResponse struct {
	Generated   journal.GeneratedDocInfo `json:"generated"`
	Allocations []allocation.Allocation  `json:"allocations"`
}

// IndividualRequest is the body of POST /conversions/individual.
type IndividualRequest struct {
	DocumentIDs []string `json:"documentIds" binding:"required,min=1,dive,required"`
}

// IndividualItemResponse is the outcome for one document.
type IndividualItemResponse struct {
	DocumentID string                    `json:"documentId"`
	DocNo      string                    `json:"docNo"`
	OK         bool                      `json:"ok"`
	Generated  *journal.GeneratedDocInfo `json:"generated,omitempty"`
	Allocation *allocation.Allocation    `json:"allocation,omitempty"`
	Error      *ErrorResponse            `json:"error,omitempty"`
}

// IndividualResponse reports per-document outcomes.
type IndividualResponse struct {
	Results        []IndividualItemResponse `json:"results"`
	Succeeded      int                      `json:"succeeded"`
	Failed         int                      `json:"failed"`
	TotalAllocated types.Money              `json:"totalAllocated"`
}

// FromIndividualResults builds the response and counts outcomes.
func FromIndividualResults(results []conversion.IndividualResult) IndividualResponse {
	resp := IndividualResponse{
		Results:        make([]IndividualItemResponse, 0, len(results)),
		TotalAllocated: conversion.TotalAllocated(results),
	}
	for _, r := range results {
		item := IndividualItemResponse{
			DocumentID: r.DocumentID,
			DocNo:      r.DocNo,
			OK:         r.Err == nil,
			Generated:  r.Generated,
			Allocation: r.Allocation,
			Error:      FromError(r.Err),
		}
		if item.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}
