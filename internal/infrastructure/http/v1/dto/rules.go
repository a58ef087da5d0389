package dto

import "invacc/internal/domain/rules"

// ReplaceRulesRequest replaces the whole rule set.
type ReplaceRulesRequest struct {
	Rules []rules.AccountingRule `json:"rules" binding:"required"`
}
