package inventory

import "invacc/internal/core/types"

// Status is derived from the converted amount; it is never set directly.
type Status string

const (
	StatusReadyForConversion Status = "ready_for_conversion"
	StatusPartiallySettled   Status = "partially_settled"
	StatusIssued             Status = "issued"
)

var statusLabels = map[Status]string{
	StatusReadyForConversion: "آماده صدور",
	StatusPartiallySettled:   "تسویه ناقص",
	StatusIssued:             "سند صادر شده",
}

// Label returns the Persian display name.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// DeriveStatus maps a document balance to its status:
// Issued once converted >= total, PartiallySettled while 0 < converted < total,
// ReadyForConversion while nothing is converted.
func DeriveStatus(total, converted types.Money) Status {
	switch {
	case converted.GreaterThanOrEqual(total) && total.IsPositive():
		return StatusIssued
	case converted.IsPositive():
		return StatusPartiallySettled
	default:
		return StatusReadyForConversion
	}
}
