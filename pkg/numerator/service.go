// Package numerator provides process-local document auto-numbering.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"invacc/internal/core/numerator"
)

// Service keeps one counter per sequence key.
// Numbers are gap-free for the lifetime of the process.
type Service struct {
	mu        sync.Mutex
	sequences map[string]int64
}

// New creates an empty numerator service.
func New() *Service {
	return &Service{sequences: make(map[string]int64)}
}

var _ numerator.Generator = (*Service)(nil)

// GetNextNumber generates the next document number.
// Pattern: PREFIX-YEAR-XXXXX (e.g., JV-2026-00001)
func (s *Service) GetNextNumber(ctx context.Context, cfg numerator.Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := buildKey(cfg, period)

	s.mu.Lock()
	s.sequences[key]++
	num := s.sequences[key]
	s.mu.Unlock()

	return formatNumber(cfg, period, num), nil
}

// SetNextNumber sets the current value; the next call returns value+1.
func (s *Service) SetNextNumber(_ context.Context, cfg numerator.Config, period time.Time, value int64) error {
	if value < 0 {
		return fmt.Errorf("sequence value must not be negative: %d", value)
	}
	s.mu.Lock()
	s.sequences[buildKey(cfg, period)] = value
	s.mu.Unlock()
	return nil
}

// buildKey creates the sequence key based on config and period.
func buildKey(cfg numerator.Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case numerator.ResetMonthly:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case numerator.ResetYearly:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

// formatNumber creates the final number string.
func formatNumber(cfg numerator.Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the sequence part of a formatted number
// ("JV-2026-00017" -> 17). Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndex(formatted, "-")
	if i <= 0 || i == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil || num < 0 {
		return -1
	}
	return num
}
