package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"invacc/internal/core/numerator"
)

func TestGetNextNumber_Sequential(t *testing.T) {
	svc := New()
	ctx := context.Background()
	cfg := numerator.DefaultConfig("JV")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "JV-2026-00001" {
		t.Errorf("expected JV-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "JV-2026-00002" {
		t.Errorf("expected JV-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_YearlyReset(t *testing.T) {
	svc := New()
	ctx := context.Background()
	cfg := numerator.DefaultConfig("JV")

	if _, err := svc.GetNextNumber(ctx, cfg, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num, err := svc.GetNextNumber(ctx, cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "JV-2026-00001" {
		t.Errorf("expected new year to restart numbering, got %s", num)
	}
}

func TestSetNextNumber(t *testing.T) {
	svc := New()
	ctx := context.Background()
	cfg := numerator.Config{Prefix: "JV", PadWidth: 3, ResetPeriod: numerator.ResetNever}
	period := time.Now()

	if err := svc.SetNextNumber(ctx, cfg, period, 41); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num, err := svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "JV-042" {
		t.Errorf("expected JV-042, got %s", num)
	}
	if err := svc.SetNextNumber(ctx, cfg, period, -1); err == nil {
		t.Error("expected error for negative value")
	}
}

func TestGetNextNumber_Concurrent(t *testing.T) {
	svc := New()
	ctx := context.Background()
	cfg := numerator.DefaultConfig("JV")
	period := time.Now()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.GetNextNumber(ctx, cfg, period)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			seen[num] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Errorf("expected %d unique numbers, got %d", workers, len(seen))
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"JV-2026-00017", 17},
		{"JV-00042", 42},
		{"garbage", -1},
		{"JV-", -1},
		{"-17", -1},
		{"JV-2026-x1", -1},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
