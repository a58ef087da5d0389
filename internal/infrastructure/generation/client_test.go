package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
	"invacc/internal/infrastructure/resilience"
	"invacc/pkg/logger"
)

const validResponse = `{
  "date": "1403/05/21",
  "description": "تبدیل تجمیعی",
  "totalDebit": 1500000,
  "totalCredit": 1500000,
  "lines": [
    {"row": 1, "accountCode": "510101", "accountName": "بهای تمام شده", "debit": 1500000, "credit": 0, "description": "14030001", "costCenter1": "C100"},
    {"row": 2, "accountCode": "110501", "accountName": "موجودی کالا", "debit": 0, "credit": 1500000, "description": "14030001"}
  ]
}`

type durations struct {
	mu       sync.Mutex
	outcomes []string
}

func (d *durations) ObserveGeneration(outcome string, _ time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outcomes = append(d.outcomes, outcome)
}

func TestClient_Generate_Success(t *testing.T) {
	var gotPrompt string
	model := ModelFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return validResponse, nil
	})
	obs := &durations{}
	c := NewClient(model, WithObserver(obs), WithLogger(logger.Nop()))

	entry, err := c.Generate(context.Background(), promptFixture())
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "14030001")
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "510101", entry.Lines[0].AccountCode)
	assert.True(t, entry.TotalDebit.Equal(types.NewMoney(1_500_000)))
	assert.True(t, entry.Lines[1].Credit.Equal(types.NewMoney(1_500_000)))
	assert.Equal(t, "C100", entry.Lines[0].CostCenter1)
	assert.Equal(t, []string{OutcomeSuccess}, obs.outcomes)
}

func TestClient_Generate_TransportError(t *testing.T) {
	model := ModelFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: i/o timeout")
	})
	obs := &durations{}
	c := NewClient(model, WithObserver(obs), WithLogger(logger.Nop()))

	_, err := c.Generate(context.Background(), promptFixture())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeGenerationFailure, appErr.Code)
	assert.Contains(t, appErr.Error(), "i/o timeout")
	assert.NotContains(t, appErr.UserMessage, "i/o timeout")
	assert.Equal(t, []string{OutcomeTransport}, obs.outcomes)
}

func TestClient_Generate_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "I cannot help with that"},
		{"empty", "   "},
		{"missing lines", `{"date":"1403/05/21","totalDebit":1,"totalCredit":1}`},
		{"lines not array", `{"lines":{"row":1}}`},
		{"lines null", `{"lines":null}`},
		{"top level array", `[{"row":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := ModelFunc(func(context.Context, string) (string, error) { return tt.body, nil })
			c := NewClient(model, WithLogger(logger.Nop()))

			_, err := c.Generate(context.Background(), promptFixture())

			assert.True(t, apperror.IsCode(err, apperror.CodeGenerationFailure), "got %v", err)
		})
	}
}

func TestClient_Generate_BreakerOpen(t *testing.T) {
	calls := 0
	model := ModelFunc(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("503 service unavailable")
	})
	cfg := resilience.DefaultCircuitBreakerConfig("genai")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Hour
	cb := resilience.NewCircuitBreaker(cfg, logger.Nop(), nil)
	obs := &durations{}
	c := NewClient(model, WithBreaker(cb), WithObserver(obs), WithLogger(logger.Nop()))

	_, err := c.Generate(context.Background(), promptFixture())
	require.Error(t, err)

	_, err = c.Generate(context.Background(), promptFixture())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeGenerationFailure))
	assert.ErrorIs(t, err, resilience.ErrUnavailable)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{OutcomeTransport, OutcomeUnavailable}, obs.outcomes)
}

func TestClient_Generate_Timeout(t *testing.T) {
	model := ModelFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	c := NewClient(model, WithTimeout(10*time.Millisecond), WithLogger(logger.Nop()))

	_, err := c.Generate(context.Background(), promptFixture())

	assert.True(t, apperror.IsCode(err, apperror.CodeGenerationFailure))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseEntry_StripsCodeFence(t *testing.T) {
	entry, err := ParseEntry("```json\n" + validResponse + "\n```")
	require.NoError(t, err)
	assert.Len(t, entry.Lines, 2)
}

func TestEntrySchema_RequiresLines(t *testing.T) {
	s := EntrySchema()
	assert.Contains(t, s.Required, "lines")
	require.NotNil(t, s.Properties["lines"].Items)
	assert.Contains(t, s.Properties["lines"].Items.Required, "accountCode")
}
