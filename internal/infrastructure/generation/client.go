// Package generation drafts journal entries with a remote generative model.
//
// The client builds a Persian prompt from the conversion request, calls the
// model through a circuit breaker and checks the response shape. Every failure
// surfaces as a GENERATION_FAILURE app error.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"invacc/internal/core/apperror"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/journal"
	"invacc/internal/infrastructure/resilience"
	"invacc/pkg/logger"
)

var tracer = otel.Tracer("invacc/generation")

// Outcome labels for generation duration metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeTransport   = "transport_error"
	OutcomeMalformed   = "malformed_response"
	OutcomeUnavailable = "unavailable"
)

// DefaultTimeout bounds a single remote call.
const DefaultTimeout = 60 * time.Second

// Model sends a prompt and returns the raw JSON text of the answer.
type Model interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a function to Model.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// GenerateJSON implements Model.
func (f ModelFunc) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// DurationObserver receives the latency of each remote call.
type DurationObserver interface {
	ObserveGeneration(outcome string, d time.Duration)
}

// Client implements conversion.Generator.
type Client struct {
	model    Model
	breaker  *resilience.CircuitBreaker
	timeout  time.Duration
	observer DurationObserver
	log      *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBreaker routes calls through cb.
func WithBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithObserver sets the latency observer.
func WithObserver(o DurationObserver) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a generation client over model.
func NewClient(model Model, opts ...Option) *Client {
	c := &Client{
		model:   model,
		timeout: DefaultTimeout,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("generation")
	return c
}

// Generate implements conversion.Generator.
func (c *Client) Generate(ctx context.Context, req conversion.GenerationRequest) (journal.Entry, error) {
	ctx, span := tracer.Start(ctx, "generation.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("mode", string(req.Mode)),
		attribute.Int("documents", len(req.Documents)),
		attribute.String("amount", req.Amount.String()),
	)

	prompt := BuildPrompt(req)

	start := time.Now()
	raw, err := c.call(ctx, prompt)
	if err != nil {
		outcome := OutcomeTransport
		if errors.Is(err, resilience.ErrUnavailable) {
			outcome = OutcomeUnavailable
		}
		c.observe(outcome, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote call failed")
		c.log.WithContext(ctx).Errorw("generation call failed",
			"mode", req.Mode,
			"documents", len(req.Documents),
			"error", err)
		return journal.Entry{}, apperror.NewGenerationFailure("call generative model", err)
	}

	entry, err := ParseEntry(raw)
	if err != nil {
		c.observe(OutcomeMalformed, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		c.log.WithContext(ctx).Errorw("generation response rejected",
			"mode", req.Mode,
			"error", err,
			"response_bytes", len(raw))
		return journal.Entry{}, apperror.NewGenerationFailure("parse generative model response", err)
	}

	c.observe(OutcomeSuccess, start)
	span.SetAttributes(attribute.Int("lines", len(entry.Lines)))
	return entry, nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.breaker == nil {
		return c.model.GenerateJSON(ctx, prompt)
	}

	res, err := c.breaker.Execute(ctx, func(ctx context.Context) (any, error) {
		return c.model.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	text, _ := res.(string)
	return text, nil
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveGeneration(outcome, time.Since(start))
	}
}

// ParseEntry decodes the raw model answer. Only the structure is checked:
// the answer must be a JSON object whose "lines" member is an array.
func ParseEntry(raw string) (journal.Entry, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return journal.Entry{}, errors.New("empty response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return journal.Entry{}, fmt.Errorf("response is not a JSON object: %w", err)
	}
	lines, ok := fields["lines"]
	if !ok {
		return journal.Entry{}, errors.New("response has no lines")
	}
	if trimmed := bytes.TrimSpace(lines); len(trimmed) == 0 || trimmed[0] != '[' {
		return journal.Entry{}, errors.New("response lines is not an array")
	}

	var entry journal.Entry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return journal.Entry{}, fmt.Errorf("decode journal entry: %w", err)
	}
	return entry, nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite
// the JSON response type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var _ conversion.Generator = (*Client)(nil)
