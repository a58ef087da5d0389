package generation

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiModel calls the Gemini API with a JSON response schema.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini-backed Model.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("genai api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiModel{client: client, model: model}, nil
}

// GenerateJSON implements Model.
func (m *GeminiModel) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   EntrySchema(),
		Temperature:      genai.Ptr[float32](0.1),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// EntrySchema is the response schema of a journal entry.
func EntrySchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	num := &genai.Schema{Type: genai.TypeNumber}

	line := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"row":         {Type: genai.TypeInteger},
			"accountCode": str,
			"accountName": str,
			"debit":       num,
			"credit":      num,
			"description": str,
			"costCenter1": str,
			"costCenter2": str,
			"costCenter3": str,
		},
		Required: []string{"row", "accountCode", "accountName", "debit", "credit", "description"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date":        str,
			"description": str,
			"totalDebit":  num,
			"totalCredit": num,
			"lines": {
				Type:  genai.TypeArray,
				Items: line,
			},
		},
		Required: []string{"date", "description", "totalDebit", "totalCredit", "lines"},
	}
}
