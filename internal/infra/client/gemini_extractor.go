package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

// extractionPrompt instructs the model to emit a strict JSON array of
// double-entry rows. Fences are forbidden but still stripped afterwards
// because models ignore instructions often enough.
const extractionPrompt = "You are a bookkeeping document parser for receipts, invoices and bank statements.\n\n" +
	"Task:\n" +
	"- Extract ALL financial transactions from the attached document.\n" +
	"- Express each one as a double-entry ledger line.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a JSON array of objects.\n\n" +
	"Each object must have these fields:\n" +
	"- \"date\": string, ISO format \"YYYY-MM-DD\"\n" +
	"- \"account\": string (e.g. \"Cash\", \"Sales Revenue\", \"Rent Expense\")\n" +
	"- \"debit\": number (0 if the entry is a credit)\n" +
	"- \"credit\": number (0 if the entry is a debit)\n" +
	"- \"description\": string\n\n" +
	"Rules:\n" +
	"- Amounts are non-negative; never emit a negative debit or credit.\n" +
	"- If the document shows no transactions, output an empty array [].\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Do NOT use ```json or any Markdown.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

// GeminiExtractor implements port.DocumentExtractor on top of the
// Gemini API. The client reads its API key from the environment
// (GEMINI_API_KEY / GOOGLE_API_KEY).
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the extractor with the given model name.
func NewGeminiExtractor(ctx context.Context, model string) (*GeminiExtractor, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiExtractor{client: c, model: model}, nil
}

// Extract sends the document to the model and parses the returned JSON
// array into transactions. The date defaults stay empty here; the
// import service owns defaulting.
func (g *GeminiExtractor) Extract(ctx context.Context, filename, mimeType string, data []byte) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "GeminiExtractor.Extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.filename", filename),
		attribute.String("document.mime_type", mimeType),
	)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     data,
					},
				},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "gemini", Err: err}
	}

	raw := resp.Text()
	if raw == "" {
		return nil, &domain.ErrExternalService{Service: "gemini", Err: fmt.Errorf("empty model response")}
	}

	var extracted []domain.Transaction
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &extracted); err != nil {
		return nil, &domain.ErrExternalService{Service: "gemini", Err: fmt.Errorf("unmarshal model output: %w", err)}
	}

	// The model occasionally invents negative amounts despite the
	// prompt; clamp them so the ledger invariants hold.
	out := extracted[:0]
	for _, tx := range extracted {
		if tx.Account == "" {
			continue
		}
		if tx.Debit < 0 {
			tx.Debit = 0
		}
		if tx.Credit < 0 {
			tx.Credit = 0
		}
		out = append(out, tx)
	}
	return out, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk, keeping
// only the first top-level JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
