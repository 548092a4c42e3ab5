// Package client holds the outbound adapters: the HTTP client for the
// narrative agent service and the document extraction model client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/resilience"
)

var tracer = otel.Tracer("client")

// NarrativeAgentClient calls the analysis agent service over HTTP.
//
// The agent contract is a single endpoint:
//
//	POST {baseURL}/v1/generate
//	Request:  {"query": "...", "context": "=== TRANSACTIONS SUMMARY ===..."}
//	Response: {"answer": "...", "tokens_used": {...}}
//
// Calls go through a circuit breaker and retry with backoff, so a dead
// agent fails fast instead of piling up goroutines.
type NarrativeAgentClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewNarrativeAgentClient creates the agent client. baseURL is the
// agent's base URL without the /v1/generate suffix.
func NewNarrativeAgentClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *NarrativeAgentClient {
	return &NarrativeAgentClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// Call sends the query plus serialized financial context to the agent.
func (c *NarrativeAgentClient) Call(ctx context.Context, req *domain.AgentRequest) (*domain.AgentResponse, error) {
	ctx, span := tracer.Start(ctx, "NarrativeAgentClient.Call")
	defer span.End()
	span.SetAttributes(
		attribute.Int("query.length", len(req.Query)),
		attribute.Int("context.length", len(req.Context)),
	)

	var agentResp domain.AgentResponse

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(req)
			if err != nil {
				return fmt.Errorf("marshal agent request: %w", err)
			}

			url := fmt.Sprintf("%s/v1/generate", c.baseURL)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("create http request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("http call to agent: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("agent /v1/generate returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&agentResp)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return &agentResp, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "narrative-agent", Err: err}
	}

	return result.(*domain.AgentResponse), nil
}
