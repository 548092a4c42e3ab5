package insights

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/port"
)

var tracer = otel.Tracer("insights")

// insightsQuery is the fixed prompt for the one-shot insight summary.
const insightsQuery = "As a financial analyst, provide insights on these financial statements.\n" +
	"Provide:\n" +
	"1. Key observations (3-4 points)\n" +
	"2. Financial health assessment\n" +
	"3. Recommendations (2-3 points)\n" +
	"Keep it concise and actionable."

// Service generates narrative insights and answers chat questions about
// the ledger. Insight summaries are cached per store revision, so
// repeated calls against an unchanged ledger never hit the agent twice.
// Chat history is process-local, like the ledger itself.
type Service struct {
	store   port.TransactionStore
	builder *accounting.StatementBuilder
	agent   port.NarrativeAgentCaller
	cache   port.Cache[string]
	metrics *observability.Metrics
	logger  *zap.Logger

	mu      sync.Mutex
	history []domain.ChatMessage
}

// NewService creates the insights service with all dependencies injected.
func NewService(
	store port.TransactionStore,
	builder *accounting.StatementBuilder,
	agent port.NarrativeAgentCaller,
	cache port.Cache[string],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:   store,
		builder: builder,
		agent:   agent,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Insights returns the narrative summary of the current ledger.
// Returns ErrEmptyLedger when there is nothing to analyze.
func (s *Service) Insights(ctx context.Context) (*domain.InsightsResponse, error) {
	ctx, span := tracer.Start(ctx, "Insights.Insights")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("insights", time.Since(start))
	}()

	txns, revision, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, &domain.ErrEmptyLedger{}
	}

	cacheKey := fmt.Sprintf("insights:%d", revision)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("insights")
		return &domain.InsightsResponse{Insights: cached}, nil
	}
	s.metrics.IncrCacheMiss("insights")

	answer, err := s.callAgent(ctx, insightsQuery, txns)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, answer)
	return &domain.InsightsResponse{Insights: answer}, nil
}

// Chat answers a free-form question about the ledger and records the
// exchange in the conversation history. Returns ErrEmptyLedger when the
// ledger is empty.
func (s *Service) Chat(ctx context.Context, message string) (*domain.ChatResponse, error) {
	ctx, span := tracer.Start(ctx, "Insights.Chat")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("chat", time.Since(start))
	}()

	if message == "" {
		return nil, &domain.ErrValidation{Field: "message", Message: "message is required"}
	}

	txns, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, &domain.ErrEmptyLedger{}
	}

	answer, err := s.callAgent(ctx, message, txns)
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	s.mu.Lock()
	s.history = append(s.history,
		domain.ChatMessage{Role: "user", Content: message, Timestamp: now},
		domain.ChatMessage{Role: "assistant", Content: answer, Timestamp: now},
	)
	s.mu.Unlock()

	return &domain.ChatResponse{Answer: answer}, nil
}

// History returns a copy of the conversation so far.
func (s *Service) History(ctx context.Context) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory drops the conversation.
func (s *Service) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// snapshot fetches the ledger and its revision concurrently.
func (s *Service) snapshot(ctx context.Context) ([]domain.Transaction, uint64, error) {
	var (
		txns     []domain.Transaction
		revision uint64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.store.List(gCtx)
		if err != nil {
			return err
		}
		txns = t
		return nil
	})
	g.Go(func() error {
		r, err := s.store.Revision(gCtx)
		if err != nil {
			return err
		}
		revision = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return txns, revision, nil
}

// callAgent derives the full financial picture, serializes it and sends
// the query to the narrative agent.
func (s *Service) callAgent(ctx context.Context, query string, txns []domain.Transaction) (string, error) {
	rows := accounting.Classify(txns)
	tb := accounting.NewTrialBalance(rows)
	bs := s.builder.BalanceSheet(rows)
	is := s.builder.IncomeStatement(rows)
	report := accounting.ComputeRatios(bs, is)

	req := &domain.AgentRequest{
		Query:   query,
		Context: BuildFinancialContext(txns, tb, bs, is, report),
	}

	resp, err := s.agent.Call(ctx, req)
	if err != nil {
		s.logger.Error("agent call failed", zap.Error(err))
		s.metrics.IncrAgentRequest("error")
		s.metrics.IncrExternalError("narrative-agent")
		return "", err
	}
	s.metrics.IncrAgentRequest("success")
	s.metrics.RecordTokens(resp.TokensUsed.PromptTokens, resp.TokensUsed.CompletionTokens)

	return resp.Answer, nil
}
