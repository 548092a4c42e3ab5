// Package handler is the HTTP surface of the API: routing, request
// decoding and the response envelopes the frontend consumes. Every
// payload carries a "success" flag; failures add a "message".
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/insights"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	ledgerSvc *service.LedgerService,
	importSvc *service.ImportService,
	exportSvc *service.ExportService,
	insightsSvc *insights.Service,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(ledgerSvc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Ledger
		// =============================================
		r.Get("/transactions", listTransactionsHandler(ledgerSvc, logger))
		r.Post("/transactions", addTransactionHandler(ledgerSvc, logger))
		r.Delete("/transactions", clearLedgerHandler(ledgerSvc, insightsSvc, logger))
		r.Delete("/transactions/{transactionId}", deleteTransactionHandler(ledgerSvc, logger))
		r.Post("/transactions/sample", loadSampleHandler(ledgerSvc, logger))

		// =============================================
		// 2. Ingestion (CSV upload, document extraction)
		// =============================================
		r.Post("/transactions/import", importCSVHandler(importSvc, logger))
		r.Post("/transactions/extract", extractDocumentHandler(importSvc, logger))

		// =============================================
		// 3. Derived views
		// =============================================
		r.Get("/dashboard", dashboardHandler(ledgerSvc, logger))
		r.Get("/trial-balance", trialBalanceHandler(ledgerSvc, logger))
		r.Get("/balance-sheet", balanceSheetHandler(ledgerSvc, logger))
		r.Get("/income-statement", incomeStatementHandler(ledgerSvc, logger))
		r.Get("/ratios", ratiosHandler(ledgerSvc, logger))
		r.Get("/health-score", healthScoreHandler(ledgerSvc, logger))

		// =============================================
		// 4. Narrative analysis
		// =============================================
		r.Post("/insights", insightsHandler(insightsSvc, logger))
		r.Post("/chat", chatHandler(insightsSvc, logger))
		r.Get("/chat/history", chatHistoryHandler(insightsSvc, logger))
		r.Delete("/chat/history", clearChatHistoryHandler(insightsSvc, logger))

		// =============================================
		// 5. Exports
		// =============================================
		r.Get("/export/transactions", exportTransactionsHandler(exportSvc, logger))
		r.Get("/export/balance-sheet", exportBalanceSheetHandler(exportSvc, logger))
		r.Get("/export/income-statement", exportIncomeStatementHandler(exportSvc, logger))

		// =============================================
		// 6. Agent metrics
		// =============================================
		r.Get("/metrics/agent", agentMetricsHandler(metrics, logger))
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(ledgerSvc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		count := 0
		txns, err := ledgerSvc.ListTransactions(r.Context())
		if err != nil {
			status = "degraded"
		} else {
			count = len(txns)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       status,
			"transactions": count,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func agentMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetAgentSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}
