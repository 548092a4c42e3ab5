package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/insights"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

// ============================================================
// 1. Ledger: /v1/transactions
// ============================================================

func listTransactionsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions")
		defer span.End()

		txns, err := svc.ListTransactions(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if txns == nil {
			txns = []domain.Transaction{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"transactions": txns,
			"count":        len(txns),
		})
	}
}

func addTransactionHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transactions")
		defer span.End()

		var tx domain.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		stored, err := svc.AddTransaction(ctx, tx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success":     true,
			"message":     "Transaction added successfully",
			"transaction": stored,
		})
	}
}

func deleteTransactionHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/transactions/{transactionId}")
		defer span.End()

		id := chi.URLParam(r, "transactionId")
		span.SetAttributes(attribute.String("transaction.id", id))

		if err := svc.DeleteTransaction(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Transaction deleted successfully",
		})
	}
}

// clearLedgerHandler wipes the ledger and the chat history together:
// a conversation about transactions that no longer exist is stale.
func clearLedgerHandler(svc *service.LedgerService, insightsSvc *insights.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/transactions")
		defer span.End()

		if err := svc.ClearLedger(ctx); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		insightsSvc.ClearHistory(ctx)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "All data cleared",
		})
	}
}

func loadSampleHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transactions/sample")
		defer span.End()

		count, err := svc.LoadSample(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": fmt.Sprintf("Loaded %d sample transactions", count),
			"count":   count,
		})
	}
}

// ============================================================
// 2. Ingestion: /v1/transactions/{import,extract}
// ============================================================

func importCSVHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transactions/import")
		defer span.End()

		filename, _, data, err := readUpload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "file upload is required")
			return
		}
		span.SetAttributes(attribute.String("document.filename", filename))

		stored, err := svc.ImportCSV(ctx, data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": fmt.Sprintf("Imported %d transactions", len(stored)),
			"count":   len(stored),
		})
	}
}

func extractDocumentHandler(svc *service.ImportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transactions/extract")
		defer span.End()

		filename, mimeType, data, err := readUpload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "file upload is required")
			return
		}
		span.SetAttributes(attribute.String("document.filename", filename))

		stored, err := svc.ExtractDocument(ctx, filename, mimeType, data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if len(stored) == 0 {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"message": "No transactions found in document",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": fmt.Sprintf("Extracted %d transactions", len(stored)),
			"count":   len(stored),
		})
	}
}
