package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

// ============================================================
// 5. Exports: /v1/export/*
// The CSV text travels inside a JSON envelope so the frontend can
// trigger the download itself. An empty ledger is a 404 here, not the
// soft empty state the derived views use.
// ============================================================

func exportTransactionsHandler(svc *service.ExportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/export/transactions")
		defer span.End()

		csvText, err := svc.TransactionsCSV(ctx)
		if err != nil {
			writeExportError(w, err, "No transactions to export", logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"csv": csvText})
	}
}

func exportBalanceSheetHandler(svc *service.ExportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/export/balance-sheet")
		defer span.End()

		csvText, err := svc.BalanceSheetCSV(ctx)
		if err != nil {
			writeExportError(w, err, "No transactions available", logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"csv": csvText})
	}
}

func exportIncomeStatementHandler(svc *service.ExportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/export/income-statement")
		defer span.End()

		csvText, err := svc.IncomeStatementCSV(ctx)
		if err != nil {
			writeExportError(w, err, "No transactions available", logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"csv": csvText})
	}
}

func writeExportError(w http.ResponseWriter, err error, emptyMsg string, logger *zap.Logger) {
	var empty *domain.ErrEmptyLedger
	if errors.As(err, &empty) {
		writeError(w, http.StatusNotFound, emptyMsg)
		return
	}
	handleServiceError(w, err, logger)
}
