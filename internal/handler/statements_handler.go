package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

// ============================================================
// 3. Derived views, recomputed from the ledger on every request.
// An empty ledger is not an error here: the views respond 200 with
// success=false so the frontend renders its empty state.
// ============================================================

func dashboardHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		metrics, err := svc.Dashboard(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if metrics == nil {
			// The dashboard alone keeps success=true on an empty
			// ledger; its empty state is a null metrics object.
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"metrics": nil,
				"message": "No transactions available",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"metrics": metrics,
		})
	}
}

func trialBalanceHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/trial-balance")
		defer span.End()

		tb, err := svc.TrialBalance(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if tb == nil {
			writeNoData(w)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"trial_balance": tb.Rows,
			"totals": map[string]any{
				"total_debits":  tb.TotalDebits,
				"total_credits": tb.TotalCredits,
				"difference":    tb.Difference,
				"is_balanced":   tb.IsBalanced,
			},
		})
	}
}

func balanceSheetHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/balance-sheet")
		defer span.End()

		bs, err := svc.BalanceSheet(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if bs == nil {
			writeNoData(w)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"balance_sheet": bs,
		})
	}
}

func incomeStatementHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/income-statement")
		defer span.End()

		is, err := svc.IncomeStatement(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if is == nil {
			writeNoData(w)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"income_statement": is,
		})
	}
}

func ratiosHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/ratios")
		defer span.End()

		report, err := svc.Ratios(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if report == nil {
			writeNoData(w)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"ratios":  report.Categories,
		})
	}
}

func healthScoreHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/health-score")
		defer span.End()

		score, err := svc.HealthScore(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if score == nil {
			writeNoData(w)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"score":      score.Score,
			"max_score":  score.MaxScore,
			"percentage": score.Percentage,
			"breakdown": map[string]int{
				"liquidity":     score.Liquidity,
				"profitability": score.Profitability,
				"efficiency":    score.Efficiency,
				"solvency":      score.Solvency,
			},
		})
	}
}
