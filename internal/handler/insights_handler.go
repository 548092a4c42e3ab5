package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/insights"
)

// ============================================================
// 4. Narrative analysis: /v1/insights, /v1/chat
// ============================================================

func insightsHandler(svc *insights.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/insights")
		defer span.End()

		resp, err := svc.Insights(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"insights": resp.Insights,
		})
	}
}

func chatHandler(svc *insights.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat")
		defer span.End()

		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.Chat(ctx, req.Message)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"response": resp.Answer,
		})
	}
}

func chatHistoryHandler(svc *insights.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/chat/history")
		defer span.End()

		history := svc.History(ctx)
		if history == nil {
			history = []domain.ChatMessage{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"history": history,
		})
	}
}

func clearChatHistoryHandler(svc *insights.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/chat/history")
		defer span.End()

		svc.ClearHistory(ctx)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Chat history cleared",
		})
	}
}
