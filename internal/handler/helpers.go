package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

// ============================================================
// Shared helper functions
// ============================================================

// apiError is the failure envelope shared by every endpoint.
type apiError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Success: false, Message: msg})
}

// writeNoData renders the empty-ledger response. Derived views report
// this as a normal 200 so the frontend can show an empty state instead
// of an error banner.
func writeNoData(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, apiError{Success: false, Message: "No transactions available"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// readUpload pulls the uploaded file out of a multipart form. The form
// field is always named "file".
func readUpload(r *http.Request) (filename, mimeType string, data []byte, err error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, err
	}

	mimeType = header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "text/plain"
	}
	return header.Filename, mimeType, data, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var emptyLedger *domain.ErrEmptyLedger
	var circuitOpen *domain.ErrCircuitOpen
	var timeout *domain.ErrTimeout
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &emptyLedger):
		logger.Debug("empty ledger")
		writeNoData(w)
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &timeout):
		logger.Error("request timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &external):
		logger.Error("upstream service failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
