package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/port"
)

// errExtractorUnavailable is returned when the process started without
// a configured extraction model (no API key).
var errExtractorUnavailable = errors.New("document extractor is not configured")

// ImportService loads transactions into the ledger from CSV files and
// from scanned documents run through the extraction model.
type ImportService struct {
	store     port.TransactionStore
	extractor port.DocumentExtractor
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewImportService creates the import service with all dependencies injected.
func NewImportService(
	store port.TransactionStore,
	extractor port.DocumentExtractor,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		store:     store,
		extractor: extractor,
		metrics:   metrics,
		logger:    logger,
	}
}

// ImportCSV parses CSV content and appends the rows to the ledger.
// The header row is matched case-insensitively; date, account, debit,
// credit and description columns are recognized in any order. Rows
// with an empty account are skipped. Returns the stored transactions.
func (s *ImportService) ImportCSV(ctx context.Context, content []byte) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "ImportService.ImportCSV")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("import_csv", time.Since(start))
	}()

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &domain.ErrValidation{Field: "file", Message: fmt.Sprintf("invalid CSV: %v", err)}
	}
	if len(records) < 2 {
		return nil, &domain.ErrValidation{Field: "file", Message: "CSV has no data rows"}
	}

	cols := mapColumns(records[0])
	if _, ok := cols["account"]; !ok {
		return nil, &domain.ErrValidation{Field: "file", Message: "CSV is missing an account column"}
	}

	var txns []domain.Transaction
	for _, rec := range records[1:] {
		tx := domain.Transaction{
			Date:        cell(rec, cols, "date"),
			Account:     cell(rec, cols, "account"),
			Debit:       parseAmount(cell(rec, cols, "debit")),
			Credit:      parseAmount(cell(rec, cols, "credit")),
			Description: cell(rec, cols, "description"),
		}
		if tx.Account == "" {
			continue
		}
		if tx.Date == "" {
			tx.Date = time.Now().Format("2006-01-02")
		}
		txns = append(txns, tx)
	}
	if len(txns) == 0 {
		return nil, &domain.ErrValidation{Field: "file", Message: "CSV has no usable rows"}
	}

	stored, err := s.store.Append(ctx, txns)
	if err != nil {
		return nil, err
	}
	if n, err := s.store.Count(ctx); err == nil {
		s.metrics.SetLedgerSize(n)
	}

	s.logger.Info("csv imported",
		zap.Int("rows", len(records)-1),
		zap.Int("imported", len(stored)),
	)
	return stored, nil
}

// ExtractDocument runs an uploaded document through the extraction
// model and appends whatever transactions it finds. Extraction failure
// is recoverable: the error is logged and an empty result returned, so
// the caller can render a "nothing extracted" response instead of a 5xx.
func (s *ImportService) ExtractDocument(ctx context.Context, filename, mimeType string, data []byte) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "ImportService.ExtractDocument")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.filename", filename),
		attribute.Int("document.bytes", len(data)),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("extract_document", time.Since(start))
	}()

	if len(data) == 0 {
		return nil, &domain.ErrValidation{Field: "file", Message: "empty file"}
	}
	if s.extractor == nil {
		return nil, &domain.ErrExternalService{Service: "extractor", Err: errExtractorUnavailable}
	}

	extracted, err := s.extractor.Extract(ctx, filename, mimeType, data)
	if err != nil {
		s.logger.Warn("document extraction failed",
			zap.String("filename", filename),
			zap.Error(err),
		)
		s.metrics.IncrExternalError("extractor")
		return nil, nil
	}
	if len(extracted) == 0 {
		s.logger.Info("document extraction found no transactions",
			zap.String("filename", filename),
		)
		return nil, nil
	}

	stored, err := s.store.Append(ctx, extracted)
	if err != nil {
		return nil, err
	}
	if n, err := s.store.Count(ctx); err == nil {
		s.metrics.SetLedgerSize(n)
	}

	s.logger.Info("document extracted",
		zap.String("filename", filename),
		zap.Int("transactions", len(stored)),
	)
	return stored, nil
}

// mapColumns maps recognized header names to their column index.
// Matching is case-insensitive and ignores surrounding whitespace.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols["date"] = i
		case "account", "account name":
			cols["account"] = i
		case "debit", "debit amount":
			cols["debit"] = i
		case "credit", "credit amount":
			cols["credit"] = i
		case "description", "memo", "notes":
			cols["description"] = i
		}
	}
	return cols
}

func cell(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseAmount reads a money cell, tolerating currency symbols and
// thousands separators. Unparseable or negative cells count as 0.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
