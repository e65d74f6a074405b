package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

type SnapshotService interface {
	FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error)
	FindBySymbolAndDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.Snapshot, error)
	Create(ctx context.Context, snapshot domain.Snapshot) error
	Update(ctx context.Context, snapshot domain.Snapshot) error
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)
}

type Ingestor interface {
	Ingest(ctx context.Context, targetDate time.Time) (kurs.IngestResult, error)
}

type Handler struct {
	service  SnapshotService
	ingestor Ingestor
}

func NewKursHandler(service SnapshotService, ingestor Ingestor) *Handler {
	return &Handler{service: service, ingestor: ingestor}
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

type RateQuoteDTO struct {
	Beli decimal.Decimal `json:"beli"`
	Jual decimal.Decimal `json:"jual"`
}

type SnapshotResponse struct {
	Symbol    string       `json:"symbol" example:"USD"`
	ERate     RateQuoteDTO `json:"e_rate"`
	TTCounter RateQuoteDTO `json:"tt_counter"`
	BankNotes RateQuoteDTO `json:"bank_notes"`
	Date      string       `json:"date" example:"2024-03-01"`
}

func toSnapshotResponse(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Symbol:    s.Symbol,
		ERate:     RateQuoteDTO{Beli: s.ERate.Beli, Jual: s.ERate.Jual},
		TTCounter: RateQuoteDTO{Beli: s.TTCounter.Beli, Jual: s.TTCounter.Jual},
		BankNotes: RateQuoteDTO{Beli: s.BankNotes.Beli, Jual: s.BankNotes.Jual},
		Date:      s.Date.Format(kurs.DateLayout),
	}
}

func toSnapshotResponses(snapshots []domain.Snapshot) []SnapshotResponse {
	responses := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		responses = append(responses, toSnapshotResponse(s))
	}
	return responses
}
