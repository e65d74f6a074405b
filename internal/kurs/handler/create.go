package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

type SnapshotRequest struct {
	Symbol    string        `json:"symbol"`
	ERate     *RateQuoteDTO `json:"e_rate"`
	TTCounter *RateQuoteDTO `json:"tt_counter"`
	BankNotes *RateQuoteDTO `json:"bank_notes"`
	Date      string        `json:"date"`
}

// decodeSnapshotRequest reads and validates a create/update body. The three
// rate pairs are pointers so an omitted category is distinguishable from zero.
func decodeSnapshotRequest(w http.ResponseWriter, r *http.Request) (domain.Snapshot, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SnapshotRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return domain.Snapshot{}, false
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" || req.Date == "" || req.ERate == nil || req.TTCounter == nil || req.BankNotes == nil {
		writeError(w, http.StatusBadRequest, "incomplete data, please provide symbol, date, e_rate, tt_counter, and bank_notes fields")
		return domain.Snapshot{}, false
	}

	date, err := kurs.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return domain.Snapshot{}, false
	}

	for _, q := range []*RateQuoteDTO{req.ERate, req.TTCounter, req.BankNotes} {
		if q.Beli.IsNegative() || q.Jual.IsNegative() {
			writeError(w, http.StatusBadRequest, "rate values must be non-negative")
			return domain.Snapshot{}, false
		}
	}

	return domain.Snapshot{
		Symbol:    req.Symbol,
		Date:      date,
		ERate:     domain.RateQuote{Beli: req.ERate.Beli, Jual: req.ERate.Jual},
		TTCounter: domain.RateQuote{Beli: req.TTCounter.Beli, Jual: req.TTCounter.Jual},
		BankNotes: domain.RateQuote{Beli: req.BankNotes.Beli, Jual: req.BankNotes.Jual},
	}, true
}

// Create godoc
// @Summary Create one snapshot
// @Description Insert a snapshot for (symbol, date). Fails when the key already exists.
// @Tags Kurs
// @Accept json
// @Produce json
// @Param snapshot body SnapshotRequest true "Snapshot"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /kurs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := decodeSnapshotRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Create(r.Context(), snapshot); err != nil {
		if errors.Is(err, domain.ErrSnapshotExists) {
			writeError(w, http.StatusConflict, "data already exists")
			return
		}
		msg := "failed to insert data"
		logrus.WithError(err).WithFields(logrus.Fields{
			"handler": "Create",
			"symbol":  snapshot.Symbol,
			"date":    snapshot.Date.Format(kurs.DateLayout),
		}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Data successfully inserted"})
}
