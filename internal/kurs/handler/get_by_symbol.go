package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

// GetBySymbol godoc
// @Summary List snapshots of one symbol within a date range
// @Tags Kurs
// @Produce json
// @Param symbol path string true "Currency symbol" example(USD)
// @Param startdate query string true "Range start (YYYY-MM-DD)"
// @Param enddate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} SnapshotResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /kurs/{symbol} [get]
func (h *Handler) GetBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))

	start, end, err := kurs.ParseDateRange(r.URL.Query().Get("startdate"), r.URL.Query().Get("enddate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startdate or enddate")
		return
	}

	snapshots, err := h.service.FindBySymbolAndDateRange(r.Context(), symbol, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecordsFound) {
			writeError(w, http.StatusNotFound, "no records found for the specified symbol and date range")
			return
		}
		msg := "failed to fetch records"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetBySymbol", "symbol": symbol}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toSnapshotResponses(snapshots))
}
