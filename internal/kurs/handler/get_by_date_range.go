package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

// GetByDateRange godoc
// @Summary List snapshots within a date range
// @Description Return every stored snapshot whose date falls in [startdate, enddate], inclusive on both ends.
// @Tags Kurs
// @Produce json
// @Param startdate query string true "Range start (YYYY-MM-DD)"
// @Param enddate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} SnapshotResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /kurs [get]
func (h *Handler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := kurs.ParseDateRange(r.URL.Query().Get("startdate"), r.URL.Query().Get("enddate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	snapshots, err := h.service.FindByDateRange(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecordsFound) {
			writeError(w, http.StatusNotFound, "no records found for the specified date range")
			return
		}
		msg := "failed to fetch records"
		logrus.WithError(err).WithField("handler", "GetByDateRange").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toSnapshotResponses(snapshots))
}
