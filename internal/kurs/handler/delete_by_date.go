package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

// DeleteByDate godoc
// @Summary Delete every snapshot of one date
// @Tags Kurs
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /kurs/{date} [delete]
func (h *Handler) DeleteByDate(w http.ResponseWriter, r *http.Request) {
	rawDate := chi.URLParam(r, "date")
	date, err := kurs.ParseDate(rawDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	count, err := h.service.DeleteByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecordsFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no records found for date: %s", rawDate))
			return
		}
		msg := "failed to delete records"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteByDate", "date": rawDate}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Deleted %d records for date: %s", count, rawDate),
	})
}
