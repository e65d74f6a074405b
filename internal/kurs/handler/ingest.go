package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
)

// Ingest godoc
// @Summary Ingest today's rate table snapshot
// @Description Fetch the published rate page and store one snapshot per symbol for the current UTC date. Idempotent per calendar day.
// @Tags Kurs
// @Produce json
// @Success 200 {object} messageResponse
// @Failure 502 {object} errorResponse "rate page unreachable"
// @Failure 500 {object} errorResponse
// @Router /kurs/ingest [post]
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	result, err := h.ingestor.Ingest(r.Context(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrFetchFailed) {
			logrus.WithError(err).WithField("handler", "Ingest").Error("rate page fetch failed")
			writeError(w, http.StatusBadGateway, "failed to fetch rate page")
			return
		}
		msg := "scraping and indexing failed"
		logrus.WithError(err).WithField("handler", "Ingest").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	if result.AlreadyIngested {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Data for the current date already exists"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Scraping and indexing completed, %d records inserted", result.Inserted),
	})
}
