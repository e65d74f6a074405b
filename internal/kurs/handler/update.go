package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"kursapi/internal/domain"
	"kursapi/internal/kurs"
)

// Update godoc
// @Summary Update one snapshot
// @Description Fully replace the rate pairs of the snapshot matched by (symbol, date).
// @Tags Kurs
// @Accept json
// @Produce json
// @Param snapshot body SnapshotRequest true "Snapshot"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /kurs [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := decodeSnapshotRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), snapshot); err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "data not found")
			return
		}
		msg := "failed to update data"
		logrus.WithError(err).WithFields(logrus.Fields{
			"handler": "Update",
			"symbol":  snapshot.Symbol,
			"date":    snapshot.Date.Format(kurs.DateLayout),
		}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Data successfully updated"})
}
