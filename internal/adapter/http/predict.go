package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

const maxPredictBody = 64 << 10

// handlePredict maps a loosely typed JSON payload onto the feature vector and
// asks the classifier for a severity label.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if s.classifier == nil {
		s.metrics.Predictions.WithLabelValues("unavailable").Inc()
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: domain.ErrModelUnavailable.Error()})
		return
	}

	var payload map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		s.metrics.Predictions.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	pred, err := s.classifier.Predict(r.Context(), domain.FeaturesFromPayload(payload))
	if err != nil {
		s.logger.Error("prediction failed", "error", err)
		if errors.Is(err, domain.ErrModelUnavailable) {
			s.metrics.Predictions.WithLabelValues("unavailable").Inc()
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: domain.ErrModelUnavailable.Error()})
			return
		}
		s.metrics.Predictions.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction failed"})
		return
	}

	s.metrics.Predictions.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, pred)
}
