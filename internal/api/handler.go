package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lekhandas/chatd/internal/prefs"
	"go.uber.org/zap"
)

type Handler struct {
	store  *prefs.Store
	logger *zap.Logger
}

func NewHandler(store *prefs.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

// HandlePreferences serves GET and POST on /api/preferences/{userId}.
// Reads degrade to an empty record on storage failure; writes report 500.
func (h *Handler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/preferences/")
	if userID == "" || strings.Contains(userID, "/") {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := h.store.Get(userID)
		if err != nil {
			h.logger.Error("Failed to read preferences",
				zap.Error(err),
				zap.String("userID", userID))
			record = map[string]json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			h.logger.Error("Failed to encode preferences", zap.Error(err))
		}

	case http.MethodPost:
		var values map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.store.Merge(userID, values); err != nil {
			h.logger.Error("Failed to save preferences",
				zap.Error(err),
				zap.String("userID", userID))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(successResponse{Success: true}); err != nil {
			h.logger.Error("Failed to encode response", zap.Error(err))
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
