package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/audit"
)

type Handler struct {
	trail *audit.Trail
}

func NewHandler(trail *audit.Trail) *Handler {
	return &Handler{trail: trail}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries := h.trail.Read()

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(entries); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
