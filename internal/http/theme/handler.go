package theme

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/theme"
)

type Handler struct {
	svc *theme.Service
}

func NewHandler(svc *theme.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
	r.Post("/toggle", h.toggle)
}

type themeResponse struct {
	Mode theme.Mode `json:"mode"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.svc.Mode())
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req themeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Mode != theme.ModeLight && req.Mode != theme.ModeDark {
		http.Error(w, "unknown mode", http.StatusUnprocessableEntity)
		return
	}

	h.svc.Set(req.Mode)
	h.write(w, h.svc.Mode())
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.svc.Toggle())
}

func (h *Handler) write(w http.ResponseWriter, mode theme.Mode) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(themeResponse{Mode: mode}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
