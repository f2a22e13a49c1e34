package employee

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/payment"
)

type Handler struct {
	svc      *employee.Service
	payments *payment.Service
}

func NewHandler(svc *employee.Service, payments *payment.Service) *Handler {
	return &Handler{svc: svc, payments: payments}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/payments", h.listPayments)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type employeeRequest struct {
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl"`
	DefaultRates [2]int64 `json:"defaultRates"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	e := h.svc.Add(employee.CreateParams{
		Name:         req.Name,
		AvatarURL:    req.AvatarURL,
		DefaultRates: req.DefaultRates,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(e); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.List()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(e); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// listPayments returns the payout history of one employee. It works for
// deleted employees too, so history stays reachable.
func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments := h.payments.ByReceiver(chi.URLParam(r, "id"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.svc.Get(id); !ok {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.svc.Update(id, employee.CreateParams{
		Name:         req.Name,
		AvatarURL:    req.AvatarURL,
		DefaultRates: req.DefaultRates,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
