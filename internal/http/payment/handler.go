package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createPaymentRequest struct {
	Date       time.Time `json:"date"`
	Amount     int64     `json:"amount"`
	ReceiverID string    `json:"receiverId"`
}

type paymentResponse struct {
	payment.Payment
	ReceiverName string `json:"receiverName,omitempty"`
}

type summaryResponse struct {
	Today payment.Summary `json:"today"`
	Month payment.Summary `json:"month"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "valor deve ser positivo", http.StatusUnprocessableEntity)
		return
	}

	if req.ReceiverID == "" {
		http.Error(w, "funcionário é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	p := h.svc.Add(payment.CreateParams{
		Date:       req.Date,
		Amount:     req.Amount,
		ReceiverID: req.ReceiverID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(h.toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	payments := h.svc.List()

	if s := r.URL.Query().Get("receiver_id"); s != "" {
		payments = h.svc.ByReceiver(s)
	}

	responses := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, h.toResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(responses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		Today: h.svc.Today(),
		Month: h.svc.Month(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toResponse(p payment.Payment) paymentResponse {
	resp := paymentResponse{Payment: p}

	if name, ok := h.svc.ReceiverName(p); ok {
		resp.ReceiverName = name
	}

	return resp
}
