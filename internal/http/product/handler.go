package product

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/product"
)

type Handler struct {
	svc *product.Service
}

func NewHandler(svc *product.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createProductRequest struct {
	Name  string       `json:"name"`
	Unit  product.Unit `json:"unit"`
	Price int64        `json:"price"`
}

type updateProductRequest struct {
	Name  *string       `json:"name"`
	Unit  *product.Unit `json:"unit"`
	Price *int64        `json:"price"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	if !req.Unit.Valid() {
		http.Error(w, "unidade desconhecida", http.StatusUnprocessableEntity)
		return
	}

	if req.Price < 0 {
		http.Error(w, "preço não pode ser negativo", http.StatusUnprocessableEntity)
		return
	}

	p := h.svc.Add(product.CreateParams{
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(p); err != nil {
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
	p, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.svc.Get(id); !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Unit != nil && !req.Unit.Valid() {
		http.Error(w, "unidade desconhecida", http.StatusUnprocessableEntity)
		return
	}

	if req.Price != nil && *req.Price < 0 {
		http.Error(w, "preço não pode ser negativo", http.StatusUnprocessableEntity)
		return
	}

	h.svc.Update(id, product.UpdateParams{
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
