package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/export"
	"github.com/gfontes/caderneta/internal/sale"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type exportMetadataResponse struct {
	Sales  []sale.Sale `json:"sales"`
	Report string      `json:"report"`
}

func (h *Handler) window(req exportRequest) (time.Time, time.Time) {
	var start, end time.Time

	if req.StartDate != nil {
		start = *req.StartDate
	}

	if req.EndDate != nil {
		end = *req.EndDate
	}

	return start, end
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales := h.svc.Export(h.window(req))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(exportMetadataResponse{
		Sales:  sales,
		Report: h.svc.Report(sales),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales := h.svc.Export(h.window(req))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"vendas_%s.csv\"", time.Now().Format("20060102")))

	if err := h.svc.WriteCSV(w, sales); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}
