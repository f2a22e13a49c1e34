package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/importer"
	"github.com/gfontes/caderneta/internal/product"
)

type AuditRecorder interface {
	Log(action, details string)
}

type Handler struct {
	importSvc  *importer.Service
	productSvc *product.Service
	audit      AuditRecorder
}

func NewHandler(importSvc *importer.Service, productSvc *product.Service, rec AuditRecorder) *Handler {
	return &Handler{
		importSvc:  importSvc,
		productSvc: productSvc,
		audit:      rec,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type productDTO struct {
	Name  string       `json:"name"`
	Unit  product.Unit `json:"unit"`
	Price int64        `json:"price"`
}

type previewResponse struct {
	Count    int          `json:"count"`
	Products []productDTO `json:"products"`
}

type confirmRequest struct {
	Products []productDTO `json:"products"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Products []product.Product `json:"products"`
}

// importCSV parses the uploaded catalog and returns a preview. Nothing is
// written until the client posts the reviewed rows to /confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{
		Count:    len(params),
		Products: make([]productDTO, 0, len(params)),
	}
	for _, p := range params {
		resp.Products = append(resp.Products, productDTO(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	for _, p := range req.Products {
		if p.Name == "" || !p.Unit.Valid() || p.Price < 0 {
			http.Error(w, fmt.Sprintf("invalid product %q", p.Name), http.StatusUnprocessableEntity)
			return
		}
	}

	created := make([]product.Product, 0, len(req.Products))
	for _, p := range req.Products {
		created = append(created, h.productSvc.Add(product.CreateParams(p)))
	}

	if len(created) > 0 {
		h.audit.Log("catalog_imported", fmt.Sprintf("%d produtos importados do catálogo", len(created)))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{
		Imported: len(created),
		Products: created,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
