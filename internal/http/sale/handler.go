package sale

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gfontes/caderneta/internal/sale"
)

// combinedTolerance is the largest rounding drift allowed between a
// combined payment's parts and its total, in centavos.
const combinedTolerance = 1

type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type saleRequest struct {
	Date   time.Time          `json:"date"`
	Items  sale.Items         `json:"products"`
	Price  sale.Price         `json:"price"`
	Method sale.PaymentMethod `json:"paymentMethod"`
}

type summaryResponse struct {
	Today sale.Summary `json:"today"`
	Month sale.Summary `json:"month"`
}

type lineResponse struct {
	Sale  sale.Sale   `json:"sale"`
	Lines []sale.Line `json:"lines"`
}

// validate enforces the checkout rules before anything reaches the store:
// at least one item, positive quantities, a known payment method, a total
// matching the catalog prices and, for combined payments, parts that add
// up to the total within one centavo.
func (h *Handler) validate(req saleRequest) (string, bool) {
	if len(req.Items.Regular)+len(req.Items.Custom) == 0 {
		return "venda sem itens", false
	}

	for _, item := range req.Items.Regular {
		if item.Quantity <= 0 {
			return "quantidade deve ser positiva", false
		}
	}

	for _, item := range req.Items.Custom {
		if item.Quantity <= 0 {
			return "quantidade deve ser positiva", false
		}

		if item.Price < 0 {
			return "preço não pode ser negativo", false
		}
	}

	if !req.Method.Valid() {
		return "forma de pagamento desconhecida", false
	}

	if computed := h.svc.ComputeTotal(req.Items); req.Price.Total != computed {
		return "total não confere com os itens", false
	}

	if req.Method == sale.PaymentCombined {
		drift := req.Price.Cash + req.Price.Pix - req.Price.Total
		if drift < -combinedTolerance || drift > combinedTolerance {
			return "dinheiro e pix não somam o total", false
		}
	}

	return "", true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if msg, ok := h.validate(req); !ok {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	sl := h.svc.Add(sale.CreateParams{
		Date:   req.Date,
		Items:  req.Items,
		Price:  req.Price,
		Method: req.Method,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(sl); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales := h.svc.List()

	if s := r.URL.Query().Get("product_id"); s != "" {
		sales = h.svc.ProductSales(s)
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		start, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		end := time.Now().AddDate(100, 0, 0)

		if e := r.URL.Query().Get("end_date"); e != "" {
			end, err = time.Parse(time.DateOnly, e)
			if err != nil {
				http.Error(w, "invalid end_date", http.StatusBadRequest)
				return
			}
		}

		sales = h.svc.Between(start, end)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sales); err != nil {
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
	sl, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "sale not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(lineResponse{
		Sale:  sl,
		Lines: h.svc.Lines(sl),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.svc.Get(id); !ok {
		http.Error(w, "sale not found", http.StatusNotFound)
		return
	}

	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if msg, ok := h.validate(req); !ok {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	h.svc.Update(id, sale.CreateParams{
		Date:   req.Date,
		Items:  req.Items,
		Price:  req.Price,
		Method: req.Method,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
