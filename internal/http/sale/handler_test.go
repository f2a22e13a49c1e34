package sale_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	saleHandler "github.com/gfontes/caderneta/internal/http/sale"
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/product"
	"github.com/gfontes/caderneta/internal/sale"
)

type trailStub struct{}

func (trailStub) Log(_, _ string) {}

func newRouter(t *testing.T) (http.Handler, *sale.Service, product.Product) {
	t.Helper()

	db, err := kv.Open(filepath.Join(t.TempDir(), "sales.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	products := product.NewService(db, trailStub{})
	beer := products.Add(product.CreateParams{Name: "Cerveja", Unit: product.UnitEach, Price: 1500})

	svc := sale.NewService(db, products, trailStub{})

	r := chi.NewRouter()
	r.Route("/sales", saleHandler.NewHandler(svc).Routes)

	return r, svc, beer
}

func postSale(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/sales/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func saleBody(productID string, total, cash, pix int64, method string) string {
	return fmt.Sprintf(`{
		"date": "2024-05-15T00:00:00Z",
		"products": {"regular": [{"id": %q, "quantity": 2}], "custom": []},
		"price": {"total": %d, "cash": %d, "pix": %d},
		"paymentMethod": %q
	}`, productID, total, cash, pix, method)
}

func TestCreate_AcceptsMatchingTotal(t *testing.T) {
	router, svc, beer := newRouter(t)

	rec := postSale(t, router, saleBody(beer.ID, 3000, 0, 0, "dinheiro"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.List(), 1)
	assert.Equal(t, int64(3000), svc.List()[0].Price.Total)
}

func TestCreate_RejectsMismatchedTotal(t *testing.T) {
	router, svc, beer := newRouter(t)

	rec := postSale(t, router, saleBody(beer.ID, 2999, 0, 0, "dinheiro"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "total não confere")
	assert.Empty(t, svc.List())
}

func TestCreate_CombinedPartsMustAddUp(t *testing.T) {
	router, _, beer := newRouter(t)

	// Exact split.
	rec := postSale(t, router, saleBody(beer.ID, 3000, 1200, 1800, "combinado"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// One centavo of rounding drift is tolerated.
	rec = postSale(t, router, saleBody(beer.ID, 3000, 1200, 1801, "combinado"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Two centavos is not.
	rec = postSale(t, router, saleBody(beer.ID, 3000, 1200, 1802, "combinado"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "não somam o total")
}

func TestCreate_RejectsEmptyAndInvalid(t *testing.T) {
	router, _, beer := newRouter(t)

	empty := `{
		"date": "2024-05-15T00:00:00Z",
		"products": {"regular": [], "custom": []},
		"price": {"total": 0, "cash": 0, "pix": 0},
		"paymentMethod": "dinheiro"
	}`
	rec := postSale(t, router, empty)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "sem itens")

	badQty := fmt.Sprintf(`{
		"date": "2024-05-15T00:00:00Z",
		"products": {"regular": [{"id": %q, "quantity": 0}], "custom": []},
		"price": {"total": 0, "cash": 0, "pix": 0},
		"paymentMethod": "dinheiro"
	}`, beer.ID)
	rec = postSale(t, router, badQty)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = postSale(t, router, saleBody(beer.ID, 3000, 0, 0, "cheque"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "forma de pagamento")
}

func TestDelete_UnknownIDIsIdempotent(t *testing.T) {
	router, _, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/sales/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
