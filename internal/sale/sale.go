package sale

import (
	"time"

	"github.com/gfontes/caderneta/internal/product"
)

// PaymentMethod tags how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "dinheiro"
	PaymentPix      PaymentMethod = "pix"
	PaymentCombined PaymentMethod = "combinado"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentPix || m == PaymentCombined
}

// LineItem references a catalog product by id. The product is resolved at
// read time; if it was deleted meanwhile the line is omitted, not an error.
type LineItem struct {
	ProductID string  `json:"id"`
	Quantity  float64 `json:"quantity"`
}

// CustomItem is an ad hoc line sold outside the catalog. It carries its own
// name, unit and price so it stays renderable forever.
type CustomItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Unit     product.Unit `json:"unit"`
	Price    int64        `json:"price"`
	Quantity float64      `json:"quantity"`
}

type Items struct {
	Regular []LineItem   `json:"regular"`
	Custom  []CustomItem `json:"custom"`
}

// Price splits the sale total by payment method, in centavos. For
// "combinado" sales Cash+Pix must equal Total within one centavo; for the
// single-method sales the matching field carries the full total.
type Price struct {
	Total int64 `json:"total"`
	Cash  int64 `json:"cash"`
	Pix   int64 `json:"pix"`
}

// Sale is one registered checkout. Date is the business date of the sale;
// Timestamp is the creation instant.
type Sale struct {
	ID        string        `json:"id"`
	Date      time.Time     `json:"date"`
	Timestamp time.Time     `json:"timestamp"`
	Items     Items         `json:"products"`
	Price     Price         `json:"price"`
	Method    PaymentMethod `json:"paymentMethod"`
}

// Line is a render-ready sale line with the product resolved.
type Line struct {
	Name     string
	Unit     product.Unit
	Price    int64
	Quantity float64
	Subtotal int64
}
