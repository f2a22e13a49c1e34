// Package export renders the sales history for use outside the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/sale"
)

// SaleLister is the slice of the sales service the exporter needs.
type SaleLister interface {
	List() []sale.Sale
	Between(start, end time.Time) []sale.Sale
}

type Service struct {
	sales SaleLister
}

func NewService(sales SaleLister) *Service {
	return &Service{sales: sales}
}

// Export returns the sales inside [start, end), most-recent-first. Zero
// bounds mean all time.
func (s *Service) Export(start, end time.Time) []sale.Sale {
	if start.IsZero() && end.IsZero() {
		return s.sales.List()
	}

	if end.IsZero() {
		end = time.Now().AddDate(100, 0, 0)
	}

	return s.sales.Between(start, end)
}

// WriteCSV streams sales as a semicolon-separated table, matching the
// catalog import dialect. Amounts use the stable pt-BR money format.
func (s *Service) WriteCSV(w io.Writer, sales []sale.Sale) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Data", "Total", "Forma", "Dinheiro", "Pix"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, sl := range sales {
		row := []string{
			sl.Date.Format("2006-01-02"),
			money.BRL(sl.Price.Total),
			string(sl.Method),
			money.BRL(cashPart(sl)),
			money.BRL(pixPart(sl)),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sale %s: %w", sl.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Report renders a plain-text summary, one sale per line.
func (s *Service) Report(sales []sale.Sale) string {
	var sb strings.Builder

	var total int64

	for _, sl := range sales {
		total += sl.Price.Total

		fmt.Fprintf(&sb, "* %s | %s | %s\n",
			sl.Date.Format("2006-01-02"),
			money.BRL(sl.Price.Total),
			sl.Method,
		)
	}

	fmt.Fprintf(&sb, "Total: %s\n", money.BRL(total))

	return sb.String()
}

func cashPart(sl sale.Sale) int64 {
	switch sl.Method {
	case sale.PaymentCash:
		return sl.Price.Total
	case sale.PaymentCombined:
		return sl.Price.Cash
	}

	return 0
}

func pixPart(sl sale.Sale) int64 {
	switch sl.Method {
	case sale.PaymentPix:
		return sl.Price.Total
	case sale.PaymentCombined:
		return sl.Price.Pix
	}

	return 0
}
