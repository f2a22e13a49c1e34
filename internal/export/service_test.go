package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/export"
	"github.com/gfontes/caderneta/internal/sale"
)

type listerStub struct {
	sales []sale.Sale
}

func (l *listerStub) List() []sale.Sale {
	return l.sales
}

func (l *listerStub) Between(start, end time.Time) []sale.Sale {
	var out []sale.Sale

	for _, sl := range l.sales {
		if !sl.Date.Before(start) && sl.Date.Before(end) {
			out = append(out, sl)
		}
	}

	return out
}

func fixtureSales() []sale.Sale {
	return []sale.Sale{
		{
			ID:     "s2",
			Date:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			Price:  sale.Price{Total: 3000, Cash: 1200, Pix: 1800},
			Method: sale.PaymentCombined,
		},
		{
			ID:     "s1",
			Date:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Price:  sale.Price{Total: 1500, Cash: 1500},
			Method: sale.PaymentCash,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	svc := export.NewService(&listerStub{sales: fixtureSales()})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, fixtureSales()))

	want := "Data;Total;Forma;Dinheiro;Pix\n" +
		"2024-05-15;R$ 30,00;combinado;R$ 12,00;R$ 18,00\n" +
		"2024-05-10;R$ 15,00;dinheiro;R$ 15,00;R$ 0,00\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_WindowFiltering(t *testing.T) {
	svc := export.NewService(&listerStub{sales: fixtureSales()})

	all := svc.Export(time.Time{}, time.Time{})
	assert.Len(t, all, 2)

	start := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	windowed := svc.Export(start, end)
	require.Len(t, windowed, 1)
	assert.Equal(t, "s2", windowed[0].ID)

	openEnded := svc.Export(start, time.Time{})
	require.Len(t, openEnded, 1)
	assert.Equal(t, "s2", openEnded[0].ID)
}

func TestReport(t *testing.T) {
	svc := export.NewService(&listerStub{sales: fixtureSales()})

	got := svc.Report(fixtureSales())

	assert.Contains(t, got, "* 2024-05-15 | R$ 30,00 | combinado")
	assert.Contains(t, got, "* 2024-05-10 | R$ 15,00 | dinheiro")
	assert.Contains(t, got, "Total: R$ 45,00")
}
