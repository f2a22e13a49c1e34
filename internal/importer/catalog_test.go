package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/importer"
	"github.com/gfontes/caderneta/internal/product"
)

func TestParse_Catalog(t *testing.T) {
	input := strings.Join([]string{
		"Exportado em 2024-05-15",
		"",
		"Produto;Unidade;Preço",
		"Cerveja;unidade;5,50",
		"Leite;litro;4,80",
		"Carvão;;22,00",
	}, "\n")

	svc := importer.NewService()

	got, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, product.CreateParams{Name: "Cerveja", Unit: product.UnitEach, Price: 550}, got[0])
	assert.Equal(t, product.CreateParams{Name: "Leite", Unit: product.UnitLiter, Price: 480}, got[1])
	// Missing unit defaults to "unidade".
	assert.Equal(t, product.CreateParams{Name: "Carvão", Unit: product.UnitEach, Price: 2200}, got[2])
}

func TestParse_SkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"Produto;Unidade;Preço",
		"Cerveja;unidade;5,50",
		"SemPreço;unidade;",
		"UnidadeErrada;caixa;3,00",
		";unidade;1,00",
		"Total;;999,99", // parses as a product; the preview step is where a human drops it
	}, "\n")

	svc := importer.NewService()

	got, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cerveja", got[0].Name)
	assert.Equal(t, "Total", got[1].Name)
}

func TestParse_NoHeaderFails(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Import(strings.NewReader("a;b;c\n1;2;3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog header")
}

func TestParse_ThousandSeparators(t *testing.T) {
	input := "Produto;Unidade;Preço\nFreezer;unidade;1.234,56\n"

	svc := importer.NewService()

	got, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(123456), got[0].Price)
}
