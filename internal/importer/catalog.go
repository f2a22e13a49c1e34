package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/gfontes/caderneta/internal/encoding"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/product"
)

// Catalog column headers. Name and price are required; the unit column is
// optional and defaults to "unidade".
const (
	colName  = "Produto"
	colUnit  = "Unidade"
	colPrice = "Preço"
)

// CatalogParser reads semicolon-separated catalog exports. Files may carry
// preamble rows before the header; rows with unknown units or unparseable
// prices are skipped rather than failing the whole file.
type CatalogParser struct{}

func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

func (p *CatalogParser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	idxName, idxUnit, idxPrice, headerIdx := findHeader(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no catalog header found: expected columns %q and %q", colName, colPrice)
	}

	var params []product.CreateParams

	for _, row := range rows[headerIdx+1:] {
		name := cellValue(row, idxName)
		if name == "" {
			continue
		}

		price, err := money.ParseBRL(cellValue(row, idxPrice))
		if err != nil || price < 0 {
			continue
		}

		unit := product.UnitEach
		if s := cellValue(row, idxUnit); s != "" {
			unit = product.Unit(strings.ToLower(s))
			if !unit.Valid() {
				continue
			}
		}

		params = append(params, product.CreateParams{
			Name:  name,
			Unit:  unit,
			Price: price,
		})
	}

	return params, nil
}

// findHeader scans for the first row carrying the name and price columns.
// Returns the column indices and the header row index, or -1 when absent.
func findHeader(rows [][]string) (idxName, idxUnit, idxPrice, headerIdx int) {
	for rowIdx, row := range rows {
		idxName, idxUnit, idxPrice = -1, -1, -1

		for i, cell := range row {
			switch strings.TrimSpace(cell) {
			case colName:
				idxName = i
			case colUnit:
				idxUnit = i
			case colPrice:
				idxPrice = i
			}
		}

		if idxName >= 0 && idxPrice >= 0 {
			return idxName, idxUnit, idxPrice, rowIdx
		}
	}

	return -1, -1, -1, -1
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
