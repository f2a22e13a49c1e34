// Package importer parses product catalog files into create parameters.
// Parsing never touches the stores; the caller previews the result and
// commits it explicitly.
package importer

import (
	"io"

	"github.com/gfontes/caderneta/internal/product"
)

type Parser interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}

type Service struct {
	catalog Parser
}

func NewService() *Service {
	return &Service{catalog: NewCatalogParser()}
}

// Import parses a semicolon-separated catalog file.
func (s *Service) Import(r io.Reader) ([]product.CreateParams, error) {
	return s.catalog.Parse(r)
}
