package product

// Unit is the selling unit of a catalog product.
type Unit string

const (
	UnitEach  Unit = "unidade"
	UnitLiter Unit = "litro"
)

// Valid reports whether u is a known selling unit.
func (u Unit) Valid() bool {
	return u == UnitEach || u == UnitLiter
}

// Product is a catalog entry. The id is immutable; name, unit and price may
// change. Price is in centavos.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Unit  Unit   `json:"unit"`
	Price int64  `json:"price"`
}
