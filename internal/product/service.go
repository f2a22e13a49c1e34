package product

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/store"
)

const storageKey = "products"

// AuditRecorder receives one entry per successful mutation.
type AuditRecorder interface {
	Log(action, details string)
}

type State struct {
	Products []Product `json:"products"`
}

// Service owns the product catalog. It is the sole writer of its store.
type Service struct {
	store *store.Store[State]
	audit AuditRecorder
}

func NewService(db *kv.Store, rec AuditRecorder) *Service {
	return &Service{
		store: store.New(State{}, store.WithPersistence[State](db, storageKey)),
		audit: rec,
	}
}

type CreateParams struct {
	Name  string
	Unit  Unit
	Price int64
}

type UpdateParams struct {
	Name  *string
	Unit  *Unit
	Price *int64
}

// Add registers a new product at the front of the catalog.
func (s *Service) Add(params CreateParams) Product {
	p := Product{
		ID:    uuid.NewString(),
		Name:  params.Name,
		Unit:  params.Unit,
		Price: params.Price,
	}

	s.store.Set(func(st State) State {
		st.Products = prepend(st.Products, p)
		return st
	})

	s.audit.Log("product_created", fmt.Sprintf("produto %q cadastrado a %s", p.Name, money.BRL(p.Price)))

	return p
}

// Update shallow-merges params into the product with the given id. An
// unknown id is a no-op.
func (s *Service) Update(id string, params UpdateParams) {
	var updated *Product

	s.store.Set(func(st State) State {
		products := make([]Product, len(st.Products))
		copy(products, st.Products)

		for i := range products {
			if products[i].ID != id {
				continue
			}

			if params.Name != nil {
				products[i].Name = *params.Name
			}

			if params.Unit != nil {
				products[i].Unit = *params.Unit
			}

			if params.Price != nil {
				products[i].Price = *params.Price
			}

			updated = &products[i]

			break
		}

		st.Products = products

		return st
	})

	if updated != nil {
		s.audit.Log("product_updated", fmt.Sprintf("produto %q atualizado", updated.Name))
	}
}

// Delete removes the product with the given id. Unknown ids are a no-op and
// emit no audit entry. Historical sales referencing the id keep it; the
// reference resolves to absent at read time.
func (s *Service) Delete(id string) {
	var removed *Product

	s.store.Set(func(st State) State {
		for i, p := range st.Products {
			if p.ID == id {
				removed = &p
				st.Products = append(st.Products[:i:i], st.Products[i+1:]...)

				break
			}
		}

		return st
	})

	if removed != nil {
		s.audit.Log("product_deleted", fmt.Sprintf("produto %q removido", removed.Name))
	}
}

// Get returns the product with the given id, if it exists.
func (s *Service) Get(id string) (Product, bool) {
	for _, p := range s.store.Get().Products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}

// Resolve is Get under the name the sales store consumes.
func (s *Service) Resolve(id string) (Product, bool) {
	return s.Get(id)
}

// List returns the catalog, most-recent-first.
func (s *Service) List() []Product {
	return s.store.Get().Products
}

// Subscribe notifies fn after every catalog mutation.
func (s *Service) Subscribe(fn func(State)) func() {
	return s.store.Subscribe(fn)
}

func prepend(products []Product, p Product) []Product {
	out := make([]Product, 0, len(products)+1)
	out = append(out, p)
	out = append(out, products...)

	return out
}
