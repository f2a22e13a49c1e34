package sale

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/product"
	"github.com/gfontes/caderneta/internal/store"
)

const storageKey = "sales"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=sale

// ProductResolver looks up catalog products when sale lines are resolved.
type ProductResolver interface {
	Resolve(id string) (product.Product, bool)
}

// AuditRecorder receives one entry per successful mutation.
type AuditRecorder interface {
	Log(action, details string)
}

// State is the sales store: the full list plus the derived day and month
// aggregates, which are recomputed after every mutation and on load.
type State struct {
	Sales []Sale  `json:"sales"`
	Today Summary `json:"today"`
	Month Summary `json:"month"`
}

type Service struct {
	store    *store.Store[State]
	products ProductResolver
	audit    AuditRecorder
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock the aggregates are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *kv.Store, products ProductResolver, rec AuditRecorder, opts ...Option) *Service {
	s := &Service{
		products: products,
		audit:    rec,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.store = store.New(State{},
		store.WithPersistence[State](db, storageKey),
		store.WithRehydrate[State](s.recompute),
	)

	return s
}

type CreateParams struct {
	Date   time.Time
	Items  Items
	Price  Price
	Method PaymentMethod
}

// Add registers a checkout at the front of the list and refreshes the
// aggregates.
func (s *Service) Add(params CreateParams) Sale {
	sl := Sale{
		ID:        uuid.NewString(),
		Date:      params.Date,
		Timestamp: s.now(),
		Items:     params.Items,
		Price:     params.Price,
		Method:    params.Method,
	}

	s.store.Set(func(st State) State {
		sales := make([]Sale, 0, len(st.Sales)+1)
		sales = append(sales, sl)
		sales = append(sales, st.Sales...)
		st.Sales = sales

		return s.recompute(st)
	})

	s.audit.Log("sale_created", fmt.Sprintf("venda de %s (%s)", money.BRL(sl.Price.Total), sl.Method))

	return sl
}

// Update replaces the items, price, method and date of the matching sale.
// The id and creation timestamp are kept. Unknown ids are a no-op.
func (s *Service) Update(id string, params CreateParams) {
	var updated *Sale

	s.store.Set(func(st State) State {
		sales := make([]Sale, len(st.Sales))
		copy(sales, st.Sales)

		for i := range sales {
			if sales[i].ID != id {
				continue
			}

			sales[i].Date = params.Date
			sales[i].Items = params.Items
			sales[i].Price = params.Price
			sales[i].Method = params.Method
			updated = &sales[i]

			break
		}

		st.Sales = sales

		return s.recompute(st)
	})

	if updated != nil {
		s.audit.Log("sale_updated", fmt.Sprintf("venda alterada para %s (%s)", money.BRL(updated.Price.Total), updated.Method))
	}
}

// Delete removes the matching sale. Unknown ids leave the list untouched
// and emit no audit entry.
func (s *Service) Delete(id string) {
	var removed *Sale

	s.store.Set(func(st State) State {
		for i, sl := range st.Sales {
			if sl.ID == id {
				removed = &sl
				st.Sales = append(st.Sales[:i:i], st.Sales[i+1:]...)

				break
			}
		}

		if removed == nil {
			return st
		}

		return s.recompute(st)
	})

	if removed != nil {
		s.audit.Log("sale_deleted", fmt.Sprintf("venda de %s excluída", money.BRL(removed.Price.Total)))
	}
}

func (s *Service) Get(id string) (Sale, bool) {
	for _, sl := range s.store.Get().Sales {
		if sl.ID == id {
			return sl, true
		}
	}

	return Sale{}, false
}

// List returns all sales, most-recent-first.
func (s *Service) List() []Sale {
	return s.store.Get().Sales
}

// Between returns the sales whose date falls inside [start, end), in list
// order.
func (s *Service) Between(start, end time.Time) []Sale {
	var out []Sale

	for _, sl := range s.store.Get().Sales {
		if !sl.Date.Before(start) && sl.Date.Before(end) {
			out = append(out, sl)
		}
	}

	return out
}

// Today returns the aggregate for the current calendar day.
func (s *Service) Today() Summary {
	return s.store.Get().Today
}

// Month returns the aggregate for the current calendar month.
func (s *Service) Month() Summary {
	return s.store.Get().Month
}

// ProductSales returns the sales containing a regular line for the given
// product id.
func (s *Service) ProductSales(productID string) []Sale {
	var out []Sale

	for _, sl := range s.store.Get().Sales {
		for _, item := range sl.Items.Regular {
			if item.ProductID == productID {
				out = append(out, sl)
				break
			}
		}
	}

	return out
}

// Lines resolves a sale into render-ready lines. Regular lines whose
// product no longer exists are silently omitted.
func (s *Service) Lines(sl Sale) []Line {
	lines := make([]Line, 0, len(sl.Items.Regular)+len(sl.Items.Custom))

	for _, item := range sl.Items.Regular {
		p, ok := s.products.Resolve(item.ProductID)
		if !ok {
			continue
		}

		lines = append(lines, Line{
			Name:     p.Name,
			Unit:     p.Unit,
			Price:    p.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal(p.Price, item.Quantity),
		})
	}

	for _, item := range sl.Items.Custom {
		lines = append(lines, Line{
			Name:     item.Name,
			Unit:     item.Unit,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal(item.Price, item.Quantity),
		})
	}

	return lines
}

// ComputeTotal sums the resolved value of every line. The boundary layer
// compares it against the submitted total before calling Add.
func (s *Service) ComputeTotal(items Items) int64 {
	var total int64

	for _, item := range items.Regular {
		if p, ok := s.products.Resolve(item.ProductID); ok {
			total += subtotal(p.Price, item.Quantity)
		}
	}

	for _, item := range items.Custom {
		total += subtotal(item.Price, item.Quantity)
	}

	return total
}

// Subscribe notifies fn after every mutation with the full state,
// aggregates included.
func (s *Service) Subscribe(fn func(State)) func() {
	return s.store.Subscribe(fn)
}

func (s *Service) recompute(st State) State {
	now := s.now()

	dayStart, dayEnd := dayWindow(now)
	st.Today = summarize(st.Sales, dayStart, dayEnd)

	monthStart, monthEnd := monthWindow(now)
	st.Month = summarize(st.Sales, monthStart, monthEnd)

	return st
}

func subtotal(price int64, quantity float64) int64 {
	return int64(math.Round(float64(price) * quantity))
}
