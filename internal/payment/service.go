package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/store"
)

const storageKey = "payments"

// EmployeeResolver looks up payout receivers at read time.
type EmployeeResolver interface {
	Resolve(id string) (employee.Employee, bool)
}

type AuditRecorder interface {
	Log(action, details string)
}

type State struct {
	Payments []Payment `json:"payments"`
	Today    Summary   `json:"today"`
	Month    Summary   `json:"month"`
}

type Service struct {
	store     *store.Store[State]
	employees EmployeeResolver
	audit     AuditRecorder
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *kv.Store, employees EmployeeResolver, rec AuditRecorder, opts ...Option) *Service {
	s := &Service{
		employees: employees,
		audit:     rec,
		now:       time.Now,
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
	Date       time.Time
	Amount     int64
	ReceiverID string
}

// Add registers a payout at the front of the list and refreshes the
// aggregates.
func (s *Service) Add(params CreateParams) Payment {
	p := Payment{
		ID:        uuid.NewString(),
		Date:      params.Date,
		Timestamp: s.now(),
		Amount:    params.Amount,
		Receiver:  Receiver{ID: params.ReceiverID, Type: ReceiverTypeEmployee},
	}

	s.store.Set(func(st State) State {
		payments := make([]Payment, 0, len(st.Payments)+1)
		payments = append(payments, p)
		payments = append(payments, st.Payments...)
		st.Payments = payments

		return s.recompute(st)
	})

	name := "funcionário removido"
	if e, ok := s.employees.Resolve(p.Receiver.ID); ok {
		name = e.Name
	}

	s.audit.Log("payment_created", fmt.Sprintf("pagamento de %s para %s", money.BRL(p.Amount), name))

	return p
}

// Delete removes the matching payout. Unknown ids are a no-op and emit no
// audit entry.
func (s *Service) Delete(id string) {
	var removed *Payment

	s.store.Set(func(st State) State {
		for i, p := range st.Payments {
			if p.ID == id {
				removed = &p
				st.Payments = append(st.Payments[:i:i], st.Payments[i+1:]...)

				break
			}
		}

		if removed == nil {
			return st
		}

		return s.recompute(st)
	})

	if removed != nil {
		s.audit.Log("payment_deleted", fmt.Sprintf("pagamento de %s excluído", money.BRL(removed.Amount)))
	}
}

func (s *Service) Get(id string) (Payment, bool) {
	for _, p := range s.store.Get().Payments {
		if p.ID == id {
			return p, true
		}
	}

	return Payment{}, false
}

func (s *Service) List() []Payment {
	return s.store.Get().Payments
}

// ByReceiver returns the payouts made to the given employee id, in list
// order.
func (s *Service) ByReceiver(employeeID string) []Payment {
	var out []Payment

	for _, p := range s.store.Get().Payments {
		if p.Receiver.ID == employeeID {
			out = append(out, p)
		}
	}

	return out
}

// ReceiverName resolves the receiver for display. Deleted employees render
// as absent, never as an error.
func (s *Service) ReceiverName(p Payment) (string, bool) {
	e, ok := s.employees.Resolve(p.Receiver.ID)
	if !ok {
		return "", false
	}

	return e.Name, true
}

func (s *Service) Today() Summary {
	return s.store.Get().Today
}

func (s *Service) Month() Summary {
	return s.store.Get().Month
}

func (s *Service) Subscribe(fn func(State)) func() {
	return s.store.Subscribe(fn)
}

func (s *Service) recompute(st State) State {
	now := s.now()

	dayStart, dayEnd := dayWindow(now)
	st.Today = summarize(st.Payments, dayStart, dayEnd)

	monthStart, monthEnd := monthWindow(now)
	st.Month = summarize(st.Payments, monthStart, monthEnd)

	return st
}
