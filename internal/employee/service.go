package employee

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/store"
)

const storageKey = "employees"

type AuditRecorder interface {
	Log(action, details string)
}

type State struct {
	Employees []Employee `json:"employees"`
}

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
	Name         string
	AvatarURL    string
	DefaultRates [2]int64
}

func (s *Service) Add(params CreateParams) Employee {
	e := Employee{
		ID:           uuid.NewString(),
		Name:         params.Name,
		AvatarURL:    params.AvatarURL,
		DefaultRates: params.DefaultRates,
	}

	s.store.Set(func(st State) State {
		employees := make([]Employee, 0, len(st.Employees)+1)
		employees = append(employees, e)
		employees = append(employees, st.Employees...)
		st.Employees = employees

		return st
	})

	s.audit.Log("employee_created", fmt.Sprintf("funcionário %q cadastrado", e.Name))

	return e
}

// Update shallow-merges the given fields into the matching employee.
func (s *Service) Update(id string, params CreateParams) {
	var updated *Employee

	s.store.Set(func(st State) State {
		employees := make([]Employee, len(st.Employees))
		copy(employees, st.Employees)

		for i := range employees {
			if employees[i].ID != id {
				continue
			}

			if params.Name != "" {
				employees[i].Name = params.Name
			}

			if params.AvatarURL != "" {
				employees[i].AvatarURL = params.AvatarURL
			}

			if params.DefaultRates != [2]int64{} {
				employees[i].DefaultRates = params.DefaultRates
			}

			updated = &employees[i]

			break
		}

		st.Employees = employees

		return st
	})

	if updated != nil {
		s.audit.Log("employee_updated", fmt.Sprintf("funcionário %q atualizado", updated.Name))
	}
}

// Delete removes the employee. Payments referencing the id are untouched;
// their receiver resolves to absent afterwards. Unknown ids are a no-op.
func (s *Service) Delete(id string) {
	var removed *Employee

	s.store.Set(func(st State) State {
		for i, e := range st.Employees {
			if e.ID == id {
				removed = &e
				st.Employees = append(st.Employees[:i:i], st.Employees[i+1:]...)

				break
			}
		}

		return st
	})

	if removed != nil {
		s.audit.Log("employee_deleted", fmt.Sprintf("funcionário %q removido", removed.Name))
	}
}

func (s *Service) Get(id string) (Employee, bool) {
	for _, e := range s.store.Get().Employees {
		if e.ID == id {
			return e, true
		}
	}

	return Employee{}, false
}

// Resolve is Get under the name the payments store consumes.
func (s *Service) Resolve(id string) (Employee, bool) {
	return s.Get(id)
}

func (s *Service) List() []Employee {
	return s.store.Get().Employees
}

func (s *Service) Subscribe(fn func(State)) func() {
	return s.store.Subscribe(fn)
}
