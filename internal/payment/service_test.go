package payment_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/payment"
)

var testNow = time.Date(2024, 5, 15, 11, 0, 0, 0, time.Local)

// trailStub records audit actions without a real trail.
type trailStub struct {
	actions []string
}

func (t *trailStub) Log(action, _ string) {
	t.actions = append(t.actions, action)
}

func setup(t *testing.T) (*payment.Service, *employee.Service, *trailStub) {
	t.Helper()

	db, err := kv.Open(filepath.Join(t.TempDir(), "payments.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	trail := &trailStub{}
	employees := employee.NewService(db, trail)
	payments := payment.NewService(db, employees, trail, payment.WithClock(func() time.Time {
		return testNow
	}))

	return payments, employees, trail
}

func TestAdd_RecordsPayoutAndAggregates(t *testing.T) {
	payments, employees, trail := setup(t)

	emp := employees.Add(employee.CreateParams{Name: "João", DefaultRates: [2]int64{5000, 8000}})

	p := payments.Add(payment.CreateParams{Date: testNow, Amount: 5000, ReceiverID: emp.ID})

	require.Len(t, payments.List(), 1)
	assert.Equal(t, payment.ReceiverTypeEmployee, p.Receiver.Type)
	assert.Equal(t, testNow, p.Timestamp)

	assert.Equal(t, []string{p.ID}, payments.Today().IDs)
	assert.Equal(t, int64(5000), payments.Today().Total)
	assert.Equal(t, int64(5000), payments.Month().Total)

	assert.Contains(t, trail.actions, "payment_created")
}

func TestAggregates_ExcludeOtherWindows(t *testing.T) {
	payments, employees, _ := setup(t)

	emp := employees.Add(employee.CreateParams{Name: "Ana"})

	today := payments.Add(payment.CreateParams{Date: testNow, Amount: 1000, ReceiverID: emp.ID})
	payments.Add(payment.CreateParams{Date: testNow.AddDate(0, 0, -2), Amount: 2000, ReceiverID: emp.ID})
	payments.Add(payment.CreateParams{Date: testNow.AddDate(0, -1, 0), Amount: 4000, ReceiverID: emp.ID})

	assert.Equal(t, []string{today.ID}, payments.Today().IDs)
	assert.Equal(t, int64(1000), payments.Today().Total)
	assert.Equal(t, int64(3000), payments.Month().Total)
}

func TestDelete_UnknownIDLeavesListUntouched(t *testing.T) {
	payments, employees, trail := setup(t)

	emp := employees.Add(employee.CreateParams{Name: "Ana"})
	payments.Add(payment.CreateParams{Date: testNow, Amount: 1000, ReceiverID: emp.ID})

	before := payments.List()
	logged := len(trail.actions)

	payments.Delete("missing")

	assert.Equal(t, before, payments.List())
	assert.Len(t, trail.actions, logged)
}

func TestEmployeeDeletion_LeavesPaymentHistoryIntact(t *testing.T) {
	payments, employees, _ := setup(t)

	emp := employees.Add(employee.CreateParams{Name: "Pedro", DefaultRates: [2]int64{5000, 8000}})
	p := payments.Add(payment.CreateParams{Date: testNow, Amount: 8000, ReceiverID: emp.ID})

	employees.Delete(emp.ID)

	// The payout record stands, its receiver merely resolves to absent.
	got, ok := payments.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, emp.ID, got.Receiver.ID)

	_, resolved := payments.ReceiverName(got)
	assert.False(t, resolved)

	assert.Equal(t, int64(8000), payments.Today().Total)
}

func TestByReceiver_FiltersPayouts(t *testing.T) {
	payments, employees, _ := setup(t)

	ana := employees.Add(employee.CreateParams{Name: "Ana"})
	rui := employees.Add(employee.CreateParams{Name: "Rui"})

	payments.Add(payment.CreateParams{Date: testNow, Amount: 1000, ReceiverID: ana.ID})
	payments.Add(payment.CreateParams{Date: testNow, Amount: 2000, ReceiverID: rui.ID})
	payments.Add(payment.CreateParams{Date: testNow, Amount: 3000, ReceiverID: ana.ID})

	got := payments.ByReceiver(ana.ID)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3000), got[0].Amount)
	assert.Equal(t, int64(1000), got[1].Amount)
}
