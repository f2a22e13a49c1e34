package product_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/product"
)

type trailStub struct {
	actions []string
}

func (t *trailStub) Log(action, _ string) {
	t.actions = append(t.actions, action)
}

func newService(t *testing.T) (*product.Service, *trailStub, *kv.Store) {
	t.Helper()

	db, err := kv.Open(filepath.Join(t.TempDir(), "products.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	trail := &trailStub{}

	return product.NewService(db, trail), trail, db
}

func TestAdd_PrependsAndAudits(t *testing.T) {
	svc, trail, _ := newService(t)

	beer := svc.Add(product.CreateParams{Name: "Cerveja", Unit: product.UnitEach, Price: 1500})
	milk := svc.Add(product.CreateParams{Name: "Leite", Unit: product.UnitLiter, Price: 650})

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, milk.ID, list[0].ID)
	assert.Equal(t, beer.ID, list[1].ID)

	assert.Equal(t, []string{"product_created", "product_created"}, trail.actions)
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	svc, trail, _ := newService(t)

	p := svc.Add(product.CreateParams{Name: "Cerveja", Unit: product.UnitEach, Price: 1500})

	newPrice := int64(1800)
	svc.Update(p.ID, product.UpdateParams{Price: &newPrice})

	got, ok := svc.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Cerveja", got.Name)
	assert.Equal(t, product.UnitEach, got.Unit)
	assert.Equal(t, int64(1800), got.Price)

	assert.Contains(t, trail.actions, "product_updated")
}

func TestUpdate_UnknownIDIsSilentNoOp(t *testing.T) {
	svc, trail, _ := newService(t)

	svc.Add(product.CreateParams{Name: "Cerveja", Unit: product.UnitEach, Price: 1500})
	logged := len(trail.actions)

	name := "Outro"
	svc.Update("missing", product.UpdateParams{Name: &name})

	assert.Len(t, trail.actions, logged)
}

func TestDelete(t *testing.T) {
	svc, trail, _ := newService(t)

	p := svc.Add(product.CreateParams{Name: "Gelo", Unit: product.UnitEach, Price: 500})

	svc.Delete(p.ID)
	_, ok := svc.Get(p.ID)
	assert.False(t, ok)
	assert.Contains(t, trail.actions, "product_deleted")

	logged := len(trail.actions)
	svc.Delete(p.ID) // second delete is a no-op
	assert.Len(t, trail.actions, logged)
}

func TestCatalog_PersistsAcrossInstances(t *testing.T) {
	svc, trail, db := newService(t)

	p := svc.Add(product.CreateParams{Name: "Carvão", Unit: product.UnitEach, Price: 2200})

	reopened := product.NewService(db, trail)
	got, ok := reopened.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Carvão", got.Name)
}

func TestUnitValid(t *testing.T) {
	assert.True(t, product.UnitEach.Valid())
	assert.True(t, product.UnitLiter.Valid())
	assert.False(t, product.Unit("caixa").Valid())
}
