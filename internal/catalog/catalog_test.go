package catalog

import (
	"context"
	"testing"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(kvstore.NewMemory(nil))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("serves the built-in menu until overridden", func(t *testing.T) {
		ps, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, ps, 12)
	})

	t.Run("filters by category case-insensitively", func(t *testing.T) {
		ps, err := svc.ListByCategory(ctx, "minuman")
		require.NoError(t, err)
		require.NotEmpty(t, ps)
		for _, p := range ps {
			assert.Equal(t, "Minuman", p.Category)
		}
	})

	t.Run("semua returns everything", func(t *testing.T) {
		ps, err := svc.ListByCategory(ctx, "Semua")
		require.NoError(t, err)
		assert.Len(t, ps, 12)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("finds a menu item by id", func(t *testing.T) {
		p, err := svc.Get(ctx, "mie-ayam-original")
		require.NoError(t, err)
		assert.Equal(t, "Mie Ayam Original", p.Name)
		assert.Equal(t, 12000, p.Price)
	})

	t.Run("unknown id is ErrNotFound", func(t *testing.T) {
		_, err := svc.Get(ctx, "rendang")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("create appends and slugs the id", func(t *testing.T) {
		p, err := svc.Create(ctx, Product{Name: "Sate Ayam", Price: 18000, Category: "Makanan Utama"})
		require.NoError(t, err)
		assert.Equal(t, "sate-ayam", p.ID)

		ps, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, ps, 13)
	})

	t.Run("create rejects negative price and empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, Product{Name: "Gratisan", Price: -1})
		require.Error(t, err)
		_, err = svc.Create(ctx, Product{Name: "  ", Price: 1000})
		require.Error(t, err)
	})

	t.Run("update replaces the entry", func(t *testing.T) {
		p, err := svc.Update(ctx, Product{ID: "sate-ayam", Name: "Sate Ayam Madura", Price: 20000, Category: "Makanan Utama"})
		require.NoError(t, err)
		assert.Equal(t, 20000, p.Price)

		got, err := svc.Get(ctx, "sate-ayam")
		require.NoError(t, err)
		assert.Equal(t, "Sate Ayam Madura", got.Name)
	})

	t.Run("update of unknown id is ErrNotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, Product{ID: "nope", Name: "X", Price: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes the entry, edits to the catalog never touch history", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "sate-ayam"))
		_, err := svc.Get(ctx, "sate-ayam")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, "sate-ayam"), ErrNotFound)
	})
}
