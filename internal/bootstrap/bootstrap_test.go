package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"bizarre-bazaar/internal/config"
	"bizarre-bazaar/internal/database"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/seed"
	"bizarre-bazaar/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbedded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rt, err := New(ctx, &config.Config{SeedSource: config.SeedEmbedded})
	require.NoError(t, err)
	defer rt.Close(ctx)

	st := rt.Health.Check(ctx)
	assert.Equal(t, service.StatusUp, st.Status)
	assert.Equal(t, "embedded", st.SeedSource)
	assert.Equal(t, 5, st.Products)
}

func TestNewSQLiteAndReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, seed.WriteSQLite(ctx, db.DB, seed.Default()))
	require.NoError(t, db.Close())

	rt, err := New(ctx, &config.Config{SeedSource: config.SeedSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer rt.Close(ctx)

	st := rt.Health.Check(ctx)
	assert.Equal(t, map[string]string{"sqlite": service.StatusUp}, st.Dependencies)

	_, _, err = rt.Catalog.AddReview(ctx, model.ReviewInput{ProductID: "P001", CustomerName: "Ana", Rating: 5})
	require.NoError(t, err)
	_, _, reviews := rt.Catalog.Counts(ctx)
	assert.Equal(t, 4, reviews)

	require.NoError(t, rt.Reload(ctx))
	_, _, reviews = rt.Catalog.Counts(ctx)
	assert.Equal(t, 3, reviews, "reload drops in-memory additions")
}
