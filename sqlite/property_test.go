package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/terreno"
	"github.com/fwojciec/terreno/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProperty(url string) *terreno.Property {
	area := 85.0
	return &terreno.Property{
		URL:           url,
		Reference:     "33445566",
		Name:          "Terreno em Ílhavo",
		Price:         95000,
		PricePerArea:  "118,75",
		LandType:      "Urbanizável",
		Location:      "Ílhavo, Aveiro",
		TotalLandArea: "800",
		BuildableArea: &area,
		Contact1:      "912345678",
		Contact2:      "234567890",
	}
}

func TestPropertyService_WriteProperty(t *testing.T) {
	t.Parallel()

	t.Run("stores all fields", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewPropertyService(MustOpenDB(t), "run-1")

		want := newProperty("https://www.idealista.pt/imovel/1/")
		require.NoError(t, svc.WriteProperty(ctx, want))

		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, want, got[0])
	})

	t.Run("stores unknown buildable area as NULL", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := MustOpenDB(t)
		svc := sqlite.NewPropertyService(db, "run-1")

		p := newProperty("https://www.idealista.pt/imovel/1/")
		p.BuildableArea = nil
		require.NoError(t, svc.WriteProperty(ctx, p))

		var nulls int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE buildable_area IS NULL").Scan(&nulls)
		require.NoError(t, err)
		assert.Equal(t, 1, nulls)

		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{})
		require.NoError(t, err)
		assert.Nil(t, got[0].BuildableArea)
	})

	t.Run("ignores duplicate URL within a run", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewPropertyService(MustOpenDB(t), "run-1")

		require.NoError(t, svc.WriteProperty(ctx, newProperty("https://www.idealista.pt/imovel/1/")))
		require.NoError(t, svc.WriteProperty(ctx, newProperty("https://www.idealista.pt/imovel/1/")))

		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("keeps runs separate", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := MustOpenDB(t)
		first := sqlite.NewPropertyService(db, "run-1")
		second := sqlite.NewPropertyService(db, "run-2")

		require.NoError(t, first.WriteProperty(ctx, newProperty("https://www.idealista.pt/imovel/1/")))
		require.NoError(t, second.WriteProperty(ctx, newProperty("https://www.idealista.pt/imovel/1/")))

		run := "run-2"
		got, err := first.FindProperties(ctx, sqlite.PropertyFilter{RunID: &run})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		all, err := first.FindProperties(ctx, sqlite.PropertyFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("rejects invalid property", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPropertyService(MustOpenDB(t), "run-1")

		p := newProperty("https://www.idealista.pt/imovel/1/")
		p.LandType = terreno.NonDevelopableLandType
		err := svc.WriteProperty(context.Background(), p)

		require.Error(t, err)
		assert.Equal(t, terreno.EINVALID, terreno.ErrorCode(err))
	})
}

func TestPropertyService_FindProperties(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := sqlite.NewPropertyService(MustOpenDB(t), "run-1")
	for i := range 5 {
		require.NoError(t, svc.WriteProperty(ctx, newProperty(fmt.Sprintf("https://www.idealista.pt/imovel/%d/", i))))
	}

	t.Run("filters by URL", func(t *testing.T) {
		u := "https://www.idealista.pt/imovel/3/"
		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{URL: &u})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, u, got[0].URL)
	})

	t.Run("paginates in insertion order", func(t *testing.T) {
		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://www.idealista.pt/imovel/1/", got[0].URL)
		assert.Equal(t, "https://www.idealista.pt/imovel/2/", got[1].URL)
	})

	t.Run("offset without limit", func(t *testing.T) {
		got, err := svc.FindProperties(ctx, sqlite.PropertyFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
