package crawl_test

import (
	"testing"

	"github.com/fwojciec/terreno"
	"github.com/fwojciec/terreno/crawl"
	"github.com/fwojciec/terreno/ledger"
	"github.com/stretchr/testify/assert"
)

func TestLandTypeFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		landType string
		want     bool
	}{
		{name: "urban land passes", landType: "Urbano", want: true},
		{name: "rustic land passes", landType: "Rústico", want: true},
		{name: "non-developable rejected", landType: "Não urbanizável", want: false},
		{name: "non-developable with context rejected", landType: "Terreno Não urbanizável", want: false},
		{name: "missing land type rejected", landType: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, ok := crawl.LandTypeFilter{}.Check(&terreno.Listing{LandType: tt.landType, URL: "https://example.com/imovel/1/"})

			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.Equal(t, crawl.StatusFilteredOut, res.Status)
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestPriceFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price string
		want  bool
	}{
		{name: "monthly price with thousands separator", price: "95.000€/mês", want: true},
		{name: "at ceiling", price: "120.000€", want: true},
		{name: "above ceiling", price: "120.001€", want: false},
		{name: "far above ceiling", price: "1.250.000 €", want: false},
		{name: "unparsable", price: "Sob consulta", want: false},
		{name: "empty", price: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := crawl.PriceFilter{Max: terreno.MaxPrice}
			res, ok := f.Check(&terreno.Listing{Price: tt.price, URL: "https://example.com/imovel/1/"})

			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.Equal(t, crawl.StatusFilteredOut, res.Status)
			}
		})
	}
}

func TestDedupFilter(t *testing.T) {
	t.Parallel()

	t.Run("passes unseen URL", func(t *testing.T) {
		t.Parallel()

		f := crawl.DedupFilter{Ledger: ledger.New()}

		_, ok := f.Check(&terreno.Listing{URL: "https://example.com/imovel/1/"})

		assert.True(t, ok)
	})

	t.Run("rejects seen URL as duplicate", func(t *testing.T) {
		t.Parallel()

		l := ledger.New()
		l.Add("https://example.com/imovel/1/")
		f := crawl.DedupFilter{Ledger: l}

		res, ok := f.Check(&terreno.Listing{URL: "https://example.com/imovel/1/"})

		assert.False(t, ok)
		assert.Equal(t, crawl.StatusDuplicate, res.Status)
		assert.Equal(t, "skipping already processed property", res.Reason)
	})

	t.Run("rejects missing URL", func(t *testing.T) {
		t.Parallel()

		f := crawl.DedupFilter{Ledger: ledger.New()}

		res, ok := f.Check(&terreno.Listing{})

		assert.False(t, ok)
		assert.Equal(t, crawl.StatusFilteredOut, res.Status)
	})
}

func TestFilterChain_Apply(t *testing.T) {
	t.Parallel()

	t.Run("passes qualifying listing", func(t *testing.T) {
		t.Parallel()

		chain := crawl.DefaultFilters(ledger.New())

		_, ok := chain.Apply(&terreno.Listing{
			LandType: "Urbano",
			Price:    "95.000€",
			URL:      "https://example.com/imovel/1/",
		})

		assert.True(t, ok)
	})

	t.Run("reports first failure", func(t *testing.T) {
		t.Parallel()

		l := ledger.New()
		l.Add("https://example.com/imovel/1/")
		chain := crawl.DefaultFilters(l)

		// Fails land type, price and dedup; land type is checked first.
		res, ok := chain.Apply(&terreno.Listing{
			LandType: "Não urbanizável",
			Price:    "500.000€",
			URL:      "https://example.com/imovel/1/",
		})

		assert.False(t, ok)
		assert.Equal(t, crawl.StatusFilteredOut, res.Status)
		assert.Equal(t, "non-developable land", res.Reason)
	})

	t.Run("empty chain passes everything", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.FilterChain{}.Apply(&terreno.Listing{})

		assert.True(t, ok)
	})
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "extracted", crawl.StatusExtracted.String())
	assert.Equal(t, "filtered_out", crawl.StatusFilteredOut.String())
	assert.Equal(t, "duplicate", crawl.StatusDuplicate.String())
	assert.Equal(t, "seller_rejected", crawl.StatusSellerRejected.String())
	assert.Equal(t, "area_rejected", crawl.StatusAreaRejected.String())
	assert.Equal(t, "failed", crawl.StatusFailed.String())
	assert.Equal(t, "unknown", crawl.Status(99).String())
}
