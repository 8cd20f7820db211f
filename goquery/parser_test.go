package goquery_test

import (
	"testing"

	"github.com/fwojciec/terreno"
	"github.com/fwojciec/terreno/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.idealista.pt"

func newParser() *goquery.Parser {
	return goquery.NewParser(goquery.DefaultSelectors())
}

func TestParser_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ terreno.Parser = newParser()
}

func TestParser_ParseRegions(t *testing.T) {
	t.Parallel()

	t.Run("extracts region anchors with absolute URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<ul class="locations-list">
	<li><a href="/comprar-terrenos/aveiro-distrito/"> Aveiro </a></li>
	<li><a href="https://www.idealista.pt/comprar-terrenos/beja-distrito/">Beja</a></li>
	<li><a>No link</a></li>
</ul>
<a href="/elsewhere/">Not a region</a>
</body></html>`

		regions, err := newParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 2)
		assert.Equal(t, "Aveiro", regions[0].Name)
		assert.Equal(t, "https://www.idealista.pt/comprar-terrenos/aveiro-distrito/", regions[0].URL)
		assert.Equal(t, "Beja", regions[1].Name)
		assert.Equal(t, "https://www.idealista.pt/comprar-terrenos/beja-distrito/", regions[1].URL)
	})

	t.Run("returns no regions when container is missing", func(t *testing.T) {
		t.Parallel()

		regions, err := newParser().ParseRegions(`<html><body><p>maintenance</p></body></html>`, baseURL)

		require.NoError(t, err)
		assert.Empty(t, regions)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().ParseRegions(`<html></html>`, "://bad")

		require.Error(t, err)
		assert.Equal(t, terreno.EPARSE, terreno.ErrorCode(err))
	})
}

const listingHTML = `<html><body>
<article>
	<div class="item-multimedia">
		<a class="item-link" href="/imovel/111/">Terreno em Ílhavo</a>
		<div class="price-row"><span class="item-price">95.000€</span></div>
		<span class="item-detail-char">800 m²</span>
		<span class="item-detail-char">Urbanizável</span>
	</div>
</article>
<article>
	<div class="item-multimedia">
		<a class="item-link" href="/imovel/222/">Terreno rústico</a>
		<div class="price-row"><span class="item-price">15.000€</span></div>
		<span class="item-detail-char">3.000 m²</span>
	</div>
</article>
<div class="pagination"><ul><li class="next"><a href="/comprar-terrenos/aveiro-distrito/pagina-2">Seguinte</a></li></ul></div>
</body></html>`

func TestParser_ParseListingPage(t *testing.T) {
	t.Parallel()

	t.Run("extracts tiles and next link", func(t *testing.T) {
		t.Parallel()

		page, err := newParser().ParseListingPage(listingHTML, baseURL)

		require.NoError(t, err)
		assert.Empty(t, page.ViewAllURL)
		assert.Equal(t, "https://www.idealista.pt/comprar-terrenos/aveiro-distrito/pagina-2", page.NextURL)
		require.Len(t, page.Listings, 2)

		assert.Equal(t, "Urbanizável", page.Listings[0].LandType)
		assert.Equal(t, "95.000€", page.Listings[0].Price)
		assert.Equal(t, "https://www.idealista.pt/imovel/111/", page.Listings[0].URL)

		// Second tile has a single detail, so no land type.
		assert.Empty(t, page.Listings[1].LandType)
		assert.Equal(t, "https://www.idealista.pt/imovel/222/", page.Listings[1].URL)
	})

	t.Run("detects view all link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="container"><h2 class="title"><a href="/comprar-terrenos/aveiro-distrito/com-todos/">Ver todos</a></h2></div>
</body></html>`

		page, err := newParser().ParseListingPage(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, "https://www.idealista.pt/comprar-terrenos/aveiro-distrito/com-todos/", page.ViewAllURL)
		assert.Empty(t, page.Listings)
		assert.Empty(t, page.NextURL)
	})

	t.Run("last page has no next link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="pagination"><ul><li class="selected"><span>3</span></li></ul></div></body></html>`

		page, err := newParser().ParseListingPage(html, baseURL)

		require.NoError(t, err)
		assert.Empty(t, page.NextURL)
	})

	t.Run("ignores javascript next link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="pagination"><li class="next"><a href="javascript:void(0)">Seguinte</a></li></div></body></html>`

		page, err := newParser().ParseListingPage(html, baseURL)

		require.NoError(t, err)
		assert.Empty(t, page.NextURL)
	})
}

const propertyHTML = `<html><body>
<div class="detail-info">
	<span class="main-info__title-main"> Terreno à venda em Vagos </span>
	<div class="info-features"><span>1.500 m²</span></div>
</div>
<div class="professional-name"> Particular </div>
<div class="details-property-feature-one">
	<ul>
		<li>Superfície edificável: 120 m²</li>
		<li>Acesso por estrada pavimentada</li>
	</ul>
</div>
<section id="mortgages">
	<div class="toggle-price">
		<span class="flex-feature">95.000 €</span>
		<span class="squaredmeterprice">Preço</span>
		<span class="squaredmeterprice">63,33 €/m²</span>
	</div>
</section>
<div id="mapWrapper">Vagos, Aveiro</div>
<div id="contact-phones-container"></div>
</body></html>`

func TestParser_ParsePropertyPage(t *testing.T) {
	t.Parallel()

	t.Run("extracts detail fields", func(t *testing.T) {
		t.Parallel()

		page, err := newParser().ParsePropertyPage(propertyHTML)

		require.NoError(t, err)
		assert.Equal(t, "Terreno à venda em Vagos", page.Name)
		assert.Equal(t, "1.500 m²", page.TotalArea)
		assert.True(t, page.HasSeller)
		assert.Equal(t, "Particular", page.SellerName)
		assert.Equal(t, []string{"Superfície edificável: 120 m²", "Acesso por estrada pavimentada"}, page.Features)
		assert.Equal(t, "95.000 €", page.Price)
		assert.Equal(t, "63,33 €/m²", page.PricePerArea)
		assert.Equal(t, []string{"Vagos, Aveiro"}, page.Locations)
		assert.True(t, page.HasContactBox)
	})

	t.Run("absent seller and contact box", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="detail-info"><span class="main-info__title-main">Terreno</span></div></body></html>`

		page, err := newParser().ParsePropertyPage(html)

		require.NoError(t, err)
		assert.False(t, page.HasSeller)
		assert.False(t, page.HasContactBox)
		assert.Empty(t, page.Features)
		assert.Empty(t, page.Price)
		assert.Empty(t, page.Locations)
	})

	t.Run("returns error without title", func(t *testing.T) {
		t.Parallel()

		_, err := newParser().ParsePropertyPage(`<html><body><p>Anúncio removido</p></body></html>`)

		require.Error(t, err)
		assert.Equal(t, terreno.EPARSE, terreno.ErrorCode(err))
	})
}
