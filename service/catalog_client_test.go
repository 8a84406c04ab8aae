package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypad-studio/models"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"products": [
					{"id": 1, "name": "Ceiling Light Insert",
					 "customFields": {"iconId": "A12", "sizeMm": 19, "categories": "lighting, ceiling"},
					 "assets": [
						{"name": "A12-glossy.png", "url": "https://cdn.example.com/A12-g.png", "tag": "glossy"},
						{"name": "A12-insert.png", "url": "https://cdn.example.com/A12-m.png", "tag": "insert"}
					 ]},
					{"id": 2, "name": "Mounting Plate", "customFields": {}}
				],
				"nextPage": 2
			}`)
		case "2":
			fmt.Fprint(w, `{
				"products": [
					{"id": 3, "name": "Fan Insert",
					 "primaryImage": "https://cdn.example.com/B70-primary.png",
					 "customFields": {"iconId": "B70", "sizeMm": "22.5"}}
				],
				"nextPage": 0
			}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
}

func TestCatalogClient_ListProductsWalksAllPages(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	client := NewCatalogClient(srv.URL)
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "A12", products[0].IconID)
	assert.Equal(t, 19.0, products[0].SizeMM)
	assert.Equal(t, []string{"lighting", "ceiling"}, products[0].Categories)

	// Products without icon fields parse to zero values, not errors.
	assert.Empty(t, products[1].IconID)

	// Numeric custom fields arrive as strings from some catalog versions.
	assert.Equal(t, 22.5, products[2].SizeMM)
}

func TestCatalogClient_IconCatalogSkipsNonIconProducts(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	client := NewCatalogClient(srv.URL)
	items, err := client.IconCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A12", items[0].IconID)
	assert.Equal(t, "https://cdn.example.com/A12-m.png", items[0].MatteImageURL)
	assert.Equal(t, "https://cdn.example.com/A12-g.png", items[0].GlossyImageURL)

	// No tagged assets: matte and glossy both fall back to the primary image.
	assert.Equal(t, "B70", items[1].IconID)
	assert.Equal(t, "https://cdn.example.com/B70-primary.png", items[1].MatteImageURL)
	assert.Equal(t, "https://cdn.example.com/B70-primary.png", items[1].GlossyImageURL)
}

func TestCatalogClient_SearchIconsFiltersByQueryAndSize(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()
	client := NewCatalogClient(srv.URL)

	// Size filter: the 22.5mm fan does not fit a 19mm slot.
	items, err := client.SearchIcons(context.Background(), "", 19)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A12", items[0].IconID)

	// Zero slot size disables the filter.
	items, err = client.SearchIcons(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Query matches name, id and category case-insensitively.
	for _, query := range []string{"fan", "b70", "FAN"} {
		items, err = client.SearchIcons(context.Background(), query, 0)
		require.NoError(t, err)
		require.Len(t, items, 1, "query %q", query)
		assert.Equal(t, "B70", items[0].IconID, "query %q", query)
	}

	items, err = client.SearchIcons(context.Background(), "ceiling", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A12", items[0].IconID)
}

func TestCatalogClient_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewCatalogClient(srv.URL).ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestResolveInsertAsset_HeuristicOrder(t *testing.T) {
	tagged := models.ProductAsset{Name: "x.png", URL: "u1", Tag: "insert"}
	named := models.ProductAsset{Name: "the-insert.png", URL: "u2"}
	matte := models.ProductAsset{Name: "finish-matte.png", URL: "u3"}

	// Explicit tag beats name matches.
	asset, ok := ResolveInsertAsset(models.CatalogProduct{Assets: []models.ProductAsset{matte, named, tagged}})
	require.True(t, ok)
	assert.Equal(t, "u1", asset.URL)

	// "insert" in the name beats "matte".
	asset, ok = ResolveInsertAsset(models.CatalogProduct{Assets: []models.ProductAsset{matte, named}})
	require.True(t, ok)
	assert.Equal(t, "u2", asset.URL)

	asset, ok = ResolveInsertAsset(models.CatalogProduct{Assets: []models.ProductAsset{matte}})
	require.True(t, ok)
	assert.Equal(t, "u3", asset.URL)

	// Last resort: the primary image.
	asset, ok = ResolveInsertAsset(models.CatalogProduct{Name: "Fan", PrimaryImage: "primary"})
	require.True(t, ok)
	assert.Equal(t, "primary", asset.URL)

	_, ok = ResolveInsertAsset(models.CatalogProduct{})
	assert.False(t, ok)
}
