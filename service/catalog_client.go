package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"keypad-studio/models"
)

// CatalogClient consumes the icon catalog collaborator: a paginated product
// listing exposing icon ids, categories, physical sizes and asset
// references. This service never mutates the catalog.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// NewCatalogClient creates a client for the catalog service at baseURL.
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		pageSize:   100,
	}
}

// Ensure CatalogClient implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogClient)(nil)

// rawProduct is the collaborator's duck-typed wire shape. It exists only
// inside this file; everything past the boundary is typed.
type rawProduct struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"name"`
	PrimaryImage string                 `json:"primaryImage"`
	CustomFields map[string]interface{} `json:"customFields"`
	Assets       []models.ProductAsset  `json:"assets"`
}

type productPage struct {
	Products []rawProduct `json:"products"`
	NextPage int          `json:"nextPage"`
}

// ListProducts fetches the full catalog, awaiting each page before requesting
// the next. Total catalog size is bounded, and a single consistent pass
// matters more than throughput here.
func (c *CatalogClient) ListProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	var all []models.CatalogProduct
	page := 1
	for {
		body, err := c.getJSON(ctx, fmt.Sprintf("%s/products?page=%d&pageSize=%d", c.baseURL, page, c.pageSize))
		if err != nil {
			return nil, err
		}
		var parsed productPage
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse catalog page %d: %w", page, err)
		}
		for _, raw := range parsed.Products {
			all = append(all, parseProduct(raw))
		}
		if parsed.NextPage <= 0 || len(parsed.Products) == 0 {
			break
		}
		page = parsed.NextPage
	}
	log.Printf("🔍 CatalogClient: fetched %d products", len(all))
	return all, nil
}

// IconCatalog maps the product listing to typed icon catalog items. Products
// without an icon id are not icon inserts and are skipped.
func (c *CatalogClient) IconCatalog(ctx context.Context) ([]models.IconCatalogItem, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.IconCatalogItem, 0, len(products))
	for _, p := range products {
		if p.IconID == "" {
			continue
		}
		item := models.IconCatalogItem{
			IconID:     p.IconID,
			Name:       p.Name,
			SizeMM:     p.SizeMM,
			Categories: p.Categories,
		}
		if asset, ok := ResolveInsertAsset(p); ok {
			item.MatteImageURL = asset.URL
		}
		item.GlossyImageURL = resolveGlossyAsset(p)
		items = append(items, item)
	}
	return items, nil
}

// SearchIcons filters the icon catalog by a free-text query and physical
// slot size. An insert is compatible when its physical size does not exceed
// the slot size; a zero slotSizeMM disables the size filter.
func (c *CatalogClient) SearchIcons(ctx context.Context, query string, slotSizeMM float64) ([]models.IconCatalogItem, error) {
	items, err := c.IconCatalog(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	var matched []models.IconCatalogItem
	for _, item := range items {
		if slotSizeMM > 0 && item.SizeMM > slotSizeMM {
			continue
		}
		if needle != "" && !iconMatches(item, needle) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}

func iconMatches(item models.IconCatalogItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.IconID), needle) {
		return true
	}
	for _, cat := range item.Categories {
		if strings.Contains(strings.ToLower(cat), needle) {
			return true
		}
	}
	return false
}

func (c *CatalogClient) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	return body, nil
}

// parseProduct converts the duck-typed custom-fields payload into the typed
// CatalogProduct shape. Unknown or malformed fields degrade to zero values;
// the raw shape never leaks past this function.
func parseProduct(raw rawProduct) models.CatalogProduct {
	p := models.CatalogProduct{
		ID:           raw.ID,
		Name:         raw.Name,
		PrimaryImage: raw.PrimaryImage,
		Assets:       raw.Assets,
	}
	p.IconID = stringField(raw.CustomFields, "iconId")
	p.SizeMM = floatField(raw.CustomFields, "sizeMm")
	if cats := stringField(raw.CustomFields, "categories"); cats != "" {
		for _, cat := range strings.Split(cats, ",") {
			if trimmed := strings.TrimSpace(cat); trimmed != "" {
				p.Categories = append(p.Categories, trimmed)
			}
		}
	}
	return p
}

func stringField(fields map[string]interface{}, key string) string {
	if fields == nil {
		return ""
	}
	if v, ok := fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func floatField(fields map[string]interface{}, key string) float64 {
	if fields == nil {
		return 0
	}
	switch v := fields[key].(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// BaseURLValid reports whether the configured catalog URL parses. Used at
// startup so a typo fails fast instead of at first export.
func (c *CatalogClient) BaseURLValid() bool {
	_, err := url.ParseRequestURI(c.baseURL)
	return err == nil
}
