package service

import (
	"context"
	"fmt"
	"html/template"
	"log"

	"keypad-studio/configuration"
	"keypad-studio/geometry"
	"keypad-studio/models"
	"keypad-studio/render"
)

// ExportService resolves a strict configuration plus the remote catalog into
// a deterministic bill of materials and hands the markup to the headless
// rendering collaborator. Export failures are terminal for one attempt only;
// they never touch configurator state.
type ExportService struct {
	orders   OrderServiceInterface
	catalog  CatalogServiceInterface
	renderer DocumentRendererInterface
	renders  *RenderStore
	alpha    *render.AlphaAnalyzer
	baseURL  string
}

// NewExportService creates the export pipeline.
func NewExportService(
	orders OrderServiceInterface,
	catalog CatalogServiceInterface,
	renderer DocumentRendererInterface,
	renders *RenderStore,
	alpha *render.AlphaAnalyzer,
	baseURL string,
) *ExportService {
	return &ExportService{
		orders:   orders,
		catalog:  catalog,
		renderer: renderer,
		renders:  renders,
		alpha:    alpha,
		baseURL:  baseURL,
	}
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// ExportBOM validates rawConfig as a strict configuration for modelCode,
// matches it against the order's stored lines by canonical serialization,
// resolves every slot's printable insert asset and renders the PDF.
func (s *ExportService) ExportBOM(ctx context.Context, orderCode, modelCode string, rawConfig []byte) ([]byte, error) {
	slotIDs := geometry.GetSlotIDsForModel(modelCode)

	config, verr := configuration.ValidateAndNormalize(rawConfig, configuration.Options{
		RequireComplete: true,
		SlotIDs:         slotIDs,
	})
	if verr != nil {
		return nil, verr
	}
	want := configuration.Serialize(config, slotIDs)

	line, err := s.matchLine(ctx, orderCode, want, slotIDs)
	if err != nil {
		return nil, err
	}
	log.Printf("📦 ExportBOM: order=%s matched line=%s", orderCode, line.LineID)

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch icon catalog: %w", err)
	}
	byIconID := make(map[string]models.CatalogProduct, len(products))
	for _, p := range products {
		if p.IconID != "" {
			byIconID[p.IconID] = p
		}
	}

	// Every configured slot must resolve to a printable asset; a document
	// with a silently missing part is worse than no document.
	assets := make(map[string]models.ProductAsset)
	for _, id := range slotIDs {
		slot := config[id]
		if slot.IconID == nil {
			continue
		}
		if _, done := assets[*slot.IconID]; done {
			continue
		}
		product, ok := byIconID[*slot.IconID]
		if !ok {
			return nil, &AssetResolutionError{IconID: *slot.IconID}
		}
		asset, ok := ResolveInsertAsset(product)
		if !ok {
			return nil, &AssetResolutionError{IconID: *slot.IconID}
		}
		assets[*slot.IconID] = asset
	}

	iconLookup := func(iconID string) (models.IconCatalogItem, bool) {
		product, ok := byIconID[iconID]
		if !ok {
			return models.IconCatalogItem{}, false
		}
		item := models.IconCatalogItem{
			IconID:     product.IconID,
			Name:       product.Name,
			SizeMM:     product.SizeMM,
			Categories: product.Categories,
		}
		if asset, ok := assets[iconID]; ok {
			item.MatteImageURL = asset.URL
		}
		return item, true
	}
	ratioLookup := func(assetURL string) float64 {
		return s.alpha.VisibleRatio(ctx, assetURL)
	}

	geom := geometry.GetGeometryForModel(modelCode)
	diagram := render.RenderPreview(geom, config, iconLookup, ratioLookup, render.PreviewOptions{
		Width:  500,
		Height: 500 * float64(geom.ShellHeight) / float64(geom.ShellWidth),
	})
	rows := render.BuildBOMRows(geom, config, iconLookup, assets)

	html, err := render.RenderDocumentHTML(render.DocumentData{
		OrderCode:  orderCode,
		ModelCode:  geom.ModelCode,
		SlotSizeMM: geom.SlotSizeMM,
		Diagram:    template.HTML(diagram),
		Rows:       rows,
	})
	if err != nil {
		return nil, err
	}

	token := s.renders.Put(html)
	defer s.renders.Delete(token)

	pdf, err := s.renderer.RenderPDF(ctx, fmt.Sprintf("%s/exports/%s/render", s.baseURL, token))
	if err != nil {
		return nil, fmt.Errorf("document rendering collaborator failed: %w", err)
	}
	return pdf, nil
}

// matchLine finds the order line whose stored configuration serializes to
// the same canonical string as the requested one. Stored payloads are
// re-normalized before comparing, so the match is immune to key order and
// color casing in storage; exact string equality of canonical forms is the
// only matching strategy.
func (s *ExportService) matchLine(ctx context.Context, orderCode, want string, slotIDs []models.SlotID) (models.ConfiguredLine, error) {
	lines, err := s.orders.GetConfiguredLines(ctx, orderCode)
	if err != nil {
		return models.ConfiguredLine{}, fmt.Errorf("failed to fetch order lines: %w", err)
	}
	for _, line := range lines {
		stored, verr := configuration.ValidateAndNormalize(line.Configuration, configuration.Options{SlotIDs: slotIDs})
		if verr != nil {
			// A line for another model or a corrupt payload; not a match.
			continue
		}
		if configuration.Serialize(stored, slotIDs) == want {
			return line, nil
		}
	}
	return models.ConfiguredLine{}, ErrUnmatchedLine
}
