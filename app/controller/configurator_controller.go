package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"keypad-studio/configuration"
	"keypad-studio/configurator"
	"keypad-studio/geometry"
	"keypad-studio/models"
	"keypad-studio/render"
	"keypad-studio/repository"
	"keypad-studio/service"
	"keypad-studio/utils"
)

// ConfiguratorController handles HTTP requests for configurator sessions
type ConfiguratorController struct {
	sessions   *configurator.Manager
	catalog    service.CatalogServiceInterface
	orders     service.OrderServiceInterface
	designRepo repository.SavedDesignRepositoryInterface
	alpha      *render.AlphaAnalyzer
}

// NewConfiguratorController creates a new ConfiguratorController
func NewConfiguratorController(
	sessions *configurator.Manager,
	catalog service.CatalogServiceInterface,
	orders service.OrderServiceInterface,
	designRepo repository.SavedDesignRepositoryInterface,
	alpha *render.AlphaAnalyzer,
) *ConfiguratorController {
	return &ConfiguratorController{
		sessions:   sessions,
		catalog:    catalog,
		orders:     orders,
		designRepo: designRepo,
		alpha:      alpha,
	}
}

// CreateSession handles POST /configurator/sessions
func (c *ConfiguratorController) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !geometry.KnownModel(body.Model) {
		http.Error(w, fmt.Sprintf("Unknown keypad model %q", body.Model), http.StatusBadRequest)
		return
	}

	id, store := c.sessions.NewSession(body.Model)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": id,
		"state":     store.Snapshot(),
	})
}

// Dispatch handles /configurator/sessions/{id} and its sub-resources.
func (c *ConfiguratorController) Dispatch(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/configurator/sessions/")
	parts := strings.SplitN(path, "/", 2)
	sessionID := parts[0]
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	store, err := c.sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, store.Snapshot())
	case "select":
		c.selectSlot(w, r, store)
	case "icon":
		c.pickIcon(w, r, store)
	case "color":
		c.pickColor(w, r, store)
	case "clear":
		c.clearSlot(w, r, store)
	case "reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		store.Reset()
		writeJSON(w, http.StatusOK, store.Snapshot())
	case "hydrate":
		c.hydrate(w, r, store)
	case "preview":
		c.preview(w, r, store)
	case "thumbnail":
		c.thumbnail(w, r, store)
	case "icons":
		c.searchIcons(w, r, sessionID, store)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (c *ConfiguratorController) selectSlot(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Slot string `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !models.IsSlotID(body.Slot) {
		http.Error(w, "A valid slot id is required", http.StatusBadRequest)
		return
	}
	if err := store.SelectSlot(models.SlotID(body.Slot)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (c *ConfiguratorController) pickIcon(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		IconID string `json:"iconId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	iconID, ok := configuration.NormalizeIconID(body.IconID)
	if !ok || iconID == nil {
		http.Error(w, "A valid icon id is required", http.StatusBadRequest)
		return
	}

	item, found, err := c.lookupIcon(r.Context(), *iconID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to look up icon: %v", err), http.StatusBadGateway)
		return
	}
	if !found {
		// Keep the bare id; display degrades instead of dropping the pick.
		item = models.IconCatalogItem{IconID: *iconID}
	}
	if err := store.SelectIconForSlot(item); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (c *ConfiguratorController) pickColor(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	color, ok := configuration.NormalizeHexColor(body.Color)
	if !ok {
		http.Error(w, "Color must be a #RRGGBB hex string", http.StatusBadRequest)
		return
	}
	value := ""
	if color != nil {
		value = *color
	}
	if err := store.SetSlotGlowColor(value); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (c *ConfiguratorController) clearSlot(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Slot string `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !models.IsSlotID(body.Slot) {
		http.Error(w, "A valid slot id is required", http.StatusBadRequest)
		return
	}
	if err := store.ClearSlot(models.SlotID(body.Slot)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// hydrate handles POST .../hydrate: bulk-load a saved design or an existing
// cart line into the session. A failed hydration leaves prior state intact.
func (c *ConfiguratorController) hydrate(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Source    string `json:"source"`
		DesignID  int    `json:"designId"`
		OrderCode string `json:"orderCode"`
		LineID    string `json:"lineId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Register the hydration target before any remote fetch so a newer
	// request supersedes this one even while it is in flight.
	token := store.BeginHydration()
	ctx := r.Context()

	var sourceModel, stored string
	switch body.Source {
	case "design":
		design, err := c.designRepo.GetByID(ctx, body.DesignID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to load saved design: %v", err), http.StatusNotFound)
			return
		}
		sourceModel = design.KeypadModel
		stored = design.Configuration
	case "line":
		lines, err := c.orders.GetConfiguredLines(ctx, body.OrderCode)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to load order lines: %v", err), http.StatusBadGateway)
			return
		}
		found := false
		for _, line := range lines {
			if line.LineID == body.LineID {
				model, ok := utils.InferModelCode(line.ProductName, geometry.KnownModel)
				if !ok {
					http.Error(w, "Could not determine the line's keypad model", http.StatusUnprocessableEntity)
					return
				}
				sourceModel = model
				stored = line.Configuration
				found = true
				break
			}
		}
		if !found {
			http.Error(w, "Order line not found", http.StatusNotFound)
			return
		}
	default:
		http.Error(w, `source must be "design" or "line"`, http.StatusBadRequest)
		return
	}

	config, verr := configuration.ValidateAndNormalize(stored, configuration.Options{
		SlotIDs: geometry.GetSlotIDsForModel(sourceModel),
	})
	if verr != nil {
		http.Error(w, fmt.Sprintf("Stored configuration is invalid: %v", verr), http.StatusUnprocessableEntity)
		return
	}

	lookup := c.catalogLookup(ctx)
	if err := store.ApplyHydration(token, sourceModel, config, lookup); err != nil {
		if errors.Is(err, configurator.ErrStaleHydration) {
			// Superseded by a newer hydration; nothing was applied.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if errors.Is(err, configurator.ErrModelMismatch) {
			http.Error(w, "Source belongs to a different keypad model", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (c *ConfiguratorController) preview(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	geom := geometry.GetGeometryForModel(store.Model())
	snapshot := store.Snapshot()

	width, _ := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	var height float64
	if width > 0 {
		height = width * float64(geom.ShellHeight) / float64(geom.ShellWidth)
	}

	svg := render.RenderPreview(geom, store.Configuration(), snapshotLookup(snapshot), func(assetURL string) float64 {
		return c.alpha.VisibleRatio(r.Context(), assetURL)
	}, render.PreviewOptions{Width: width, Height: height})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

func (c *ConfiguratorController) thumbnail(w http.ResponseWriter, r *http.Request, store *configurator.Store) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	geom := geometry.GetGeometryForModel(store.Model())
	svg := render.RenderThumbnail(geom, store.Configuration(), snapshotLookup(store.Snapshot()), render.ThumbnailOptions{})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

// searchIcons handles GET .../icons?q=. Input is debounced per session;
// superseded requests return 204 and the caller keeps its current list.
func (c *ConfiguratorController) searchIcons(w http.ResponseWriter, r *http.Request, sessionID string, store *configurator.Store) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	deb, err := c.sessions.Search(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if !deb.Wait(r.Context()) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	geom := geometry.GetGeometryForModel(store.Model())
	items, searchErr := c.catalog.SearchIcons(r.Context(), r.URL.Query().Get("q"), geom.SlotSizeMM)
	if searchErr != nil {
		http.Error(w, fmt.Sprintf("Failed to search icons: %v", searchErr), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"icons": items})
}

// lookupIcon resolves one icon id against the catalog collaborator.
func (c *ConfiguratorController) lookupIcon(ctx context.Context, iconID string) (models.IconCatalogItem, bool, error) {
	items, err := c.catalog.IconCatalog(ctx)
	if err != nil {
		return models.IconCatalogItem{}, false, err
	}
	for _, item := range items {
		if item.IconID == iconID {
			return item, true, nil
		}
	}
	return models.IconCatalogItem{}, false, nil
}

// catalogLookup returns an icon lookup for hydration joins. A catalog outage
// degrades to bare-id display rather than failing the hydration.
func (c *ConfiguratorController) catalogLookup(ctx context.Context) func(iconID string) (models.IconCatalogItem, bool) {
	items, err := c.catalog.IconCatalog(ctx)
	if err != nil {
		return func(string) (models.IconCatalogItem, bool) { return models.IconCatalogItem{}, false }
	}
	byID := make(map[string]models.IconCatalogItem, len(items))
	for _, item := range items {
		byID[item.IconID] = item
	}
	return func(iconID string) (models.IconCatalogItem, bool) {
		item, ok := byID[iconID]
		return item, ok
	}
}

// snapshotLookup builds an icon lookup from the denormalized visual state,
// so preview rendering needs no catalog round trip.
func snapshotLookup(snapshot configurator.Snapshot) render.IconLookup {
	return func(iconID string) (models.IconCatalogItem, bool) {
		for _, state := range snapshot.Slots {
			if state.IconID == nil || *state.IconID != iconID {
				continue
			}
			item := models.IconCatalogItem{IconID: iconID, Categories: state.Categories}
			if state.IconName != nil {
				item.Name = *state.IconName
			}
			if state.MatteImageURL != nil {
				item.MatteImageURL = *state.MatteImageURL
			}
			if state.GlossyImageURL != nil {
				item.GlossyImageURL = *state.GlossyImageURL
			}
			return item, true
		}
		return models.IconCatalogItem{}, false
	}
}

// writeJSON encodes a JSON response body.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
