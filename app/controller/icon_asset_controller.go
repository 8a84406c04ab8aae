package controller

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"keypad-studio/repository"
	"keypad-studio/service"
)

// IconAssetController handles HTTP requests for icon artwork administration
type IconAssetController struct {
	syncService service.SyncServiceInterface
	repository  repository.IconAssetRepositoryInterface
}

// NewIconAssetController creates a new IconAssetController
func NewIconAssetController(syncService service.SyncServiceInterface, repo repository.IconAssetRepositoryInterface) *IconAssetController {
	return &IconAssetController{
		syncService: syncService,
		repository:  repo,
	}
}

// LoadAssets handles GET /admin/icon-assets/load
// Syncs icon artwork from the Drive folder into the asset table.
func (c *IconAssetController) LoadAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		folderID = os.Getenv("ICON_DRIVE_FOLDER_ID")
	}
	if folderID == "" {
		http.Error(w, "folderId parameter is required", http.StatusBadRequest)
		return
	}

	assets, err := c.syncService.SyncIconAssets(r.Context(), folderID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to sync icon assets: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

// GetPending handles GET /admin/icon-assets/pending
func (c *IconAssetController) GetPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	assets, err := c.repository.GetPending(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get pending icon assets: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

// GetOptimizedImage handles GET /admin/icon-assets/pending/{id}/image?size=thumb|medium
// Serves a cached, resized JPEG of the asset's artwork for the review UI.
func (c *IconAssetController) GetOptimizedImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/icon-assets/pending/")
	idStr := strings.TrimSuffix(path, "/image")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "A numeric asset id is required", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}

	cachePath := service.GetCachePath(id, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(data)
			return
		}
	}

	asset, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get icon asset: %v", err), http.StatusNotFound)
		return
	}

	resp, err := http.Get(asset.ImageURL)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch artwork: %v", err), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		http.Error(w, fmt.Sprintf("Artwork endpoint returned status %d", resp.StatusCode), http.StatusBadGateway)
		return
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, "Failed to read artwork", http.StatusBadGateway)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to optimize artwork: %v", err), http.StatusInternalServerError)
		return
	}
	// Cache failures only cost the next request a re-fetch.
	_ = service.SaveToCache(cachePath, optimized)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(optimized)
}
