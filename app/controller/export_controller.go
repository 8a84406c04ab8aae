package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"keypad-studio/configuration"
	"keypad-studio/geometry"
	"keypad-studio/service"
)

// ExportController handles HTTP requests for BOM document export
type ExportController struct {
	exportService service.ExportServiceInterface
	renders       *service.RenderStore
}

// NewExportController creates a new ExportController
func NewExportController(exportService service.ExportServiceInterface, renders *service.RenderStore) *ExportController {
	return &ExportController{
		exportService: exportService,
		renders:       renders,
	}
}

// Export handles POST /orders/{code}/export
// Body: {"model": "KP4", "configuration": { "slot_1": {...}, ... }}
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/orders/")
	orderCode := strings.TrimSuffix(path, "/export")
	if orderCode == "" || orderCode == path {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var req struct {
		Model         string          `json:"model"`
		Configuration json.RawMessage `json:"configuration"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !geometry.KnownModel(req.Model) {
		http.Error(w, fmt.Sprintf("Unknown keypad model %q", req.Model), http.StatusBadRequest)
		return
	}

	pdf, err := c.exportService.ExportBOM(r.Context(), orderCode, req.Model, []byte(req.Configuration))
	if err != nil {
		var verr *configuration.ValidationError
		var assetErr *service.AssetResolutionError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, verr)
		case errors.Is(err, service.ErrUnmatchedLine):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &assetErr):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Export failed: %v", err), http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="keypad-bom-%s.pdf"`, orderCode))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// Render handles GET /exports/{token}/render — the page the headless
// rendering collaborator navigates to while an export is in flight.
func (c *ExportController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/exports/")
	token := strings.TrimSuffix(path, "/render")
	if token == "" || token == path {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	html, ok := c.renders.Get(token)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
