package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"keypad-studio/configuration"
	"keypad-studio/geometry"
	"keypad-studio/models"
	"keypad-studio/repository"
)

// SavedDesignController handles HTTP requests for saved keypad designs
type SavedDesignController struct {
	repository repository.SavedDesignRepositoryInterface
}

// NewSavedDesignController creates a new SavedDesignController
func NewSavedDesignController(repo repository.SavedDesignRepositoryInterface) *SavedDesignController {
	return &SavedDesignController{repository: repo}
}

// Collection handles /designs (POST create, GET list)
func (c *SavedDesignController) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ByID handles /designs/{id} (GET, PUT, DELETE)
func (c *SavedDesignController) ByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/designs/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "A numeric design id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		design, err := c.repository.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get saved design: %v", err), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, design)
	case http.MethodPut:
		c.update(w, r, id)
	case http.MethodDelete:
		if err := c.repository.Delete(r.Context(), id); err != nil {
			http.Error(w, fmt.Sprintf("Failed to delete saved design: %v", err), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *SavedDesignController) create(w http.ResponseWriter, r *http.Request) {
	design, ok := c.validateRequest(w, r)
	if !ok {
		return
	}
	id, err := c.repository.Insert(r.Context(), design)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to save design: %v", err), http.StatusInternalServerError)
		return
	}
	design.ID = id
	writeJSON(w, http.StatusCreated, design)
}

func (c *SavedDesignController) update(w http.ResponseWriter, r *http.Request, id int) {
	design, ok := c.validateRequest(w, r)
	if !ok {
		return
	}
	design.ID = id
	if err := c.repository.Update(r.Context(), design); err != nil {
		http.Error(w, fmt.Sprintf("Failed to update saved design: %v", err), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

func (c *SavedDesignController) list(w http.ResponseWriter, r *http.Request) {
	designs, err := c.repository.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list saved designs: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"designs": designs})
}

// validateRequest decodes and validates a create/update body. Designs are
// persisted strict: every slot must carry a valid icon id, and the stored
// string is always the canonical serialization.
func (c *SavedDesignController) validateRequest(w http.ResponseWriter, r *http.Request) (*models.SavedDesign, bool) {
	var body models.SavedDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if strings.TrimSpace(body.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return nil, false
	}
	if !geometry.KnownModel(body.KeypadModel) {
		http.Error(w, fmt.Sprintf("Unknown keypad model %q", body.KeypadModel), http.StatusBadRequest)
		return nil, false
	}

	slotIDs := geometry.GetSlotIDsForModel(body.KeypadModel)
	config, verr := configuration.ValidateAndNormalize([]byte(body.Configuration), configuration.Options{
		RequireComplete: true,
		SlotIDs:         slotIDs,
	})
	if verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return nil, false
	}

	return &models.SavedDesign{
		Name:          strings.TrimSpace(body.Name),
		KeypadModel:   body.KeypadModel,
		Configuration: configuration.Serialize(config, slotIDs),
	}, true
}
