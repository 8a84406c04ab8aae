package models

import "encoding/json"

// SavedDesign is a persisted keypad design. Configuration is always the
// canonical serialization produced by the configuration contract; rows never
// hold a string that did not pass through it.
type SavedDesign struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	KeypadModel   string `json:"keypadModel"`
	Configuration string `json:"configuration"`
	CreatedAt     string `json:"createdAt"`
}

// SavedDesignRequest is the create/update request body. Configuration is kept
// raw here; the controller runs it through validation before it reaches the
// repository.
type SavedDesignRequest struct {
	Name          string          `json:"name"`
	KeypadModel   string          `json:"keypadModel"`
	Configuration json.RawMessage `json:"configuration"`
}
