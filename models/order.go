package models

// ConfiguredLine is one order line that carries a stored keypad
// configuration, as returned by the order collaborator.
type ConfiguredLine struct {
	LineID        string `json:"lineId"`
	ProductName   string `json:"productName"`
	Quantity      int    `json:"quantity"`
	Configuration string `json:"configuration"` // stored configuration JSON
}
