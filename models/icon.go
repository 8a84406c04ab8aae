package models

// IconCatalogItem is the typed in-memory shape for one icon insert, parsed
// from the catalog collaborator's product listing at the boundary.
type IconCatalogItem struct {
	IconID     string   `json:"iconId"`
	Name       string   `json:"name"`
	SizeMM     float64  `json:"sizeMm"`
	Categories []string `json:"categories"`
	// MatteImageURL is the flat artwork rendered in-context on the shell.
	MatteImageURL string `json:"matteImageUrl"`
	// GlossyImageURL is the beauty shot shown in pickers.
	GlossyImageURL string `json:"glossyImageUrl"`
}

// ProductAsset is one image attached to a catalog product.
type ProductAsset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Tag  string `json:"tag"`
}

// CatalogProduct is the typed view of a catalog product, parsed from the
// collaborator's duck-typed custom-fields payload. The raw payload never
// leaks past the catalog client.
type CatalogProduct struct {
	ID           int
	Name         string
	IconID       string
	SizeMM       float64
	Categories   []string
	PrimaryImage string
	Assets       []ProductAsset
}
