package service

import (
	"strings"

	"keypad-studio/models"
)

// ResolveInsertAsset picks the printable "matte" insert artwork among a
// product's images. Matching an insert among several product images is
// inherently fuzzy, so the heuristic lives behind this one function with an
// ordered fallback list:
//
//  1. an asset explicitly tagged "insert";
//  2. an asset whose name contains "insert";
//  3. an asset whose name contains "matte";
//  4. the product's primary image, as a last resort.
//
// Tighten the list here; export orchestration never inspects assets itself.
func ResolveInsertAsset(product models.CatalogProduct) (models.ProductAsset, bool) {
	for _, asset := range product.Assets {
		if strings.EqualFold(asset.Tag, "insert") {
			return asset, true
		}
	}
	for _, asset := range product.Assets {
		if strings.Contains(strings.ToLower(asset.Name), "insert") {
			return asset, true
		}
	}
	for _, asset := range product.Assets {
		if strings.Contains(strings.ToLower(asset.Name), "matte") {
			return asset, true
		}
	}
	if product.PrimaryImage != "" {
		return models.ProductAsset{Name: product.Name, URL: product.PrimaryImage}, true
	}
	return models.ProductAsset{}, false
}

// resolveGlossyAsset picks the picker beauty shot: a "glossy" tagged or named
// asset, falling back to the primary image.
func resolveGlossyAsset(product models.CatalogProduct) string {
	for _, asset := range product.Assets {
		if strings.EqualFold(asset.Tag, "glossy") {
			return asset.URL
		}
	}
	for _, asset := range product.Assets {
		if strings.Contains(strings.ToLower(asset.Name), "glossy") {
			return asset.URL
		}
	}
	return product.PrimaryImage
}
