package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"keypad-studio/geometry"
	"keypad-studio/models"
)

//go:embed templates/bom.html
var documentTemplates embed.FS

// BOMRow is one line of the bill of materials, in canonical slot order.
type BOMRow struct {
	Slot      models.SlotID
	Label     string
	IconID    string
	IconName  string
	SizeMM    float64
	Color     string // empty when no glow color is set
	AssetURL  string // resolved printable insert asset
	AssetName string
}

// DocumentData feeds the printable document template.
type DocumentData struct {
	OrderCode  string
	ModelCode  string
	SlotSizeMM float64
	Diagram    template.HTML // inline SVG slot diagram
	Rows       []BOMRow
}

// BuildBOMRows assembles bill-of-materials rows from a strict configuration.
// assets maps icon id to its resolved printable asset; every configured slot
// must have an entry, which the export pipeline guarantees before calling.
func BuildBOMRows(geom *models.KeypadModelGeometry, config models.KeypadConfiguration, icons IconLookup, assets map[string]models.ProductAsset) []BOMRow {
	ids := geometry.GetSlotIDsForModel(geom.ModelCode)
	rows := make([]BOMRow, 0, len(ids))
	for _, id := range ids {
		slot := config[id]
		row := BOMRow{
			Slot:   id,
			Label:  geom.Slots[id].Label,
			SizeMM: geom.SlotSizeMM,
		}
		if slot.Color != nil {
			row.Color = *slot.Color
		}
		if slot.IconID != nil {
			row.IconID = *slot.IconID
			if item, ok := icons(*slot.IconID); ok {
				row.IconName = item.Name
				if item.SizeMM > 0 {
					row.SizeMM = item.SizeMM
				}
			}
			if asset, ok := assets[*slot.IconID]; ok {
				row.AssetURL = asset.URL
				row.AssetName = asset.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderDocumentHTML renders the fixed-layout printable document (slot
// diagram plus tabular bill of materials) that the headless rendering
// collaborator turns into a PDF.
func RenderDocumentHTML(data DocumentData) (string, error) {
	tmpl, err := template.ParseFS(documentTemplates, "templates/bom.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse document template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute document template: %w", err)
	}
	return buf.String(), nil
}
