package models

// SlotConfiguration is the per-slot configuration payload. Both fields are
// independently optional while a design is being edited; nil means "not set".
type SlotConfiguration struct {
	IconID *string `json:"iconId"`
	Color  *string `json:"color"`
}

// KeypadConfiguration maps slot ids to their configuration. A draft may have
// empty slots; a strict configuration (see configuration.AsStrict) has a valid
// icon id in every slot of its model's slot set.
type KeypadConfiguration map[SlotID]SlotConfiguration

// SlotIDs returns the configuration's slot set in canonical order.
func (c KeypadConfiguration) SlotIDs() []SlotID {
	tokens := make([]string, 0, len(c))
	for id := range c {
		tokens = append(tokens, string(id))
	}
	return SortSlotIDs(tokens)
}

// Clone returns a deep copy so snapshots can be handed out without aliasing
// the live map.
func (c KeypadConfiguration) Clone() KeypadConfiguration {
	out := make(KeypadConfiguration, len(c))
	for id, slot := range c {
		var iconID, color *string
		if slot.IconID != nil {
			v := *slot.IconID
			iconID = &v
		}
		if slot.Color != nil {
			v := *slot.Color
			color = &v
		}
		out[id] = SlotConfiguration{IconID: iconID, Color: color}
	}
	return out
}
