package configuration

import (
	"encoding/json"
	"regexp"
	"strings"

	"keypad-studio/models"
)

var (
	iconIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,4}$`)
	hexPattern    = regexp.MustCompile(`^#[0-9A-F]{6}$`)
)

// Options controls a validation pass.
type Options struct {
	// RequireComplete rejects drafts with any empty slot.
	RequireComplete bool
	// SlotIDs, when non-nil, is the expected slot set for the target hardware
	// model. When nil the slot set present in the payload is used.
	SlotIDs []models.SlotID
}

// NormalizeIconID maps an untrusted icon id value to its canonical form.
// Empty (after trimming) normalizes to nil. The second return is false when
// the value is present but does not match the icon-id grammar.
func NormalizeIconID(raw string) (*string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	if !iconIDPattern.MatchString(trimmed) {
		return nil, false
	}
	return &trimmed, true
}

// NormalizeHexColor maps an untrusted color value to canonical uppercase
// #RRGGBB form. Empty normalizes to nil; anything else that does not match
// the grammar returns ok=false.
func NormalizeHexColor(raw string) (*string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	upper := strings.ToUpper(trimmed)
	if !hexPattern.MatchString(upper) {
		return nil, false
	}
	return &upper, true
}

// ValidateAndNormalize is the single choke point every write path passes
// through: cart line updates, saved-design create/update and PDF export all
// hand their untrusted payload here before persisting or rendering anything.
//
// input may be a JSON string or []byte, a decoded map, or an existing
// KeypadConfiguration. The function is pure and total: it never panics, and
// the same input with the same options always yields the same result.
//
// Non-slot top-level keys are always a hard error, even when an explicit
// expected slot set is supplied. The ordering helper's silent-discard policy
// applies only to already-validated slot sets, never to raw payload keys.
func ValidateAndNormalize(input interface{}, opts Options) (models.KeypadConfiguration, *ValidationError) {
	payload, verr := decodeInput(input)
	if verr != nil {
		return nil, verr
	}

	// Every raw key must satisfy the slot grammar before anything else looks
	// at the key set.
	rawKeys := make([]string, 0, len(payload))
	for key := range payload {
		if !models.IsSlotID(key) {
			e := newError(CodeUnexpectedKey, "key %q does not match slot_<number>", key)
			e.Key = key
			return nil, e
		}
		rawKeys = append(rawKeys, key)
	}

	var expected []models.SlotID
	if opts.SlotIDs != nil {
		tokens := make([]string, len(opts.SlotIDs))
		for i, id := range opts.SlotIDs {
			tokens[i] = string(id)
		}
		expected = models.SortSlotIDs(tokens)

		allowed := make(map[models.SlotID]bool, len(expected))
		for _, id := range expected {
			allowed[id] = true
		}
		for _, key := range rawKeys {
			if !allowed[models.SlotID(key)] {
				e := newError(CodeUnexpectedSlotKey, "slot %q is not part of the expected slot set", key)
				e.Key = key
				return nil, e
			}
		}
	} else {
		expected = models.SortSlotIDs(rawKeys)
	}

	normalized := make(models.KeypadConfiguration, len(expected))
	var empty []models.SlotID

	for _, id := range expected {
		raw, ok := payload[string(id)]
		if !ok {
			e := newError(CodeMissingSlot, "slot %q is missing from the payload", id)
			e.Slots = []models.SlotID{id}
			return nil, e
		}

		slotMap, ok := raw.(map[string]interface{})
		if !ok {
			e := newError(CodeInvalidSlotShape, "slot %q must be an object", id)
			e.Slots = []models.SlotID{id}
			return nil, e
		}

		iconID, verr := normalizeField(slotMap, "iconId", id, NormalizeIconID, CodeInvalidIconId)
		if verr != nil {
			return nil, verr
		}
		color, verr := normalizeField(slotMap, "color", id, NormalizeHexColor, CodeInvalidColor)
		if verr != nil {
			return nil, verr
		}

		if iconID == nil {
			empty = append(empty, id)
		}
		normalized[id] = models.SlotConfiguration{IconID: iconID, Color: color}
	}

	if opts.RequireComplete && len(empty) > 0 {
		e := newError(CodeIncompleteConfiguration, "%d of %d slots have no icon assigned", len(empty), len(expected))
		e.Slots = expected
		return nil, e
	}

	return normalized, nil
}

// normalizeField extracts and normalizes one optional string field of a slot
// object. Absent, null and empty-string all normalize to nil.
func normalizeField(
	slotMap map[string]interface{},
	field string,
	id models.SlotID,
	normalize func(string) (*string, bool),
	failCode ErrorCode,
) (*string, *ValidationError) {
	raw, present := slotMap[field]
	if !present || raw == nil {
		return nil, nil
	}
	str, ok := raw.(string)
	if !ok {
		e := newError(failCode, "slot %q field %q must be a string or null", id, field)
		e.Slots = []models.SlotID{id}
		return nil, e
	}
	value, ok := normalize(str)
	if !ok {
		e := newError(failCode, "slot %q field %q value %q is invalid", id, field, str)
		e.Slots = []models.SlotID{id}
		return nil, e
	}
	return value, nil
}

// decodeInput reduces the accepted input kinds to a generic key→value map.
func decodeInput(input interface{}) (map[string]interface{}, *ValidationError) {
	switch v := input.(type) {
	case models.KeypadConfiguration:
		out := make(map[string]interface{}, len(v))
		for id, slot := range v {
			slotMap := map[string]interface{}{}
			if slot.IconID != nil {
				slotMap["iconId"] = *slot.IconID
			}
			if slot.Color != nil {
				slotMap["color"] = *slot.Color
			}
			out[string(id)] = slotMap
		}
		return out, nil
	case map[string]interface{}:
		return v, nil
	case string:
		return decodeJSON([]byte(v))
	case []byte:
		return decodeJSON(v)
	case json.RawMessage:
		return decodeJSON(v)
	default:
		return nil, newError(CodeNotAnObject, "configuration payload must be a JSON object")
	}
}

func decodeJSON(data []byte) (map[string]interface{}, *ValidationError) {
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, newError(CodeMalformedJson, "configuration payload is not valid JSON: %v", err)
	}
	obj, ok := generic.(map[string]interface{})
	if !ok {
		return nil, newError(CodeNotAnObject, "configuration payload must be a JSON object")
	}
	return obj, nil
}

// Serialize emits the canonical JSON string for a configuration: slots in
// ascending numeric order, fixed field order, colors uppercased. Equal
// logical configurations always produce byte-identical strings, which the
// export pipeline relies on for order-line matching.
func Serialize(config models.KeypadConfiguration, slotIDs []models.SlotID) string {
	ordered := slotIDs
	if ordered == nil {
		ordered = config.SlotIDs()
	} else {
		tokens := make([]string, len(ordered))
		for i, id := range ordered {
			tokens[i] = string(id)
		}
		ordered = models.SortSlotIDs(tokens)
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range ordered {
		if i > 0 {
			sb.WriteByte(',')
		}
		slot := config[id]
		if slot.Color != nil {
			upper := strings.ToUpper(*slot.Color)
			slot.Color = &upper
		}
		keyJSON, _ := json.Marshal(string(id))
		slotJSON, _ := json.Marshal(slot)
		sb.Write(keyJSON)
		sb.WriteByte(':')
		sb.Write(slotJSON)
	}
	sb.WriteByte('}')
	return sb.String()
}

// IsComplete reports whether every slot of the given slot set has an icon
// assigned. With a nil slot set the configuration's own slot set is used.
func IsComplete(config models.KeypadConfiguration, slotIDs []models.SlotID) bool {
	if slotIDs == nil {
		slotIDs = config.SlotIDs()
	}
	for _, id := range slotIDs {
		slot, ok := config[id]
		if !ok || slot.IconID == nil {
			return false
		}
	}
	return len(slotIDs) > 0
}

// AsStrict promotes a draft to a strict configuration. A nil result means
// "not ready to persist"; callers must never attempt partial persistence.
func AsStrict(config models.KeypadConfiguration, slotIDs []models.SlotID) (models.KeypadConfiguration, bool) {
	if !IsComplete(config, slotIDs) {
		return nil, false
	}
	return config.Clone(), true
}
