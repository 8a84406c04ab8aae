package models

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SlotID identifies one physical button position on a keypad shell.
// The token grammar is slot_<positive integer>, e.g. "slot_1".
type SlotID string

var slotIDPattern = regexp.MustCompile(`^slot_[0-9]+$`)

// IsSlotID reports whether token matches the slot_<digits> grammar.
func IsSlotID(token string) bool {
	return slotIDPattern.MatchString(token)
}

// SlotNumber returns the numeric suffix of a slot id.
// Returns -1 when the suffix cannot be parsed (overflow or malformed token).
func SlotNumber(id SlotID) int {
	raw := strings.TrimPrefix(string(id), "slot_")
	if raw == string(id) {
		return -1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

// SortSlotIDs deduplicates tokens, discards any token that does not match the
// slot grammar, and returns the remainder in ascending order by numeric suffix.
// Suffixes that cannot be parsed as integers sort last; ties are broken by the
// raw token string so the result is deterministic.
//
// This is the single ordering used by serialization, rendering order and BOM
// row order. Do not reimplement it at call sites.
func SortSlotIDs(tokens []string) []SlotID {
	seen := make(map[SlotID]bool, len(tokens))
	ids := make([]SlotID, 0, len(tokens))
	for _, token := range tokens {
		if !IsSlotID(token) {
			continue
		}
		id := SlotID(token)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, b := SlotNumber(ids[i]), SlotNumber(ids[j])
		if a < 0 && b < 0 {
			return ids[i] < ids[j]
		}
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}
