package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSlotID(t *testing.T) {
	valid := []string{"slot_1", "slot_12", "slot_007", "slot_999"}
	for _, token := range valid {
		assert.True(t, IsSlotID(token), "expected %q to be a slot id", token)
	}

	invalid := []string{"", "slot_", "slot_x", "slot_1a", "Slot_1", "slot-1", "_meta", "slot_1 ", " slot_1", "slot__1", "1"}
	for _, token := range invalid {
		assert.False(t, IsSlotID(token), "expected %q to be rejected", token)
	}
}

func TestSortSlotIDs_OrdersByNumericSuffix(t *testing.T) {
	got := SortSlotIDs([]string{"slot_10", "slot_2", "slot_1", "slot_9"})
	assert.Equal(t, []SlotID{"slot_1", "slot_2", "slot_9", "slot_10"}, got)
}

func TestSortSlotIDs_DiscardsNonMatchingTokens(t *testing.T) {
	got := SortSlotIDs([]string{"slot_2", "_meta", "slot_1", "banana", ""})
	assert.Equal(t, []SlotID{"slot_1", "slot_2"}, got)
}

func TestSortSlotIDs_Deduplicates(t *testing.T) {
	got := SortSlotIDs([]string{"slot_3", "slot_1", "slot_3", "slot_1"})
	assert.Equal(t, []SlotID{"slot_1", "slot_3"}, got)
}

func TestSortSlotIDs_PaddedSuffixesAreDistinctAndDeterministic(t *testing.T) {
	// slot_007 and slot_7 are distinct tokens with the same numeric value;
	// the tie breaks on the raw string.
	got := SortSlotIDs([]string{"slot_7", "slot_007"})
	assert.Equal(t, []SlotID{"slot_007", "slot_7"}, got)
}

func TestSortSlotIDs_UnparseableSuffixSortsLast(t *testing.T) {
	// A suffix too large for int still matches the grammar but cannot be
	// parsed; it must sort after every parseable slot.
	huge := "slot_99999999999999999999999999"
	got := SortSlotIDs([]string{huge, "slot_2", "slot_1"})
	assert.Equal(t, []SlotID{"slot_1", "slot_2", SlotID(huge)}, got)
}

func TestSlotNumber(t *testing.T) {
	assert.Equal(t, 12, SlotNumber("slot_12"))
	assert.Equal(t, -1, SlotNumber("nope"))
}
