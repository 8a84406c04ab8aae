package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypad-studio/models"
)

func testIcon(id, name string) models.IconCatalogItem {
	return models.IconCatalogItem{
		IconID:         id,
		Name:           name,
		SizeMM:         19,
		Categories:     []string{"lighting"},
		MatteImageURL:  "https://cdn.example.com/" + id + "-m.png",
		GlossyImageURL: "https://cdn.example.com/" + id + "-g.png",
	}
}

func TestStore_StartsEmptyWithModelSlotSet(t *testing.T) {
	s := NewStore("KP6")
	snap := s.Snapshot()

	assert.Equal(t, "KP6", snap.Model)
	assert.Len(t, snap.Slots, 6)
	assert.Empty(t, snap.ActiveSlot)
	assert.False(t, snap.Complete)
	for id, state := range snap.Slots {
		assert.Nil(t, state.IconID, "slot %s", id)
		assert.Nil(t, state.Color, "slot %s", id)
	}
}

func TestStore_SelectSlotRejectsUnknownSlot(t *testing.T) {
	s := NewStore("KP4")
	err := s.SelectSlot("slot_9")
	var unknownErr *UnknownSlotError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "slot_9", unknownErr.Slot)
}

func TestStore_IconAndColorTargetActiveSlot(t *testing.T) {
	s := NewStore("KP4")

	// Without a selection both mutations refuse.
	assert.ErrorIs(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")), ErrNoActiveSlot)
	assert.ErrorIs(t, s.SetSlotGlowColor("#1EA7FF"), ErrNoActiveSlot)

	require.NoError(t, s.SelectSlot("slot_2"))
	require.NoError(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")))
	require.NoError(t, s.SetSlotGlowColor("#1EA7FF"))

	snap := s.Snapshot()
	state := snap.Slots["slot_2"]
	require.NotNil(t, state.IconID)
	assert.Equal(t, "A12", *state.IconID)
	assert.Equal(t, "Ceiling Light", *state.IconName)
	assert.Equal(t, "#1EA7FF", *state.Color)
	assert.NotNil(t, state.MatteImageURL)

	// Other slots stay untouched.
	assert.Nil(t, snap.Slots["slot_1"].IconID)
}

func TestStore_SetSlotGlowColorEmptyClears(t *testing.T) {
	s := NewStore("KP4")
	require.NoError(t, s.SelectSlot("slot_1"))
	require.NoError(t, s.SetSlotGlowColor("#00FF00"))
	require.NoError(t, s.SetSlotGlowColor(""))
	assert.Nil(t, s.Snapshot().Slots["slot_1"].Color)
}

func TestStore_ClearSlot(t *testing.T) {
	s := NewStore("KP4")
	require.NoError(t, s.SelectSlot("slot_1"))
	require.NoError(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")))
	require.NoError(t, s.ClearSlot("slot_1"))

	state := s.Snapshot().Slots["slot_1"]
	assert.Nil(t, state.IconID)
	assert.Nil(t, state.IconName)
}

func TestStore_ResetClearsEverySlot(t *testing.T) {
	s := NewStore("KP4")
	for _, id := range []models.SlotID{"slot_1", "slot_2"} {
		require.NoError(t, s.SelectSlot(id))
		require.NoError(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")))
	}
	s.Reset()

	snap := s.Snapshot()
	assert.Empty(t, snap.ActiveSlot)
	for id, state := range snap.Slots {
		assert.Nil(t, state.IconID, "slot %s", id)
	}
}

func TestStore_IsCompleteDerived(t *testing.T) {
	s := NewStore("KP4")
	assert.False(t, s.IsComplete())

	for _, id := range []models.SlotID{"slot_1", "slot_2", "slot_3", "slot_4"} {
		require.NoError(t, s.SelectSlot(id))
		require.NoError(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")))
	}
	assert.True(t, s.IsComplete())

	require.NoError(t, s.ClearSlot("slot_3"))
	assert.False(t, s.IsComplete())
}

func hydrationConfig() models.KeypadConfiguration {
	icon := "A12"
	color := "#1EA7FF"
	return models.KeypadConfiguration{
		"slot_1": {IconID: &icon, Color: &color},
		"slot_2": {},
		"slot_3": {},
		"slot_4": {},
	}
}

func TestStore_ApplyHydrationJoinsCatalogData(t *testing.T) {
	s := NewStore("KP4")
	token := s.BeginHydration()

	lookup := func(iconID string) (models.IconCatalogItem, bool) {
		return testIcon(iconID, "Ceiling Light"), true
	}
	require.NoError(t, s.ApplyHydration(token, "KP4", hydrationConfig(), lookup))

	state := s.Snapshot().Slots["slot_1"]
	require.NotNil(t, state.IconID)
	assert.Equal(t, "A12", *state.IconID)
	assert.Equal(t, "Ceiling Light", *state.IconName)
	assert.Equal(t, "#1EA7FF", *state.Color)
}

func TestStore_ApplyHydrationUnknownIconDegradesGracefully(t *testing.T) {
	s := NewStore("KP4")
	token := s.BeginHydration()

	lookup := func(string) (models.IconCatalogItem, bool) {
		return models.IconCatalogItem{}, false
	}
	require.NoError(t, s.ApplyHydration(token, "KP4", hydrationConfig(), lookup))

	// The icon id survives even though the catalog no longer knows it.
	state := s.Snapshot().Slots["slot_1"]
	require.NotNil(t, state.IconID)
	assert.Equal(t, "A12", *state.IconID)
	assert.Nil(t, state.IconName)
	assert.Nil(t, state.MatteImageURL)
}

func TestStore_ApplyHydrationModelMismatchLeavesStateUntouched(t *testing.T) {
	s := NewStore("KP4")
	require.NoError(t, s.SelectSlot("slot_1"))
	require.NoError(t, s.SelectIconForSlot(testIcon("B70", "Fan")))

	token := s.BeginHydration()
	err := s.ApplyHydration(token, "KP9", hydrationConfig(), nil)
	assert.ErrorIs(t, err, ErrModelMismatch)

	state := s.Snapshot().Slots["slot_1"]
	require.NotNil(t, state.IconID)
	assert.Equal(t, "B70", *state.IconID)
}

func TestStore_StaleHydrationDiscarded(t *testing.T) {
	s := NewStore("KP4")

	first := s.BeginHydration()
	second := s.BeginHydration()

	// The older request finishing late must not overwrite anything.
	assert.ErrorIs(t, s.ApplyHydration(first, "KP4", hydrationConfig(), nil), ErrStaleHydration)
	assert.Nil(t, s.Snapshot().Slots["slot_1"].IconID)

	require.NoError(t, s.ApplyHydration(second, "KP4", hydrationConfig(), nil))
	require.NotNil(t, s.Snapshot().Slots["slot_1"].IconID)
}

func TestStore_ResetInvalidatesInFlightHydration(t *testing.T) {
	s := NewStore("KP4")
	token := s.BeginHydration()
	s.Reset()

	assert.ErrorIs(t, s.ApplyHydration(token, "KP4", hydrationConfig(), nil), ErrStaleHydration)
}

func TestStore_ConfigurationProjection(t *testing.T) {
	s := NewStore("KP4")
	require.NoError(t, s.SelectSlot("slot_1"))
	require.NoError(t, s.SelectIconForSlot(testIcon("A12", "Ceiling Light")))
	require.NoError(t, s.SetSlotGlowColor("#1EA7FF"))

	config := s.Configuration()
	require.Len(t, config, 4)
	require.NotNil(t, config["slot_1"].IconID)
	assert.Equal(t, "A12", *config["slot_1"].IconID)
	assert.Equal(t, "#1EA7FF", *config["slot_1"].Color)
	assert.Nil(t, config["slot_2"].IconID)
}
