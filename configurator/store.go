package configurator

import (
	"sync"

	"keypad-studio/configuration"
	"keypad-studio/geometry"
	"keypad-studio/models"
)

// SlotVisualState is one slot's configuration fields plus display data joined
// in from the icon catalog so renderers never do their own lookups. When an
// icon id cannot be matched in the catalog the id is kept and the display
// fields stay nil: display degrades, user data is never dropped.
type SlotVisualState struct {
	IconID         *string  `json:"iconId"`
	Color          *string  `json:"color"`
	IconName       *string  `json:"iconName"`
	MatteImageURL  *string  `json:"matteImageUrl"`
	GlossyImageURL *string  `json:"glossyImageUrl"`
	Categories     []string `json:"categories"`
}

// Snapshot is an immutable copy of store state handed to readers.
type Snapshot struct {
	Model      string                             `json:"model"`
	ActiveSlot models.SlotID                      `json:"activeSlot"`
	Slots      map[models.SlotID]SlotVisualState  `json:"slots"`
	Complete   bool                               `json:"complete"`
}

// Store is the single-writer state container behind one configurator
// session. All mutations go through its methods under one mutex; geometry
// and catalog data are read-only inputs and are never touched.
type Store struct {
	mu         sync.Mutex
	model      string
	slotIDs    []models.SlotID
	slots      map[models.SlotID]SlotVisualState
	activeSlot models.SlotID

	// hydrationGen identifies the most recent hydration request. Responses
	// carrying an older generation are discarded, since the user may have
	// started another hydration (or a reset) while a request was in flight.
	hydrationGen uint64
}

// NewStore creates an empty store for the given hardware model. The slot set
// is derived from geometry.
func NewStore(modelCode string) *Store {
	s := &Store{model: modelCode}
	s.initSlotsLocked()
	return s
}

func (s *Store) initSlotsLocked() {
	s.slotIDs = geometry.GetSlotIDsForModel(s.model)
	s.slots = make(map[models.SlotID]SlotVisualState, len(s.slotIDs))
	for _, id := range s.slotIDs {
		s.slots[id] = SlotVisualState{}
	}
	s.activeSlot = ""
}

// Model returns the active hardware model code.
func (s *Store) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// SelectSlot marks a slot as open for editing. Icon and color picks target
// the active slot only.
func (s *Store) SelectSlot(id models.SlotID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[id]; !ok {
		return &UnknownSlotError{Slot: string(id)}
	}
	s.activeSlot = id
	return nil
}

// SelectIconForSlot assigns an icon to the active slot, joining display
// fields from the supplied catalog item.
func (s *Store) SelectIconForSlot(item models.IconCatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSlot == "" {
		return ErrNoActiveSlot
	}
	state := s.slots[s.activeSlot]
	iconID := item.IconID
	name := item.Name
	matte := item.MatteImageURL
	glossy := item.GlossyImageURL
	state.IconID = &iconID
	state.IconName = &name
	state.MatteImageURL = &matte
	state.GlossyImageURL = &glossy
	state.Categories = append([]string(nil), item.Categories...)
	s.slots[s.activeSlot] = state
	return nil
}

// SetSlotGlowColor sets the glow color of the active slot. The color must
// already be canonical (validated upstream); empty clears it.
func (s *Store) SetSlotGlowColor(color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSlot == "" {
		return ErrNoActiveSlot
	}
	state := s.slots[s.activeSlot]
	if color == "" {
		state.Color = nil
	} else {
		state.Color = &color
	}
	s.slots[s.activeSlot] = state
	return nil
}

// ClearSlot resets one slot to empty visual state.
func (s *Store) ClearSlot(id models.SlotID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[id]; !ok {
		return &UnknownSlotError{Slot: string(id)}
	}
	s.slots[id] = SlotVisualState{}
	return nil
}

// Reset returns every slot to empty state and invalidates any in-flight
// hydration.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrationGen++
	s.initSlotsLocked()
}

// BeginHydration registers a new hydration target and returns its token.
// Any hydration started earlier becomes stale the moment this returns.
func (s *Store) BeginHydration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrationGen++
	return s.hydrationGen
}

// ApplyHydration installs a validated configuration fetched from a remote
// source (saved design or cart line). A stale token leaves the store
// untouched, as does a model mismatch: a half-applied configuration is worse
// than none. lookup joins display data by icon id and may be nil.
func (s *Store) ApplyHydration(token uint64, sourceModel string, config models.KeypadConfiguration, lookup func(iconID string) (models.IconCatalogItem, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.hydrationGen {
		return ErrStaleHydration
	}
	if sourceModel != s.model {
		return ErrModelMismatch
	}

	next := make(map[models.SlotID]SlotVisualState, len(s.slotIDs))
	for _, id := range s.slotIDs {
		slot := config[id]
		state := SlotVisualState{IconID: slot.IconID, Color: slot.Color}
		if slot.IconID != nil && lookup != nil {
			if item, ok := lookup(*slot.IconID); ok {
				name := item.Name
				matte := item.MatteImageURL
				glossy := item.GlossyImageURL
				state.IconName = &name
				state.MatteImageURL = &matte
				state.GlossyImageURL = &glossy
				state.Categories = append([]string(nil), item.Categories...)
			}
		}
		next[id] = state
	}
	s.slots = next
	return nil
}

// Configuration projects the visual state down to the configuration fields.
func (s *Store) Configuration() models.KeypadConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configurationLocked()
}

func (s *Store) configurationLocked() models.KeypadConfiguration {
	config := make(models.KeypadConfiguration, len(s.slotIDs))
	for _, id := range s.slotIDs {
		state := s.slots[id]
		config[id] = models.SlotConfiguration{IconID: state.IconID, Color: state.Color}
	}
	return config.Clone()
}

// IsComplete is derived on every read, never stored.
func (s *Store) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return configuration.IsComplete(s.configurationLocked(), s.slotIDs)
}

// Snapshot returns an immutable copy of the full visual state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[models.SlotID]SlotVisualState, len(s.slots))
	for id, state := range s.slots {
		copied := state
		copied.Categories = append([]string(nil), state.Categories...)
		slots[id] = copied
	}
	return Snapshot{
		Model:      s.model,
		ActiveSlot: s.activeSlot,
		Slots:      slots,
		Complete:   configuration.IsComplete(s.configurationLocked(), s.slotIDs),
	}
}
