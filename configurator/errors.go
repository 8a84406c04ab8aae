package configurator

import "fmt"

// Store errors
var (
	ErrModelMismatch  = &StoreError{Message: "hydration source belongs to a different hardware model"}
	ErrStaleHydration = &StoreError{Message: "hydration superseded by a newer request"}
	ErrNoActiveSlot   = &StoreError{Message: "no slot is selected for editing"}
	ErrSessionGone    = &StoreError{Message: "configurator session not found"}
)

// StoreError represents a configurator-level error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// UnknownSlotError names a slot id outside the active model's slot set.
type UnknownSlotError struct {
	Slot string
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("slot %q is not part of the active model", e.Slot)
}
