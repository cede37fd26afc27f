package sim

import "errors"

// Programming errors: raised to the caller, never auto-corrected. Correct
// external usage never triggers them.
var (
	ErrUnknownJob       = errors.New("unknown job")
	ErrJobAtCapacity    = errors.New("job at capacity")
	ErrVillagerNotFound = errors.New("villager not found")
	ErrBuildingNotFound = errors.New("building not found")
	ErrUnknownRecipe    = errors.New("unknown recipe")
	ErrBadCreationStage = errors.New("creation flow out of order")
)

// ErrInvalidState marks a snapshot that fails schema validation. The core
// never repairs such a snapshot; the persistence layer migrates first.
var ErrInvalidState = errors.New("invalid state")
