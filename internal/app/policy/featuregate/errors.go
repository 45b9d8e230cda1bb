// internal/app/policy/featuregate/errors.go
package featuregate

import "fmt"

// ForbiddenError reports a caller without the role a mutation requires.
type ForbiddenError struct {
	Need string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: requires %s role", e.Need)
}

// SetupRequiredError reports a mutation against an unprovisioned rule
// store. Unlike reads, a write cannot be silently ignored; the operator
// has to run the pending schema setup first.
type SetupRequiredError struct {
	Step string
}

func (e *SetupRequiredError) Error() string {
	return fmt.Sprintf("feature gate storage is not set up: %s", e.Step)
}

// UnknownKeyError reports a mutation naming a key outside the catalog.
// Reads fail open on unknown keys, but persisting rules for them would
// only create orphans.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown feature key %q", e.Key)
}
