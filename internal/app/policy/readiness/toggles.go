// internal/app/policy/readiness/toggles.go
package readiness

import (
	"os"
	"strconv"
)

// Environment variables controlling the publish gate. Both are read fresh
// on every evaluation so operators can toggle them on a live process.
const (
	EnvPublishGate   = "CHAPTERHUB_PUBLISH_GATE"
	EnvInterviewGate = "CHAPTERHUB_INTERVIEW_GATE"
)

// Toggles exposes the two operational switches the engine consults.
// Implementations must be cheap; the engine calls them on every evaluation
// rather than caching, so mid-process toggling takes effect immediately.
type Toggles interface {
	// PublishGateEnabled reports whether the first-publish readiness gate
	// is enforced at all.
	PublishGateEnabled() bool

	// InterviewGateEnforced reports whether a passed (or waived) interview
	// is part of readiness.
	InterviewGateEnforced() bool
}

// EnvToggles reads the switches from the process environment on every call.
// Unset or unparseable values mean enabled: misconfiguration must never
// silently turn the gate off.
type EnvToggles struct{}

func (EnvToggles) PublishGateEnabled() bool { return envBool(EnvPublishGate) }
func (EnvToggles) InterviewGateEnforced() bool { return envBool(EnvInterviewGate) }

func envBool(key string) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

// StaticToggles is a fixed Toggles implementation for tests and for
// deployments that pin the gates via config instead of the environment.
type StaticToggles struct {
	PublishGate   bool
	InterviewGate bool
}

func (t StaticToggles) PublishGateEnabled() bool { return t.PublishGate }
func (t StaticToggles) InterviewGateEnforced() bool { return t.InterviewGate }
