// Package audit keeps an in-process trail of repair runs: a bounded buffer of
// recent records, non-blocking fan-out to subscribers, and an optional
// Postgres sink. The repair engine itself never touches this package; the
// host emits a record after each call.
package audit

import "fmt"

var allowedEvents = map[string]struct{}{
	// repair
	"repair.completed": {},
	"repair.noop":      {},

	// system
	"system.startup":  {},
	"system.shutdown": {},
	"system.error":    {},
}

// Validate returns an error for event names outside the known set.
func Validate(event string) error {
	if _, ok := allowedEvents[event]; !ok {
		return fmt.Errorf("unknown audit event: %s", event)
	}
	return nil
}

// Record is one audited repair run.
type Record struct {
	Timestamp  string   `json:"ts"`
	Event      string   `json:"event"`
	SkeletonID string   `json:"skeleton_id,omitempty"`
	Components int      `json:"components"`
	FixCount   int      `json:"fix_count"`
	Fixes      []string `json:"fixes,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}
