// Package repair rewrites an untrusted candidate dashboard spec so it
// satisfies the structural, stylistic, and accessibility invariants the
// scoring stage expects. It never calls a model, never persists, and never
// fails: every rule either repairs or degrades to a no-op.
package repair

import (
	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/ruleset"
	"github.com/agencykit/specforge/internal/skeleton"
	"github.com/agencykit/specforge/internal/tokens"
)

// SkeletonProvider resolves layout preset IDs. Resolution failure is treated
// as "limit not applicable", never as an engine failure.
type SkeletonProvider interface {
	Get(id string) *skeleton.Descriptor
	IsValidID(id string) bool
}

// Engine runs the ordered repair rules over a spec clone.
type Engine struct {
	skeletons SkeletonProvider
	tokens    *tokens.DesignTokens
	rules     *ruleset.Ruleset
}

// Option configures an Engine.
type Option func(*Engine)

// WithSkeletons sets the skeleton catalog used by the KPI limit rule.
func WithSkeletons(p SkeletonProvider) Option {
	return func(e *Engine) { e.skeletons = p }
}

// WithTokens sets the design tokens used by the color validation rule.
func WithTokens(t *tokens.DesignTokens) Option {
	return func(e *Engine) { e.tokens = t }
}

// WithRuleset overrides the built-in rule tables.
func WithRuleset(r *ruleset.Ruleset) Option {
	return func(e *Engine) { e.rules = r }
}

// New creates an engine. Without options it repairs against the built-in
// tables, with no skeleton catalog and no token palette.
func New(opts ...Option) *Engine {
	e := &Engine{rules: ruleset.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one repair pass.
type Result struct {
	Spec     *dashspec.Spec `json:"spec"`
	Fixes    []string       `json:"fixes"`
	FixCount int            `json:"fixCount"`
}

// Repair deep-clones the input and threads the clone through every rule in
// fixed order. The caller's spec is never mutated. A spec with no components
// list is returned unchanged with a zero fix count; it is not an error.
func (e *Engine) Repair(raw *dashspec.Spec) *Result {
	s := raw.Clone()
	if s == nil {
		s = &dashspec.Spec{}
	}

	log := NewFixLog()
	if s.Components == nil {
		return &Result{Spec: s, Fixes: log.Entries(), FixCount: 0}
	}

	// Rule numbering is part of the fix-log contract; 4 was retired and the
	// gap stays.
	e.applyKPILimit(s, log)
	e.applyGridBounds(s, log)
	e.applyOverlapResolution(s, log)
	e.applyRequiredProps(s, log)
	e.applyColorValidation(s, log)
	e.applyMinSizes(s, log)
	e.applyComponentIDs(s, log)
	e.applySingleDominant(s, log)
	e.applySpacingSnap(s, log)
	e.applyAccessibilityFloor(s, log)
	e.applyChartDiversity(s, log)

	return &Result{Spec: s, Fixes: log.Entries(), FixCount: log.Len()}
}
