package asset

import "sort"

// Patch tracks attribute-level changes for an update request: a map of
// fields to set and a set of field names to clear. A cleared field is
// serialized as an explicit null, which the catalog interprets as "remove
// this attribute"; an unset field is omitted from the request entirely and
// left untouched server-side.
//
// A field is either set or cleared, never both: setting a field drops any
// pending clear for it and vice versa.
type Patch struct {
	set   map[string]any
	clear map[string]struct{}
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{
		set:   make(map[string]any),
		clear: make(map[string]struct{}),
	}
}

// Set records a value to write for the field.
func (p *Patch) Set(name string, value any) {
	delete(p.clear, name)
	p.set[name] = value
}

// Clear marks the field to be serialized as explicit null. Clearing is
// idempotent.
func (p *Patch) Clear(name string) {
	delete(p.set, name)
	p.clear[name] = struct{}{}
}

// Value returns the pending value for a set field.
func (p *Patch) Value(name string) (any, bool) {
	v, ok := p.set[name]
	return v, ok
}

// Cleared reports whether the field is marked for explicit null.
func (p *Patch) Cleared(name string) bool {
	_, ok := p.clear[name]
	return ok
}

// SetFields returns the fields to write. The returned map is shared with
// the patch; callers must not mutate it.
func (p *Patch) SetFields() map[string]any {
	return p.set
}

// ClearList returns the cleared field names in sorted order.
func (p *Patch) ClearList() []string {
	if len(p.clear) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.clear))
	for name := range p.clear {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsEmpty reports whether the patch carries no changes.
func (p *Patch) IsEmpty() bool {
	return len(p.set) == 0 && len(p.clear) == 0
}
