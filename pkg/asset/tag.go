package asset

import (
	"sort"
)

// Tag is one tag instance attached to an asset, with its propagation flags
// and the per-operation semantic governing how the server applies it.
type Tag struct {
	TypeName string `json:"typeName"`

	Propagate                    bool `json:"propagate"`
	RemovePropagationsOnDelete   bool `json:"removePropagationsOnEntityDelete"`
	RestrictLineagePropagation   bool `json:"restrictPropagationThroughLineage"`
	RestrictHierarchyPropagation bool `json:"restrictPropagationThroughHierarchy"`

	// Propagated is set by the server when the tag arrived on this asset via
	// propagation from another asset rather than direct attachment.
	Propagated bool `json:"propagated,omitempty"`

	Semantic Semantic `json:"semantic,omitempty"`
}

// NewTag returns a directly attached tag with the given propagation flags
// and the default REPLACE semantic.
func NewTag(typeName string, propagate, removeOnDelete, restrictLineage, restrictHierarchy bool) Tag {
	return Tag{
		TypeName:                     typeName,
		Propagate:                    propagate,
		RemovePropagationsOnDelete:   removeOnDelete,
		RestrictLineagePropagation:   restrictLineage,
		RestrictHierarchyPropagation: restrictHierarchy,
		Semantic:                     SemanticReplace,
	}
}

// NormalizeTags sorts tags by type name and collapses duplicates, keeping
// the last occurrence of each name. The stable order makes serialization
// deterministic.
func NormalizeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	byName := make(map[string]Tag, len(tags))
	for _, t := range tags {
		byName[t.TypeName] = t
	}
	out := make([]Tag, 0, len(byName))
	for _, t := range byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName < out[j].TypeName })
	return out
}

// upsertTag replaces the tag with the same type name or appends, keeping
// the list normalized.
func upsertTag(tags []Tag, t Tag) []Tag {
	return NormalizeTags(append(tags, t))
}
