// Package typedef holds the static per-type schema registry: for every
// supported asset type, its attribute declarations, the required-field set
// used by the trim contract, and the creator/updater factories that produce
// minimal builder assets.
package typedef

import (
	"fmt"
	"sort"

	"github.com/txn2/catalog-go/pkg/asset"
)

// Kind is the semantic type of an attribute.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindLong
	KindDouble
	// KindTimestamp is an epoch-milliseconds long. Timestamps never use
	// calendar types so ordering comparisons stay trivial on the wire.
	KindTimestamp
	KindStringSet
	// KindRefSet is a set of references to related assets.
	KindRefSet
	KindMap
	KindStruct
)

// Attribute declares one named, typed attribute of an asset type.
type Attribute struct {
	Name string
	Kind Kind

	// RelatedTypes lists the permitted target types for KindRefSet.
	RelatedTypes []string
}

// TypeDef is the closed schema of one concrete asset type.
type TypeDef struct {
	TypeName string

	// Required lists the attributes that must be present on a minimal
	// update builder. Always includes qualifiedName and name.
	Required []string

	Attributes []Attribute
}

// Attribute looks up an attribute declaration by name.
func (d TypeDef) Attribute(name string) (Attribute, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// UnknownTypeError reports a typeName with no registered schema.
type UnknownTypeError struct {
	TypeName string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown asset type %q", e.TypeName)
}

// Lookup returns the schema for a type name.
func Lookup(typeName string) (TypeDef, error) {
	def, ok := builtins[typeName]
	if !ok {
		return TypeDef{}, &UnknownTypeError{TypeName: typeName}
	}
	return def, nil
}

// TypeNames returns all registered type names in sorted order.
func TypeNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newBuilder returns a fresh minimal asset of the given type with a
// placeholder GUID assigned.
func newBuilder(typeName string) asset.Asset {
	return asset.Asset{
		TypeName: typeName,
		GUID:     asset.NewPlaceholderGUID(),
	}
}
