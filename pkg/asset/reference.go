package asset

import "fmt"

// Reference is a minimal pointer to an asset, used to express a relationship
// without embedding the full object. It carries identity (GUID or a
// qualifiedName inside a unique-attributes envelope), the target type, and
// the semantic governing how the server merges the relationship item.
// A reference never carries descriptive attributes.
type Reference struct {
	TypeName         string           `json:"typeName"`
	GUID             string           `json:"guid,omitempty"`
	UniqueAttributes UniqueAttributes `json:"uniqueAttributes,omitempty"`
	Semantic         Semantic         `json:"semantic,omitempty"`
}

// RefByGUID builds a GUID-based reference with the default REPLACE semantic.
func RefByGUID(typeName, guid string) (Reference, error) {
	if guid == "" {
		return Reference{}, fmt.Errorf("reference to %s: %w", typeName, ErrMissingIdentity)
	}
	return Reference{TypeName: typeName, GUID: guid, Semantic: SemanticReplace}, nil
}

// RefByQualifiedName builds a qualifiedName-based reference with the default
// REPLACE semantic. The qualifiedName travels in the unique-attributes
// envelope on the wire.
func RefByQualifiedName(typeName, qualifiedName string) (Reference, error) {
	if qualifiedName == "" {
		return Reference{}, fmt.Errorf("reference to %s: %w", typeName, ErrMissingIdentity)
	}
	return Reference{
		TypeName:         typeName,
		UniqueAttributes: UniqueAttributes{QualifiedName: qualifiedName},
		Semantic:         SemanticReplace,
	}, nil
}

// WithSemantic returns a copy of the reference with the given semantic.
func (r Reference) WithSemantic(s Semantic) Reference {
	r.Semantic = s.orDefault()
	return r
}

// QualifiedName returns the reference's qualifiedName, if it has one.
func (r Reference) QualifiedName() string {
	return r.UniqueAttributes.QualifiedName
}

// IsValid reports whether the reference carries a usable identity.
func (r Reference) IsValid() bool {
	return r.GUID != "" || r.UniqueAttributes.QualifiedName != ""
}

// Reference derives a minimal reference to the asset, trying GUID first,
// then qualifiedName, then the qualifiedName nested in the asset's
// unique-attributes envelope. Fails with MissingRelationshipParamError when
// none resolve.
func (a Asset) Reference() (Reference, error) {
	if a.GUID != "" {
		return RefByGUID(a.TypeName, a.GUID)
	}
	if qn := a.ResolveQualifiedName(); qn != "" {
		return RefByQualifiedName(a.TypeName, qn)
	}
	return Reference{}, &MissingRelationshipParamError{TypeName: a.TypeName, Params: "guid, qualifiedName"}
}
