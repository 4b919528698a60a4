package typedef

import (
	"github.com/txn2/catalog-go/pkg/asset"
)

// TrimToRequired derives the minimal update builder for an asset: only the
// type's required fields are copied, plus a fresh placeholder GUID. Sending
// the minimal payload on update avoids overwriting unrelated attributes
// with stale client-side values.
//
// Fails with MissingRequiredFieldError when any required field is null or
// empty on the source asset.
func TrimToRequired(a asset.Asset) (asset.Asset, error) {
	def, err := Lookup(a.TypeName)
	if err != nil {
		return asset.Asset{}, err
	}

	out := newBuilder(a.TypeName)
	var missing []string
	for _, name := range def.Required {
		v, ok := a.Field(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out.SetField(name, v)
	}
	if len(missing) > 0 {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: a.TypeName, Fields: missing}
	}
	return out, nil
}

// Updater returns a minimal update builder for an existing asset identified
// by qualifiedName. Extra required fields beyond qualifiedName and name
// (parent or container identifiers) are supplied through extra, keyed by
// attribute name.
func Updater(typeName, qualifiedName, name string, extra map[string]any) (asset.Asset, error) {
	src := asset.Asset{TypeName: typeName, QualifiedName: qualifiedName, Name: name}
	for k, v := range extra {
		src.SetField(k, v)
	}
	return TrimToRequired(src)
}
