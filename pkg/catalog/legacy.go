package catalog

import (
	"context"

	"github.com/txn2/catalog-go/pkg/asset"
)

// ReplaceTagsPreserving reproduces the historical two-call tag helper: it
// fetches the asset's full tag set, keeps every directly-attached tag whose
// type is not among the incoming ones, and saves the union with a full
// replace. Propagated tags are dropped from the union since the catalog
// re-derives them.
//
// Deprecated: use AppendTags and RemoveTag, which express intent per tag
// without the read-modify-write race. This exists for callers migrating
// from the two-call protocol.
func (c *Catalog) ReplaceTagsPreserving(ctx context.Context, typeName, qualifiedName string, tags ...asset.Tag) (*asset.Asset, error) {
	current, err := c.GetByQualifiedName(ctx, typeName, qualifiedName)
	if err != nil {
		return nil, err
	}

	override := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		override[t.TypeName] = struct{}{}
	}

	union := make([]asset.Tag, 0, len(current.Tags)+len(tags))
	for _, t := range current.Tags {
		if t.Propagated {
			continue
		}
		if _, replaced := override[t.TypeName]; replaced {
			continue
		}
		union = append(union, t)
	}
	union = append(union, tags...)

	u, err := c.updater(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.Asset.Tags = union
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.SaveReplacingTags(ctx, u)
}

// ReplaceTermsPreserving reproduces the historical two-call term helper:
// the asset's existing term links not present in the incoming set survive,
// and the union replaces the remote set.
//
// Deprecated: use AppendTerms, RemoveTerms, or ReplaceTerms.
func (c *Catalog) ReplaceTermsPreserving(ctx context.Context, typeName, qualifiedName string, terms ...asset.Reference) (*asset.Asset, error) {
	current, err := c.GetByQualifiedName(ctx, typeName, qualifiedName)
	if err != nil {
		return nil, err
	}

	incoming := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		incoming[t.GUID] = struct{}{}
	}

	union := make([]asset.Reference, 0, len(current.Terms)+len(terms))
	for _, t := range current.Terms {
		if _, replaced := incoming[t.GUID]; replaced {
			continue
		}
		union = append(union, t)
	}
	union = append(union, terms...)

	return c.ReplaceTerms(ctx, typeName, qualifiedName, union)
}
