package catalog

import (
	"context"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/transport"
)

// Save upserts the asset carried by the update. Tags on the update apply
// with their per-item semantics and custom metadata is ignored. The
// returned asset is the created or updated server-side copy, or nil when
// the server reported no change for it.
func (c *Catalog) Save(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	return c.save(ctx, transport.SaveRequest{Update: u})
}

// SaveReplacingTags upserts the asset, replacing the remote tag set
// wholesale with the tags on the update.
func (c *Catalog) SaveReplacingTags(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	return c.save(ctx, transport.SaveRequest{Update: u, ReplaceTags: true})
}

// SaveMergingCM upserts the asset, merging its custom metadata attribute by
// attribute into the remote sets.
func (c *Catalog) SaveMergingCM(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	return c.save(ctx, transport.SaveRequest{Update: u, CustomMetadata: transport.CMMerge})
}

// SaveReplacingCM upserts the asset, replacing all remote custom metadata
// with the sets on the update. Sets absent from the update are removed.
func (c *Catalog) SaveReplacingCM(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	return c.save(ctx, transport.SaveRequest{Update: u, CustomMetadata: transport.CMReplaceAll})
}

// UpdateMergingCM behaves like SaveMergingCM but refuses to create: when no
// asset exists under the update's identity it returns *transport.NotFoundError
// instead of silently creating one.
func (c *Catalog) UpdateMergingCM(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	if err := c.requireExists(ctx, u); err != nil {
		return nil, err
	}
	return c.SaveMergingCM(ctx, u)
}

// UpdateReplacingCM behaves like SaveReplacingCM but refuses to create.
func (c *Catalog) UpdateReplacingCM(ctx context.Context, u *asset.Update) (*asset.Asset, error) {
	if err := c.requireExists(ctx, u); err != nil {
		return nil, err
	}
	return c.SaveReplacingCM(ctx, u)
}

func (c *Catalog) save(ctx context.Context, req transport.SaveRequest) (*asset.Asset, error) {
	if req.Update == nil {
		return nil, fmt.Errorf("save: nil update")
	}
	a := req.Update.Asset
	qn := a.ResolveQualifiedName()

	result, err := c.client.Save(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("save %s %s: %w", a.TypeName, qn, err)
	}

	c.logger.Debug("asset saved",
		"typeName", a.TypeName,
		"qualifiedName", qn,
		"created", len(result.CreatedAssets),
		"updated", len(result.UpdatedAssets))

	return result.AssetByQualifiedName(a.TypeName, qn), nil
}

func (c *Catalog) requireExists(ctx context.Context, u *asset.Update) error {
	if u == nil {
		return fmt.Errorf("update: nil update")
	}
	a := u.Asset
	if a.GUID != "" && !asset.IsPlaceholderGUID(a.GUID) {
		_, err := c.client.GetByGUID(ctx, a.GUID)
		return err
	}
	qn := a.ResolveQualifiedName()
	if qn == "" {
		return fmt.Errorf("update %s: %w", a.TypeName, asset.ErrMissingIdentity)
	}
	_, err := c.client.GetByQualifiedName(ctx, a.TypeName, qn)
	return err
}
