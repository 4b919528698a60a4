package catalog

import (
	"context"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/transport"
)

// GetByGUID retrieves an asset by its server-assigned GUID.
func (c *Catalog) GetByGUID(ctx context.Context, guid string) (asset.Asset, error) {
	if guid == "" {
		return asset.Asset{}, fmt.Errorf("get: %w", asset.ErrMissingIdentity)
	}
	return c.client.GetByGUID(ctx, guid)
}

// GetByQualifiedName retrieves an asset by type and qualifiedName.
func (c *Catalog) GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (asset.Asset, error) {
	if typeName == "" || qualifiedName == "" {
		return asset.Asset{}, fmt.Errorf("get %s: %w", typeName, asset.ErrMissingIdentity)
	}
	return c.client.GetByQualifiedName(ctx, typeName, qualifiedName)
}

// GetAs retrieves an asset by GUID and verifies it has the expected type.
// An asset of a different type reports not-found with WrongType set rather
// than handing back an asset the caller cannot use.
func (c *Catalog) GetAs(ctx context.Context, guid, typeName string) (asset.Asset, error) {
	a, err := c.GetByGUID(ctx, guid)
	if err != nil {
		return asset.Asset{}, err
	}
	if a.TypeName != typeName {
		return asset.Asset{}, &transport.NotFoundError{
			TypeName:  typeName,
			ID:        guid,
			WrongType: a.TypeName,
		}
	}
	return a, nil
}
