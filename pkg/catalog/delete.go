package catalog

import (
	"context"
	"fmt"

	"github.com/txn2/catalog-go/pkg/transport"
)

// SoftDelete archives the asset. It remains retrievable with a DELETED
// status and can be brought back with Restore.
func (c *Catalog) SoftDelete(ctx context.Context, guid string) (*transport.DeletionResult, error) {
	return c.delete(ctx, guid, transport.DeleteSoft)
}

// Purge permanently removes the asset. There is no undo.
func (c *Catalog) Purge(ctx context.Context, guid string) (*transport.DeletionResult, error) {
	return c.delete(ctx, guid, transport.DeletePurge)
}

func (c *Catalog) delete(ctx context.Context, guid string, mode transport.DeleteMode) (*transport.DeletionResult, error) {
	if guid == "" {
		return nil, fmt.Errorf("delete: empty guid")
	}
	result, err := c.client.Delete(ctx, guid, mode)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", guid, err)
	}
	c.logger.Debug("asset deleted", "guid", guid, "mode", string(mode))
	return result, nil
}
