package catalog

import (
	"context"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
	"github.com/txn2/catalog-go/pkg/transport"
)

// CreateConnection builds and saves a Connection asset. Every admin role,
// group, and user named on it is resolved through the identity caches
// before anything is sent; an unknown principal fails the whole call so a
// connection can never be created without reachable admins.
func (c *Catalog) CreateConnection(ctx context.Context, name string, connector typedef.ConnectorType, adminRoles, adminGroups, adminUsers []string) (*asset.Asset, error) {
	conn, err := typedef.NewConnection(name, connector, adminRoles, adminGroups, adminUsers)
	if err != nil {
		return nil, err
	}

	if err := c.validatePrincipals(ctx, c.caches.Roles, "role", conn.AdminRoles); err != nil {
		return nil, err
	}
	if err := c.validatePrincipals(ctx, c.caches.Groups, "group", conn.AdminGroups); err != nil {
		return nil, err
	}
	if err := c.validatePrincipals(ctx, c.caches.Users, "user", conn.AdminUsers); err != nil {
		return nil, err
	}

	return c.Save(ctx, asset.NewUpdate(conn))
}

func (c *Catalog) validatePrincipals(ctx context.Context, cache transport.IdentityCache, kind string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if cache == nil {
		return fmt.Errorf("create connection: no %s cache configured to validate %v", kind, names)
	}
	for _, name := range names {
		if _, err := cache.IDForName(ctx, name); err != nil {
			return fmt.Errorf("create connection: admin %s %q: %w", kind, name, err)
		}
	}
	return nil
}
