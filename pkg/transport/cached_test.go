package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
)

func newCachedFixture(t *testing.T, ttl time.Duration) (*Cached, *Memory, asset.Asset) {
	t.Helper()
	m := NewMemory()
	tbl, err := typedef.NewTable("orders", "default/snowflake/1/sales/public")
	require.NoError(t, err)
	guids := m.Seed(tbl)
	tbl.GUID = guids[0]
	return NewCached(m, CacheConfig{TTL: ttl}), m, tbl
}

func TestCached_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	c, m, tbl := newCachedFixture(t, time.Minute)

	first, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)

	// A change behind the cache's back is invisible until the TTL lapses.
	u := asset.NewUpdate(tbl)
	u.SetDescription("changed directly")
	_, err = m.Save(ctx, SaveRequest{Update: u})
	require.NoError(t, err)

	second, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)
	assert.Equal(t, first.Description, second.Description)

	// A fetch by qualifiedName hits the same cached entry.
	byQN, err := c.GetByQualifiedName(ctx, tbl.TypeName, tbl.QualifiedName)
	require.NoError(t, err)
	assert.Equal(t, first.Description, byQN.Description)
}

func TestCached_Expires(t *testing.T) {
	ctx := context.Background()
	c, m, tbl := newCachedFixture(t, 50*time.Millisecond)

	_, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)

	u := asset.NewUpdate(tbl)
	u.SetDescription("fresh")
	_, err = m.Save(ctx, SaveRequest{Update: u})
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	got, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Description)
}

func TestCached_SaveEvicts(t *testing.T) {
	ctx := context.Background()
	c, _, tbl := newCachedFixture(t, time.Minute)

	_, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)

	u := asset.NewUpdate(tbl)
	u.SetDescription("written through cache")
	_, err = c.Save(ctx, SaveRequest{Update: u})
	require.NoError(t, err)

	got, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)
	assert.Equal(t, "written through cache", got.Description, "read after write sees the write")
}

func TestCached_DeleteEvicts(t *testing.T) {
	ctx := context.Background()
	c, _, tbl := newCachedFixture(t, time.Minute)

	_, err := c.GetByQualifiedName(ctx, tbl.TypeName, tbl.QualifiedName)
	require.NoError(t, err)

	_, err = c.Delete(ctx, tbl.GUID, DeleteSoft)
	require.NoError(t, err)

	got, err := c.GetByQualifiedName(ctx, tbl.TypeName, tbl.QualifiedName)
	require.NoError(t, err)
	assert.Equal(t, asset.StatusDeleted, got.Status)
}

func TestCached_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, m, tbl := newCachedFixture(t, time.Minute)

	_, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)

	u := asset.NewUpdate(tbl)
	u.SetDescription("fresh")
	_, err = m.Save(ctx, SaveRequest{Update: u})
	require.NoError(t, err)

	c.Invalidate()
	got, err := c.GetByGUID(ctx, tbl.GUID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Description)
}
