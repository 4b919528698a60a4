package catalog

import (
	"context"
	"fmt"
	"iter"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/transport"
)

// Search streams the assets matching the query. The underlying transport
// must implement transport.Searcher; otherwise the sequence yields a single
// error. Each iteration of the returned sequence reissues the search.
func (c *Catalog) Search(ctx context.Context, q transport.Query) iter.Seq2[asset.Asset, error] {
	searcher, ok := c.client.(transport.Searcher)
	if !ok {
		return func(yield func(asset.Asset, error) bool) {
			yield(asset.Asset{}, fmt.Errorf("search: transport %T does not support search", c.client))
		}
	}
	return searcher.Search(ctx, q)
}

// FindByName is a convenience search for active assets of one type with an
// exact name match.
func (c *Catalog) FindByName(ctx context.Context, typeName, name string) ([]asset.Asset, error) {
	q := transport.Query{ActiveOnly: true}.WithType(typeName).WhereEq(asset.FieldName, name)
	var out []asset.Asset
	for a, err := range c.Search(ctx, q) {
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
