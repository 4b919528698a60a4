package transport

import (
	"context"
	"iter"

	"github.com/txn2/catalog-go/pkg/asset"
)

// Predicate is one field-equality condition.
type Predicate struct {
	Field string
	Value any
}

// Query selects assets by type equality and field equality. Pagination
// mechanics are the implementation's concern; callers see one lazy,
// restartable, finite sequence.
type Query struct {
	// TypeNames restricts results to these types. Empty means all types.
	TypeNames []string

	// Where conditions are ANDed.
	Where []Predicate

	// ActiveOnly excludes soft-deleted assets.
	ActiveOnly bool

	// Limit caps the number of results. Zero means no cap.
	Limit int
}

// WithType returns the query with a type restriction added.
func (q Query) WithType(typeName string) Query {
	q.TypeNames = append(q.TypeNames, typeName)
	return q
}

// WhereEq returns the query with a field-equality condition added.
func (q Query) WhereEq(field string, value any) Query {
	q.Where = append(q.Where, Predicate{Field: field, Value: value})
	return q
}

// Searcher streams assets matching a query. The sequence may be iterated
// multiple times; each iteration restarts the search.
type Searcher interface {
	Search(ctx context.Context, q Query) iter.Seq2[asset.Asset, error]
}
