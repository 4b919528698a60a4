package typedef

import (
	"fmt"
	"strings"

	"github.com/txn2/catalog-go/pkg/asset"
)

// NewDatabase builds a creation builder for a database under a connection.
func NewDatabase(name, connectionQualifiedName string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeDatabase)
	}
	if connectionQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeDatabase, Fields: []string{AttrConnectionQualifiedName}}
	}

	a := newBuilder(TypeDatabase)
	a.Name = name
	a.QualifiedName = connectionQualifiedName + "/" + name
	a.SetAttr(AttrConnectionQualifiedName, connectionQualifiedName)
	a.SetAttr(AttrConnectorName, ConnectorFromQualifiedName(connectionQualifiedName))
	return a, nil
}

// NewSchema builds a creation builder for a schema under a database.
func NewSchema(name, databaseQualifiedName string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeSchema)
	}
	if databaseQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeSchema, Fields: []string{AttrDatabaseQualifiedName}}
	}

	a := newBuilder(TypeSchema)
	a.Name = name
	a.QualifiedName = databaseQualifiedName + "/" + name
	a.SetAttr(AttrDatabaseQualifiedName, databaseQualifiedName)
	a.SetAttr(AttrConnectionQualifiedName, ConnectionQualifiedName(databaseQualifiedName))
	a.SetAttr(AttrConnectorName, ConnectorFromQualifiedName(databaseQualifiedName))
	return a, nil
}

// newSchemaChild covers the three table-like types, which share their
// creation shape.
func newSchemaChild(typeName, name, schemaQualifiedName string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(typeName)
	}
	if schemaQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: typeName, Fields: []string{AttrSchemaQualifiedName}}
	}

	a := newBuilder(typeName)
	a.Name = name
	a.QualifiedName = schemaQualifiedName + "/" + name
	a.SetAttr(AttrSchemaQualifiedName, schemaQualifiedName)
	a.SetAttr(AttrDatabaseQualifiedName, parentQualifiedName(schemaQualifiedName))
	a.SetAttr(AttrConnectionQualifiedName, ConnectionQualifiedName(schemaQualifiedName))
	a.SetAttr(AttrConnectorName, ConnectorFromQualifiedName(schemaQualifiedName))
	return a, nil
}

// NewTable builds a creation builder for a table under a schema.
func NewTable(name, schemaQualifiedName string) (asset.Asset, error) {
	return newSchemaChild(TypeTable, name, schemaQualifiedName)
}

// NewView builds a creation builder for a view under a schema.
func NewView(name, schemaQualifiedName string) (asset.Asset, error) {
	return newSchemaChild(TypeView, name, schemaQualifiedName)
}

// NewMaterializedView builds a creation builder for a materialized view
// under a schema.
func NewMaterializedView(name, schemaQualifiedName string) (asset.Asset, error) {
	return newSchemaChild(TypeMaterializedView, name, schemaQualifiedName)
}

// NewTablePartition builds a creation builder for a partition of a table.
func NewTablePartition(name, tableQualifiedName string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeTablePartition)
	}
	if tableQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeTablePartition, Fields: []string{AttrTableQualifiedName}}
	}

	a := newBuilder(TypeTablePartition)
	a.Name = name
	a.QualifiedName = tableQualifiedName + "/" + name
	a.SetAttr(AttrTableQualifiedName, tableQualifiedName)
	a.SetAttr(AttrSchemaQualifiedName, parentQualifiedName(tableQualifiedName))
	a.SetAttr(AttrConnectionQualifiedName, ConnectionQualifiedName(tableQualifiedName))
	ref, err := asset.RefByQualifiedName(TypeTable, tableQualifiedName)
	if err != nil {
		return asset.Asset{}, err
	}
	a.SetAttr(AttrParentTable, ref)
	return a, nil
}

// NewColumn builds a creation builder for a column of a table, view, or
// materialized view. The parent asset must resolve to a qualifiedName; the
// column references it by qualifiedName, never as a full object. order is
// the 1-based position of the column within its parent.
func NewColumn(name string, parent asset.Asset, order int) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeColumn)
	}
	parentQN := parent.ResolveQualifiedName()
	if parentQN == "" {
		return asset.Asset{}, &asset.MissingRelationshipParamError{TypeName: parent.TypeName, Params: "guid, qualifiedName"}
	}

	a := newBuilder(TypeColumn)
	a.Name = name
	a.QualifiedName = parentQN + "/" + name
	a.SetAttr(AttrOrder, order)
	a.SetAttr(AttrConnectionQualifiedName, ConnectionQualifiedName(parentQN))
	a.SetAttr(AttrConnectorName, ConnectorFromQualifiedName(parentQN))

	ref, err := asset.RefByQualifiedName(parent.TypeName, parentQN)
	if err != nil {
		return asset.Asset{}, err
	}
	switch parent.TypeName {
	case TypeTable, TypeTablePartition:
		a.SetAttr(AttrTableQualifiedName, parentQN)
		a.SetAttr(AttrSchemaQualifiedName, parentQualifiedName(parentQN))
		a.SetAttr(AttrParentTable, ref)
	case TypeView, TypeMaterializedView:
		a.SetAttr(AttrViewQualifiedName, parentQN)
		// Columns always carry tableQualifiedName for the trim contract,
		// pointing at the view for view-parented columns.
		a.SetAttr(AttrTableQualifiedName, parentQN)
		a.SetAttr(AttrSchemaQualifiedName, parentQualifiedName(parentQN))
		a.SetAttr(AttrParentView, ref)
	default:
		return asset.Asset{}, fmt.Errorf("column parent must be a table or view, got %q", parent.TypeName)
	}
	return a, nil
}

// NewQuery builds a creation builder for a saved query inside a collection.
func NewQuery(name, collectionQualifiedName, rawQuery string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeQuery)
	}
	if collectionQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeQuery, Fields: []string{AttrCollectionQualifiedName}}
	}

	a := newBuilder(TypeQuery)
	a.Name = name
	a.QualifiedName = collectionQualifiedName + "/" + name
	a.SetAttr(AttrCollectionQualifiedName, collectionQualifiedName)
	if rawQuery != "" {
		a.SetAttr(AttrRawQuery, rawQuery)
	}
	return a, nil
}

// parentQualifiedName strips the last path segment.
func parentQualifiedName(qualifiedName string) string {
	i := strings.LastIndex(qualifiedName, "/")
	if i < 0 {
		return ""
	}
	return qualifiedName[:i]
}

// lastSegment returns the final path segment of a qualifiedName, or the
// whole string when it has no slashes.
func lastSegment(qualifiedName string) string {
	i := strings.LastIndex(qualifiedName, "/")
	return qualifiedName[i+1:]
}
