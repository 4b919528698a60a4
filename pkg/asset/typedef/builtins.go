package typedef

import "github.com/txn2/catalog-go/pkg/asset"

// Type name constants for the built-in asset types.
const (
	TypeConnection        = "Connection"
	TypeDatabase          = "Database"
	TypeSchema            = "Schema"
	TypeTable             = "Table"
	TypeView              = "View"
	TypeMaterializedView  = "MaterializedView"
	TypeColumn            = "Column"
	TypeTablePartition    = "TablePartition"
	TypeQuery             = "Query"
	TypeQueryCollection   = "QueryCollection"
	TypeAtlasGlossary     = "AtlasGlossary"
	TypeAtlasGlossaryTerm = "AtlasGlossaryTerm"
	TypeProcess           = "Process"
)

// Attribute name constants shared across the relational types.
const (
	AttrConnectionQualifiedName = "connectionQualifiedName"
	AttrConnectorName           = "connectorName"
	AttrDatabaseQualifiedName   = "databaseQualifiedName"
	AttrSchemaQualifiedName     = "schemaQualifiedName"
	AttrTableQualifiedName      = "tableQualifiedName"
	AttrViewQualifiedName       = "viewQualifiedName"
	AttrCollectionQualifiedName = "collectionQualifiedName"
	AttrGlossaryQualifiedName   = "glossaryQualifiedName"
	AttrOrder                   = "order"
	AttrDataType                = "dataType"
	AttrIsPrimary               = "isPrimary"
	AttrIsNullable              = "isNullable"
	AttrRowCount                = "rowCount"
	AttrColumnCount             = "columnCount"
	AttrSizeBytes               = "sizeBytes"
	AttrSourceUpdatedAt         = "sourceUpdatedAt"
	AttrRawQuery                = "rawQuery"
	AttrDefaultSchemaQN         = "defaultSchemaQualifiedName"
	AttrCategory                = "category"
	AttrHost                    = "host"
	AttrPort                    = "port"
	AttrAnchor                  = "anchor"
	AttrParentTable             = "table"
	AttrParentView              = "view"
	AttrInputs                  = "inputs"
	AttrOutputs                 = "outputs"
	AttrProcessParent           = "parent"
	AttrSQL                     = "sql"
)

// common core attributes present on every type.
var commonAttributes = []Attribute{
	{Name: asset.FieldQualifiedName, Kind: KindString},
	{Name: asset.FieldName, Kind: KindString},
	{Name: asset.FieldDisplayName, Kind: KindString},
	{Name: asset.FieldDescription, Kind: KindString},
	{Name: asset.FieldUserDescription, Kind: KindString},
	{Name: asset.FieldCertificateStatus, Kind: KindString},
	{Name: asset.FieldCertificateStatusMessage, Kind: KindString},
	{Name: asset.FieldAnnouncementType, Kind: KindString},
	{Name: asset.FieldAnnouncementTitle, Kind: KindString},
	{Name: asset.FieldAnnouncementMessage, Kind: KindString},
	{Name: asset.FieldOwnerUsers, Kind: KindStringSet},
	{Name: asset.FieldOwnerGroups, Kind: KindStringSet},
	{Name: asset.FieldAdminUsers, Kind: KindStringSet},
	{Name: asset.FieldAdminGroups, Kind: KindStringSet},
	{Name: asset.FieldAdminRoles, Kind: KindStringSet},
}

func withCommon(attrs ...Attribute) []Attribute {
	out := make([]Attribute, 0, len(commonAttributes)+len(attrs))
	out = append(out, commonAttributes...)
	out = append(out, attrs...)
	return out
}

var builtins = map[string]TypeDef{
	TypeConnection: {
		TypeName: TypeConnection,
		Required: []string{asset.FieldQualifiedName, asset.FieldName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrCategory, Kind: KindString},
			Attribute{Name: AttrHost, Kind: KindString},
			Attribute{Name: AttrPort, Kind: KindInt},
		),
	},
	TypeDatabase: {
		TypeName: TypeDatabase,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrConnectionQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: "schemaCount", Kind: KindInt},
		),
	},
	TypeSchema: {
		TypeName: TypeSchema,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrDatabaseQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrDatabaseQualifiedName, Kind: KindString},
			Attribute{Name: "tableCount", Kind: KindInt},
			Attribute{Name: "viewCount", Kind: KindInt},
		),
	},
	TypeTable: {
		TypeName: TypeTable,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrSchemaQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrDatabaseQualifiedName, Kind: KindString},
			Attribute{Name: AttrSchemaQualifiedName, Kind: KindString},
			Attribute{Name: AttrRowCount, Kind: KindLong},
			Attribute{Name: AttrColumnCount, Kind: KindInt},
			Attribute{Name: AttrSizeBytes, Kind: KindLong},
			Attribute{Name: AttrSourceUpdatedAt, Kind: KindTimestamp},
			Attribute{Name: "columns", Kind: KindRefSet, RelatedTypes: []string{TypeColumn}},
			Attribute{Name: "partitions", Kind: KindRefSet, RelatedTypes: []string{TypeTablePartition}},
		),
	},
	TypeView: {
		TypeName: TypeView,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrSchemaQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrDatabaseQualifiedName, Kind: KindString},
			Attribute{Name: AttrSchemaQualifiedName, Kind: KindString},
			Attribute{Name: AttrColumnCount, Kind: KindInt},
			Attribute{Name: "definition", Kind: KindString},
			Attribute{Name: "columns", Kind: KindRefSet, RelatedTypes: []string{TypeColumn}},
		),
	},
	TypeMaterializedView: {
		TypeName: TypeMaterializedView,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrSchemaQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrDatabaseQualifiedName, Kind: KindString},
			Attribute{Name: AttrSchemaQualifiedName, Kind: KindString},
			Attribute{Name: "refreshMode", Kind: KindString},
			Attribute{Name: "refreshedAt", Kind: KindTimestamp},
			Attribute{Name: "definition", Kind: KindString},
			Attribute{Name: "columns", Kind: KindRefSet, RelatedTypes: []string{TypeColumn}},
		),
	},
	TypeColumn: {
		TypeName: TypeColumn,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrTableQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrDatabaseQualifiedName, Kind: KindString},
			Attribute{Name: AttrSchemaQualifiedName, Kind: KindString},
			Attribute{Name: AttrTableQualifiedName, Kind: KindString},
			Attribute{Name: AttrViewQualifiedName, Kind: KindString},
			Attribute{Name: AttrOrder, Kind: KindInt},
			Attribute{Name: AttrDataType, Kind: KindString},
			Attribute{Name: AttrIsPrimary, Kind: KindBool},
			Attribute{Name: AttrIsNullable, Kind: KindBool},
			Attribute{Name: "maxLength", Kind: KindLong},
			Attribute{Name: "precision", Kind: KindInt},
			Attribute{Name: "histogram", Kind: KindStruct},
			Attribute{Name: AttrParentTable, Kind: KindRefSet, RelatedTypes: []string{TypeTable, TypeTablePartition}},
			Attribute{Name: AttrParentView, Kind: KindRefSet, RelatedTypes: []string{TypeView, TypeMaterializedView}},
		),
	},
	TypeTablePartition: {
		TypeName: TypeTablePartition,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrTableQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrSchemaQualifiedName, Kind: KindString},
			Attribute{Name: AttrTableQualifiedName, Kind: KindString},
			Attribute{Name: "partitionStrategy", Kind: KindString},
			Attribute{Name: AttrRowCount, Kind: KindLong},
			Attribute{Name: AttrParentTable, Kind: KindRefSet, RelatedTypes: []string{TypeTable}},
		),
	},
	TypeQueryCollection: {
		TypeName: TypeQueryCollection,
		Required: []string{asset.FieldQualifiedName, asset.FieldName},
		Attributes: withCommon(
			Attribute{Name: "iconURL", Kind: KindString},
		),
	},
	TypeQuery: {
		TypeName: TypeQuery,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrCollectionQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrCollectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrRawQuery, Kind: KindString},
			Attribute{Name: AttrDefaultSchemaQN, Kind: KindString},
			Attribute{Name: "isVisualQuery", Kind: KindBool},
		),
	},
	TypeAtlasGlossary: {
		TypeName: TypeAtlasGlossary,
		Required: []string{asset.FieldQualifiedName, asset.FieldName},
		Attributes: withCommon(
			Attribute{Name: "language", Kind: KindString},
			Attribute{Name: "terms", Kind: KindRefSet, RelatedTypes: []string{TypeAtlasGlossaryTerm}},
		),
	},
	TypeAtlasGlossaryTerm: {
		TypeName: TypeAtlasGlossaryTerm,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrGlossaryQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrGlossaryQualifiedName, Kind: KindString},
			Attribute{Name: "abbreviation", Kind: KindString},
			Attribute{Name: "examples", Kind: KindStringSet},
			Attribute{Name: AttrAnchor, Kind: KindRefSet, RelatedTypes: []string{TypeAtlasGlossary}},
		),
	},
	TypeProcess: {
		TypeName: TypeProcess,
		Required: []string{asset.FieldQualifiedName, asset.FieldName, AttrConnectionQualifiedName},
		Attributes: withCommon(
			Attribute{Name: AttrConnectionQualifiedName, Kind: KindString},
			Attribute{Name: AttrConnectorName, Kind: KindString},
			Attribute{Name: AttrSQL, Kind: KindString},
			Attribute{Name: AttrInputs, Kind: KindRefSet},
			Attribute{Name: AttrOutputs, Kind: KindRefSet},
			Attribute{Name: AttrProcessParent, Kind: KindRefSet, RelatedTypes: []string{TypeProcess}},
		),
	},
}
