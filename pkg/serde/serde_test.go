package serde

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
)

func attributesOf(t *testing.T, data []byte) map[string]json.RawMessage {
	t.Helper()
	var env struct {
		Attributes map[string]json.RawMessage `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	return env.Attributes
}

func TestEncode_ClearedFieldsAreExplicitNull(t *testing.T) {
	min, err := typedef.Updater(typedef.TypeTable, "conn/db/sch/orders", "orders",
		map[string]any{typedef.AttrSchemaQualifiedName: "conn/db/sch"})
	require.NoError(t, err)

	u := asset.NewUpdate(min)
	u.RemoveCertificate()
	u.SetDescription("orders fact table")

	data, err := Encode(u)
	require.NoError(t, err)

	attrs := attributesOf(t, data)
	assert.Equal(t, "null", string(attrs[asset.FieldCertificateStatus]),
		"cleared field must be serialized as explicit null")
	assert.Equal(t, "null", string(attrs[asset.FieldCertificateStatusMessage]))
	assert.JSONEq(t, `"orders fact table"`, string(attrs[asset.FieldDescription]))

	// Unset fields are omitted entirely, not nulled.
	_, present := attrs[asset.FieldAnnouncementTitle]
	assert.False(t, present, "unset fields must be omitted from the request")
}

func TestEncode_ReferencesAreIdentityOnly(t *testing.T) {
	table, err := typedef.NewTable("orders", "conn/db/sch")
	require.NoError(t, err)
	col, err := typedef.NewColumn("amount", table, 3)
	require.NoError(t, err)

	data, err := EncodeAsset(col, nil)
	require.NoError(t, err)

	var env struct {
		RelationshipAttributes map[string]struct {
			TypeName         string                 `json:"typeName"`
			GUID             string                 `json:"guid"`
			UniqueAttributes asset.UniqueAttributes `json:"uniqueAttributes"`
			Name             string                 `json:"name"`
			Description      string                 `json:"description"`
		} `json:"relationshipAttributes"`
	}
	require.NoError(t, json.Unmarshal(data, &env))

	parent, ok := env.RelationshipAttributes[typedef.AttrParentTable]
	require.True(t, ok, "column must carry its parent relationship")
	assert.Equal(t, typedef.TypeTable, parent.TypeName)
	assert.Equal(t, "conn/db/sch/orders", parent.UniqueAttributes.QualifiedName)
	assert.Empty(t, parent.Name, "a reference must not carry descriptive attributes")
	assert.Empty(t, parent.Description)
}

func TestEncode_TagsCarrySemantics(t *testing.T) {
	min, err := typedef.Updater(typedef.TypeConnection, "default/snowflake/1", "prod", nil)
	require.NoError(t, err)

	u := asset.NewUpdate(min)
	u.AppendTag(asset.NewTag("PII", true, false, false, false))
	u.RemoveTag("Deprecated")

	data, err := Encode(u)
	require.NoError(t, err)

	var env struct {
		Classifications []asset.Tag `json:"classifications"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	require.Len(t, env.Classifications, 2)

	bySemantic := map[asset.Semantic]string{}
	for _, tag := range env.Classifications {
		bySemantic[tag.Semantic] = tag.TypeName
	}
	assert.Equal(t, "PII", bySemantic[asset.SemanticAppend])
	assert.Equal(t, "Deprecated", bySemantic[asset.SemanticRemove])
}

func TestDecode_RoundTrip(t *testing.T) {
	table, err := typedef.NewTable("orders", "default/snowflake/1/sales/public")
	require.NoError(t, err)
	table.Description = "orders fact table"
	table.OwnerUsers = []string{"ada", "zoe"}
	table.SetAttr(typedef.AttrRowCount, int64(120000))
	table.SetAttr(typedef.AttrSourceUpdatedAt, int64(1756684800000))
	table.CustomMetadata = map[string]map[string]any{
		"Data Quality": {"score": 0.97},
	}

	data, err := EncodeAsset(table, nil)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, typedef.TypeTable, got.TypeName)
	assert.Equal(t, table.QualifiedName, got.QualifiedName)
	assert.Equal(t, "orders fact table", got.Description)
	assert.Equal(t, []string{"ada", "zoe"}, got.OwnerUsers)

	rowCount, _ := got.Attr(typedef.AttrRowCount)
	assert.Equal(t, int64(120000), rowCount, "long attributes decode as int64")
	updatedAt, _ := got.Attr(typedef.AttrSourceUpdatedAt)
	assert.Equal(t, int64(1756684800000), updatedAt, "timestamps stay epoch millis")

	require.Contains(t, got.CustomMetadata, "Data Quality")
	assert.InDelta(t, 0.97, got.CustomMetadata["Data Quality"]["score"], 1e-9)
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"typeName":"Widget","attributes":{"qualifiedName":"x"}}`))
	var unknown *typedef.UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Widget", unknown.TypeName)
}

func TestDecode_UnknownAttributeRetained(t *testing.T) {
	payload := `{
		"typeName": "Table",
		"guid": "abc",
		"attributes": {
			"qualifiedName": "conn/db/sch/orders",
			"name": "orders",
			"futureAttribute": {"nested": true}
		}
	}`
	got, err := Decode([]byte(payload))
	require.NoError(t, err)

	v, ok := got.Attr("futureAttribute")
	require.True(t, ok, "undeclared attributes must survive decoding")
	assert.Equal(t, map[string]any{"nested": true}, v)
}
