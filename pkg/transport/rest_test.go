package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
)

func TestREST_GetByGUID(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/meta/entity/guid/abc-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entity": {
			"typeName": "Table",
			"guid": "abc-123",
			"status": "ACTIVE",
			"attributes": {
				"qualifiedName": "default/snowflake/1/sales/public/orders",
				"name": "orders"
			}
		}}`))
	}))
	defer srv.Close()

	r, err := NewREST(srv.URL, "secret-token")
	require.NoError(t, err)

	a, err := r.GetByGUID(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, typedef.TypeTable, a.TypeName)
	assert.Equal(t, "orders", a.Name)
	assert.Equal(t, asset.StatusActive, a.Status)
}

func TestREST_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r, err := NewREST(srv.URL, "")
	require.NoError(t, err)

	_, err = r.GetByGUID(context.Background(), "nope")
	assert.True(t, IsNotFound(err))

	_, err = r.GetByQualifiedName(context.Background(), typedef.TypeTable, "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, typedef.TypeTable, nf.TypeName)
}

func TestREST_SaveFlags(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/meta/entity/bulk", r.URL.Path)
		gotQuery = r.URL.Query()

		var payload struct {
			Entities []json.RawMessage `json:"entities"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Entities, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"mutatedEntities": {"CREATE": [{
				"typeName": "Table",
				"guid": "srv-1",
				"attributes": {"qualifiedName": "default/snowflake/1/sales/public/orders"}
			}]},
			"guidAssignments": {"-100": "srv-1"}
		}`))
	}))
	defer srv.Close()

	r, err := NewREST(srv.URL, "")
	require.NoError(t, err)

	tbl, err := typedef.NewTable("orders", "default/snowflake/1/sales/public")
	require.NoError(t, err)
	result, err := r.Save(context.Background(), SaveRequest{
		Update:         asset.NewUpdate(tbl),
		ReplaceTags:    true,
		CustomMetadata: CMMerge,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"true"}, gotQuery["replaceClassifications"])
	assert.Equal(t, []string{"true"}, gotQuery["updateBusinessAttributes"])
	require.Len(t, result.CreatedAssets, 1)
	assert.Equal(t, "srv-1", result.CreatedAssets[0].GUID)
	assert.Equal(t, "srv-1", result.GUIDAssignments["-100"])
}

func TestREST_DeleteMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "PURGE", r.URL.Query().Get("deleteType"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mutatedEntities": {"UPDATE": [{
			"typeName": "Table",
			"guid": "abc-123",
			"status": "DELETED",
			"attributes": {"qualifiedName": "default/snowflake/1/sales/public/orders"}
		}]}}`))
	}))
	defer srv.Close()

	r, err := NewREST(srv.URL, "")
	require.NoError(t, err)

	result, err := r.Delete(context.Background(), "abc-123", DeletePurge)
	require.NoError(t, err)
	require.Len(t, result.DeletedAssets, 1)
	assert.Equal(t, asset.StatusDeleted, result.DeletedAssets[0].Status)
}

func TestREST_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorCode": "CLIENT-403", "errorMessage": "permission denied"}`))
	}))
	defer srv.Close()

	r, err := NewREST(srv.URL, "")
	require.NoError(t, err)

	_, err = r.GetByGUID(context.Background(), "abc-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}
