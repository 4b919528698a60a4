package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/serde"
)

const defaultRESTTimeout = 30 * time.Second

// REST is the HTTP implementation of Client. Assets travel in the catalog's
// envelope format, produced and consumed by the serde package.
type REST struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// RESTOption configures a REST client.
type RESTOption func(*REST)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(r *REST) {
		if c != nil {
			r.httpc = c
		}
	}
}

// NewREST builds a REST client for the catalog at baseURL, authenticating
// every request with the bearer token.
func NewREST(baseURL, token string, opts ...RESTOption) (*REST, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rest: base URL is required")
	}
	r := &REST{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: defaultRESTTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// GetByGUID implements Client.
func (r *REST) GetByGUID(ctx context.Context, guid string) (asset.Asset, error) {
	body, status, err := r.do(ctx, http.MethodGet, "/api/meta/entity/guid/"+url.PathEscape(guid), nil, nil)
	if err != nil {
		return asset.Asset{}, err
	}
	if status == http.StatusNotFound {
		return asset.Asset{}, &NotFoundError{ID: guid}
	}
	if status != http.StatusOK {
		return asset.Asset{}, httpError("get", status, body)
	}
	return serde.Decode(entityBody(body))
}

// GetByQualifiedName implements Client.
func (r *REST) GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (asset.Asset, error) {
	path := "/api/meta/entity/uniqueAttribute/type/" + url.PathEscape(typeName)
	q := url.Values{"attr:qualifiedName": {qualifiedName}}
	body, status, err := r.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return asset.Asset{}, err
	}
	if status == http.StatusNotFound {
		return asset.Asset{}, &NotFoundError{TypeName: typeName, ID: qualifiedName}
	}
	if status != http.StatusOK {
		return asset.Asset{}, httpError("get", status, body)
	}
	return serde.Decode(entityBody(body))
}

// Save implements Client.
func (r *REST) Save(ctx context.Context, req SaveRequest) (*MutationResult, error) {
	if req.Update == nil {
		return nil, fmt.Errorf("save: nil update")
	}
	encoded, err := serde.Encode(req.Update)
	if err != nil {
		return nil, fmt.Errorf("save: encode: %w", err)
	}
	payload, err := json.Marshal(map[string]any{"entities": []json.RawMessage{encoded}})
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}

	q := url.Values{}
	if req.ReplaceTags {
		q.Set("replaceClassifications", "true")
	} else {
		q.Set("appendClassifications", "true")
	}
	switch req.CustomMetadata {
	case CMMerge:
		q.Set("updateBusinessAttributes", "true")
	case CMReplaceSets:
		q.Set("replaceBusinessAttributes", "true")
	case CMReplaceAll:
		q.Set("replaceBusinessAttributes", "true")
		q.Set("overwriteBusinessAttributes", "true")
	}

	body, status, err := r.do(ctx, http.MethodPost, "/api/meta/entity/bulk", q, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, httpError("save", status, body)
	}
	return decodeMutationResult(body)
}

// Delete implements Client.
func (r *REST) Delete(ctx context.Context, guid string, mode DeleteMode) (*DeletionResult, error) {
	q := url.Values{"deleteType": {string(mode)}}
	body, status, err := r.do(ctx, http.MethodDelete, "/api/meta/entity/guid/"+url.PathEscape(guid), q, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{ID: guid}
	}
	if status != http.StatusOK {
		return nil, httpError("delete", status, body)
	}

	mutation, err := decodeMutationResult(body)
	if err != nil {
		return nil, err
	}
	result := &DeletionResult{}
	result.DeletedAssets = append(result.DeletedAssets, mutation.UpdatedAssets...)
	result.DeletedAssets = append(result.DeletedAssets, mutation.PartiallyUpdatedAssets...)
	return result, nil
}

// Restore implements Client.
func (r *REST) Restore(ctx context.Context, u *asset.Update) (*MutationResult, error) {
	if u == nil {
		return nil, fmt.Errorf("restore: nil update")
	}
	restored := u.Asset
	restored.Status = asset.StatusActive
	encoded, err := serde.EncodeAsset(restored, nil)
	if err != nil {
		return nil, fmt.Errorf("restore: encode: %w", err)
	}
	payload, err := json.Marshal(map[string]any{"entities": []json.RawMessage{encoded}})
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	body, status, err := r.do(ctx, http.MethodPost, "/api/meta/entity/bulk", nil, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, httpError("restore", status, body)
	}
	return decodeMutationResult(body)
}

func (r *REST) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, int, error) {
	u := r.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("rest: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("rest: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// entityBody unwraps the single-entity response envelope when present.
func entityBody(body []byte) []byte {
	var wrapper struct {
		Entity json.RawMessage `json:"entity"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Entity) > 0 {
		return wrapper.Entity
	}
	return body
}

func decodeMutationResult(body []byte) (*MutationResult, error) {
	var raw struct {
		MutatedEntities map[string][]json.RawMessage `json:"mutatedEntities"`
		GUIDAssignments map[string]string            `json:"guidAssignments"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("rest: decode mutation result: %w", err)
	}

	result := &MutationResult{GUIDAssignments: raw.GUIDAssignments}
	decode := func(raws []json.RawMessage) ([]asset.Asset, error) {
		assets := make([]asset.Asset, 0, len(raws))
		for _, entity := range raws {
			a, err := serde.Decode(entity)
			if err != nil {
				return nil, fmt.Errorf("rest: decode entity: %w", err)
			}
			assets = append(assets, a)
		}
		return assets, nil
	}

	var err error
	if result.CreatedAssets, err = decode(raw.MutatedEntities["CREATE"]); err != nil {
		return nil, err
	}
	if result.UpdatedAssets, err = decode(raw.MutatedEntities["UPDATE"]); err != nil {
		return nil, err
	}
	if result.PartiallyUpdatedAssets, err = decode(raw.MutatedEntities["PARTIAL_UPDATE"]); err != nil {
		return nil, err
	}
	return result, nil
}

func httpError(op string, status int, body []byte) error {
	msg := string(body)
	var serviceError struct {
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &serviceError); err == nil && serviceError.ErrorMessage != "" {
		msg = serviceError.ErrorMessage
	}
	return fmt.Errorf("rest: %s failed with status %d: %s", op, status, msg)
}

var _ Client = (*REST)(nil)
