package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Resource is a typed handle on one collection endpoint. All collection
// endpoints share the same contract, so a single generic covers accounts,
// patients, medicines and the rest.
type Resource[T any] struct {
	c    *Client
	path string // e.g. "/api/patients/"
}

// NewResource binds a collection path. The path must carry the trailing
// slash the backend expects.
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, path: path}
}

// List fetches the whole collection. The backend answers either with a bare
// JSON array or with a {"results": [...]} envelope depending on endpoint and
// version; both normalize to the same slice. A null or absent payload is an
// empty, non-nil slice so callers can range without nil checks.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	resp, err := r.c.do(ctx, http.MethodGet, r.path, nil)
	if err != nil {
		return nil, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return nil, err
	}
	return normalizeList[T](body)
}

func normalizeList[T any](body []byte) ([]T, error) {
	items := []T{}
	if len(body) == 0 || string(body) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse list response: %w", err)
	}
	if len(envelope.Results) == 0 || string(envelope.Results) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(envelope.Results, &items); err != nil {
		return nil, fmt.Errorf("parse list results: %w", err)
	}
	return items, nil
}

// Get fetches one item by ID.
func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	resp, err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", r.path, id), nil)
	if err != nil {
		return zero, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return zero, err
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return zero, fmt.Errorf("parse item: %w", err)
	}
	return item, nil
}

// Create posts a new item. The payload is typically a map built from form
// fields rather than the resource struct, because create payloads reference
// related records by ID while responses embed them.
func (r Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	resp, err := r.c.do(ctx, http.MethodPost, r.path, payload)
	if err != nil {
		return zero, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return zero, err
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return zero, fmt.Errorf("parse created item: %w", err)
	}
	return item, nil
}

// Update replaces an item by ID.
func (r Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var zero T
	resp, err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("%s%d/", r.path, id), payload)
	if err != nil {
		return zero, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return zero, err
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return zero, fmt.Errorf("parse updated item: %w", err)
	}
	return item, nil
}

// Delete removes an item by ID. Any 2xx status is success; backends differ
// on 200 with body versus 204.
func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	resp, err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", r.path, id), nil)
	if err != nil {
		return err
	}
	_, err = checkStatus(resp)
	return err
}
