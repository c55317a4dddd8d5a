package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

// fetchOne sends one request and decodes a single entity. A reply without a
// body gives (nil, nil).
func fetchOne[T any](ctx context.Context, api ports.APIRequester, method, path string, body interface{}) (*T, error) {
	resp, err := api.Request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.NoContent() {
		return nil, nil
	}
	out := new(T)
	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchByID loads one entity. A reply without a body is reported as a 404 with
// notFound as its message.
func fetchByID[T any](ctx context.Context, api ports.APIRequester, base string, id int64, notFound string) (*T, error) {
	out, err := fetchOne[T](ctx, api, http.MethodGet, entityPath(base, id), nil)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &domain.RequestFailedError{Status: http.StatusNotFound, Message: notFound}
	}
	return out, nil
}

// fetchList decodes a collection. A reply without a body is an empty list.
func fetchList[T any](ctx context.Context, api ports.APIRequester, path string) ([]T, error) {
	resp, err := api.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func send(ctx context.Context, api ports.APIRequester, method, path string) error {
	_, err := api.Request(ctx, method, path, nil)
	return err
}

func entityPath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}
