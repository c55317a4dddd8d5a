package ports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful reply from the fleet API.
type Response struct {
	StatusCode int
	Body       []byte
}

// NoContent is true for 204 replies and for 2xx replies whose body is empty
// or a JSON null.
func (r *Response) NoContent() bool {
	if r == nil || r.StatusCode == http.StatusNoContent {
		return true
	}
	body := bytes.TrimSpace(r.Body)
	return len(body) == 0 || bytes.Equal(body, []byte("null"))
}

// Decode unmarshals the body into out. An empty body leaves out untouched.
func (r *Response) Decode(out interface{}) error {
	if r.NoContent() || out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type APIRequester interface {
	Request(ctx context.Context, method, path string, body interface{}) (*Response, error)
}
