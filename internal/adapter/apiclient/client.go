package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

// Client talks to the fleet REST API. It holds no credential of its own:
// the bearer token is read from the session on every request.
type Client struct {
	transport *httptransport.Runtime
	session   ports.SessionPort
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
}

func New(
	baseURL string,
	session ports.SessionPort,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: missing host", baseURL)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}

	transport := httptransport.New(u.Host, strings.TrimSuffix(u.Path, "/"), []string{scheme})
	// error pages are not always JSON
	transport.Consumers["*/*"] = runtime.ByteStreamConsumer()

	return &Client{
		transport: transport,
		session:   session,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// outcome is what the response reader hands back to Request. Reader errors
// are kept out of Submit's error so that Submit only fails on transport errors.
type outcome struct {
	resp *ports.Response
	err  error
}

func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (*ports.Response, error) {
	const op = "apiclient.Request"
	start := time.Now()

	var authInfo runtime.ClientAuthInfoWriter
	if token, ok := c.session.Token(ctx); ok {
		authInfo = httptransport.BearerToken(token)
	}

	params := runtime.ClientRequestWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
		if err := r.SetHeaderParam(runtime.HeaderContentType, runtime.JSONMime); err != nil {
			return err
		}
		if body != nil {
			return r.SetBodyParam(body)
		}
		return nil
	})

	reader := runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, _ runtime.Consumer) (interface{}, error) {
		return c.readResponse(ctx, resp), nil
	})

	c.logger.Debug("Calling fleet API", map[string]interface{}{
		"method": method,
		"path":   path,
	})

	result, err := c.transport.Submit(&runtime.ClientOperation{
		ID:                 method + " " + path,
		Method:             method,
		PathPattern:        path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{runtime.JSONMime},
		AuthInfo:           authInfo,
		Params:             params,
		Reader:             reader,
		Context:            ctx,
	})
	if err != nil {
		c.metrics.RecordAPICall(method, RouteLabel(path), 0, start)
		c.logger.Error("Fleet API unreachable", map[string]interface{}{
			"op":     op,
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, &domain.NetworkFailedError{Err: err}
	}

	out, ok := result.(*outcome)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result %T", op, result)
	}
	status := 0
	if out.resp != nil {
		status = out.resp.StatusCode
	}
	var failed *domain.RequestFailedError
	if errors.As(out.err, &failed) {
		status = failed.Status
	}
	c.metrics.RecordAPICall(method, RouteLabel(path), status, start)

	if out.err != nil {
		c.logger.Warn("Fleet API request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  out.err.Error(),
		})
		return nil, out.err
	}
	return out.resp, nil
}

func (c *Client) readResponse(ctx context.Context, resp runtime.ClientResponse) *outcome {
	code := resp.Code()

	var data []byte
	if rc := resp.Body(); rc != nil {
		b, err := io.ReadAll(rc)
		if err != nil {
			return &outcome{err: &domain.NetworkFailedError{Err: fmt.Errorf("read response body: %w", err)}}
		}
		data = b
	}

	switch {
	case code == http.StatusNoContent:
		return &outcome{resp: &ports.Response{StatusCode: code}}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		if err := c.session.Clear(ctx); err != nil {
			c.logger.Error("Failed to clear rejected session", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return &outcome{err: domain.ErrUnauthorized}
	case code >= 200 && code < 300:
		return &outcome{resp: &ports.Response{StatusCode: code, Body: data}}
	default:
		return &outcome{err: &domain.RequestFailedError{
			Status:  code,
			Message: errorMessage(data, resp.Message(), code),
		}}
	}
}

// errorMessage prefers the body's "message" field, which may be a string or a
// list of strings, and falls back to the status text.
func errorMessage(body []byte, statusText string, code int) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && len(payload.Message) > 0 {
		var single string
		if json.Unmarshal(payload.Message, &single) == nil && single != "" {
			return single
		}
		var many []string
		if json.Unmarshal(payload.Message, &many) == nil && len(many) > 0 {
			return strings.Join(many, "; ")
		}
	}
	// Message() carries the full status line, e.g. "502 Bad Gateway"
	statusText = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(statusText), strconv.Itoa(code)))
	if statusText != "" {
		return statusText
	}
	return http.StatusText(code)
}

var idSegment = regexp.MustCompile(`/\d+`)

// RouteLabel collapses numeric path segments so metric labels stay bounded.
func RouteLabel(path string) string {
	return idSegment.ReplaceAllString(path, "/:id")
}
