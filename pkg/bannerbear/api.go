package bannerbear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("bannerbear-client")

// api performs single round trips against one base URL with a fixed header set.
// It holds no mutable state and is safe for concurrent use.
type api struct {
	baseURL    string
	header     http.Header
	httpClient *http.Client
	log        logr.Logger
}

func newAPI(baseURL string, header http.Header, httpClient *http.Client, log logr.Logger) *api {
	return &api{
		baseURL:    strings.TrimRight(baseURL, "/"),
		header:     header.Clone(),
		httpClient: httpClient,
		log:        log,
	}
}

func (a *api) get(ctx context.Context, path string, out any) error {
	return a.do(ctx, http.MethodGet, path, nil, out)
}

func (a *api) post(ctx context.Context, path string, params, out any) error {
	return a.do(ctx, http.MethodPost, path, params, out)
}

func (a *api) patch(ctx context.Context, path string, params, out any) error {
	return a.do(ctx, http.MethodPatch, path, params, out)
}

// do sends params as a JSON body (when non-nil) and decodes a 2xx response into out.
func (a *api) do(ctx context.Context, method, path string, params, out any) error {
	ctx, span := tracer.Start(ctx, "bannerbear_"+strings.ToLower(method))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var body io.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	url := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range a.header {
		req.Header[key] = append([]string(nil), values...)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		a.log.V(1).Info("Request failed", "method", method, "path", path, "error", err.Error())
		return &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	a.log.V(1).Info("Request completed", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(respBody)),
		}
		span.RecordError(httpErr)
		span.SetStatus(codes.Error, resp.Status)
		return httpErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
