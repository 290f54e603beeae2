package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tphakala/healthdiary-go/internal/errors"
	"github.com/tphakala/healthdiary-go/internal/httpclient"
	"github.com/tphakala/healthdiary-go/internal/logging"
	"github.com/tphakala/healthdiary-go/internal/observability/metrics"
)

// Fixed protocol headers for the table service REST dialect.
const (
	apiVersion       = "2019-02-02"
	acceptNoMetadata = "application/json;odata=nometadata"
	contentTypeJSON  = "application/json"

	headerDate          = "x-ms-date"
	headerVersion       = "x-ms-version"
	headerAuthorization = "Authorization"
)

// defaultEndpointFormat builds the service host from the account name.
const defaultEndpointFormat = "https://%s.table.core.windows.net"

// RequestOptions overrides the defaults of a single table request.
type RequestOptions struct {
	// Path overrides the default resource path ("/{tableName}()").
	Path string
	// Headers are merged over the fixed protocol headers; caller wins.
	Headers map[string]string
	// Body is JSON-encoded into the request when non-nil.
	Body any
}

// Client issues signed requests against the table service. One outbound
// network call per invocation; no retry, no backoff — failures surface to
// the caller unconditionally. Safe for concurrent use.
type Client struct {
	creds    Credentials
	signer   *Signer
	endpoint string
	http     *httpclient.Client
	metrics  *metrics.TableStoreMetrics
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the service endpoint. Used in tests and for
// storage emulators.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the transport client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithMetrics enables request metrics collection.
func WithMetrics(m *metrics.TableStoreMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a table client for the given credentials.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:    creds,
		signer:   NewSigner(creds),
		endpoint: fmt.Sprintf(defaultEndpointFormat, creds.AccountName),
		log:      logging.ForService("tablestore"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.New(nil)
	}
	return c
}

// Do issues one signed request and decodes the JSON response. A 2xx
// response with a non-empty body returns the parsed JSON object; a 2xx
// response with an empty body returns an empty map. Non-2xx responses and
// transport failures return categorized errors.
func (c *Client) Do(ctx context.Context, method, tableName string, opts *RequestOptions) (map[string]any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	path := opts.Path
	if path == "" {
		path = fmt.Sprintf("/%s()", tableName)
	}

	// The signed string and the date header must carry the same timestamp;
	// capture it once.
	httpDate := time.Now().UTC().Format(http.TimeFormat)

	authorization, err := c.signer.AuthorizationHeader(httpDate, path)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader = http.NoBody
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.New(fmt.Errorf("encoding request body: %w", err)).
				Component("tablestore").
				Category(errors.CategoryJSONParsing).
				Build()
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bodyReader)
	if err != nil {
		return nil, errors.New(fmt.Errorf("creating request: %w", err)).
			Component("tablestore").
			Category(errors.CategoryGeneric).
			Build()
	}

	req.Header.Set(headerDate, httpDate)
	req.Header.Set(headerVersion, apiVersion)
	req.Header.Set(headerAuthorization, authorization)
	req.Header.Set("Accept", acceptNoMetadata)
	req.Header.Set("Content-Type", contentTypeJSON)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.recordRequest(tableName, method, "transport_error", start)
		return nil, errors.New(fmt.Errorf("table service request: %w", err)).
			Component("tablestore").
			Category(errors.CategoryNetwork).
			Context("table", tableName).
			Context("method", method).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordRequest(tableName, method, "read_error", start)
		return nil, errors.New(fmt.Errorf("reading response body: %w", err)).
			Component("tablestore").
			Category(errors.CategoryNetwork).
			Context("table", tableName).
			Build()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordRequest(tableName, method, "error", start)
		return nil, errors.New(fmt.Errorf("request failed: %d %s", resp.StatusCode, string(data))).
			Component("tablestore").
			Category(errors.CategoryHTTP).
			Context("status_code", resp.StatusCode).
			Context("response_body", string(data)).
			Context("table", tableName).
			Build()
	}

	c.recordRequest(tableName, method, "success", start)

	if c.log != nil {
		c.log.Debug("table request completed",
			"table", tableName,
			"method", method,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.New(fmt.Errorf("decoding response body: %w", err)).
			Component("tablestore").
			Category(errors.CategoryJSONParsing).
			Context("table", tableName).
			Build()
	}
	return result, nil
}

// ListEntities fetches every entity in a table with an unfiltered query.
// Order is whatever the store returns; there is no pagination, which is
// acceptable for personal-diary data volumes.
func (c *Client) ListEntities(ctx context.Context, tableName string) ([]Entity, error) {
	result, err := c.Do(ctx, http.MethodGet, tableName, nil)
	if err != nil {
		return nil, err
	}

	raw, ok := result["value"].([]any)
	if !ok {
		return []Entity{}, nil
	}

	entities := make([]Entity, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			entities = append(entities, Entity(m))
		}
	}
	return entities, nil
}

// InsertEntity appends one entity to a table. Entities are immutable once
// written; a row-key collision silently overwrites on the service side.
func (c *Client) InsertEntity(ctx context.Context, tableName string, entity Entity) error {
	_, err := c.Do(ctx, http.MethodPost, tableName, &RequestOptions{
		Path: fmt.Sprintf("/%s", tableName),
		Body: entity,
	})
	return err
}

func (c *Client) recordRequest(tableName, method, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(tableName, method, outcome, time.Since(start))
}
