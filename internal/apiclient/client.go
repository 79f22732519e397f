// Package apiclient is the live transport: JSON over HTTP against the
// demo-request API with a bounded wait per call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

var clientTracer = otel.Tracer("onboardai/apiclient")

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 30 * time.Second
)

// Endpoint paths relative to the base URL.
const (
	EndpointDemoRequests      = "/demo-requests"
	EndpointIndustries        = "/industries"
	EndpointCompanySizes      = "/company-sizes"
	EndpointTimeSlots         = "/timeslots"
	EndpointContact           = "/contact"
	EndpointAdminDemoRequests = "/admin/demo-requests"
)

// Config holds the transport settings. Headers are sent with every request;
// per-call headers override them key by key.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Headers    http.Header
	HTTPClient *http.Client
}

// Client is the live transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	logger     *logging.Logger
}

// New constructs a live client.
func New(cfg Config, logger *logging.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		headers:    cfg.Headers.Clone(),
		logger:     logger,
	}
}

// SubmitDemoRequest sends POST /demo-requests.
func (c *Client) SubmitDemoRequest(ctx context.Context, req demorequest.DemoRequest) (*demorequest.Result, error) {
	var result demorequest.Result
	if err := c.doJSON(ctx, http.MethodPost, EndpointDemoRequests, req, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// Industries sends GET /industries.
func (c *Client) Industries(ctx context.Context) ([]demorequest.Industry, error) {
	var out []demorequest.Industry
	if err := c.doJSON(ctx, http.MethodGet, EndpointIndustries, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CompanySizes sends GET /company-sizes.
func (c *Client) CompanySizes(ctx context.Context) ([]demorequest.CompanySize, error) {
	var out []demorequest.CompanySize
	if err := c.doJSON(ctx, http.MethodGet, EndpointCompanySizes, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// TimeSlots sends GET /timeslots, with ?date= when date is non-empty.
func (c *Client) TimeSlots(ctx context.Context, date string) ([]demorequest.TimeSlot, error) {
	path := EndpointTimeSlots
	if date != "" {
		q := url.Values{}
		q.Set("date", date)
		path += "?" + q.Encode()
	}
	var out []demorequest.TimeSlot
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitContact sends POST /contact.
func (c *Client) SubmitContact(ctx context.Context, msg demorequest.ContactMessage) (*demorequest.ContactResult, error) {
	var result demorequest.ContactResult
	if err := c.doJSON(ctx, http.MethodPost, EndpointContact, msg, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// DemoRequests lists all accepted requests. adminToken is sent as a bearer token.
func (c *Client) DemoRequests(ctx context.Context, adminToken string) ([]demorequest.StoredRequest, error) {
	var headers http.Header
	if adminToken != "" {
		headers = http.Header{"Authorization": []string{"Bearer " + adminToken}}
	}
	var wrapped struct {
		Requests []demorequest.StoredRequest `json:"requests"`
	}
	if err := c.doJSON(ctx, http.MethodGet, EndpointAdminDemoRequests, nil, &wrapped, headers); err != nil {
		return nil, err
	}
	return wrapped.Requests, nil
}

type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details map[string][]string `json:"details"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, headers http.Header) error {
	ctx, span := clientTracer.Start(ctx, "apiclient "+method+" "+strings.SplitN(path, "?", 2)[0])
	defer span.End()

	err := c.do(ctx, method, path, body, out, headers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apiErr, ok := demorequest.AsAPIError(err); ok {
			span.SetAttributes(attribute.String("error.code", string(apiErr.Code)))
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, headers http.Header) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header = mergeHeaders(c.headers, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.logger.Warn("api request aborted", "method", method, "path", path, "timeout", c.timeout.String())
			return demorequest.NewAPIError(demorequest.CodeTimeout, "Request timeout", nil, err)
		}
		c.logger.Warn("api request failed", "method", method, "path", path, "error", err)
		return demorequest.NewAPIError(demorequest.CodeHTTP, "Network error", nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return demorequest.NewAPIError(demorequest.CodeTimeout, "Request timeout", nil, err)
		}
		return demorequest.NewAPIError(demorequest.CodeHTTP, "Failed to read response", nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeFailure(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		c.logger.Warn("api response body empty", "method", method, "path", path, "status", resp.StatusCode)
		return demorequest.NewAPIError(demorequest.CodeHTTP, "Invalid response body", nil, nil)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return demorequest.NewAPIError(demorequest.CodeHTTP, "Invalid response body", nil, err)
	}
	return nil
}

// decodeFailure maps a non-2xx response onto an APIError, falling back to a
// generic HTTP_ERROR when the body carries no usable message or code.
func decodeFailure(status int, body []byte) *demorequest.APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	message := eb.Message
	if message == "" {
		message = fmt.Sprintf("HTTP Error: %d", status)
	}
	code := demorequest.ErrorCode(eb.Code)
	if code == "" {
		code = demorequest.CodeHTTP
	}
	return demorequest.NewAPIError(code, message, eb.Details, nil)
}

// mergeHeaders layers call-specific headers over defaults. Content-Type is
// always application/json unless a caller overrides it.
func mergeHeaders(defaults, overrides http.Header) http.Header {
	out := http.Header{}
	out.Set("Content-Type", "application/json")
	out.Set("Accept", "application/json")
	for k, v := range defaults {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return out
}
