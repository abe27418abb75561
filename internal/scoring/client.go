package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/yildizm/textpulse/internal/logger"
)

const (
	opListLogs = "list_logs"
	opScore    = "score"
	opClear    = "clear"
	opPing     = "ping"
)

// Client talks to the text analysis service over HTTP
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a new service client
func New(config *Config, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("client"),
	}, nil
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListLogs fetches the full scoring history in server order
func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, error) {
	var entries []LogEntry
	if err := c.do(ctx, opListLogs, http.MethodGet, "/logs", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	return entries, nil
}

// Score submits text for analysis. The text is sent verbatim.
func (c *Client) Score(ctx context.Context, text string) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := c.do(ctx, opScore, http.MethodPost, "/score", &ScoreRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Clear deletes all server-side history. Any 2xx status is success.
func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, opClear, http.MethodDelete, "/clear", nil, nil)
}

// Ping checks that the service root answers
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, opPing, http.MethodGet, "/", nil, nil)
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	endpoint := c.baseURL.JoinPath(path)

	body := io.Reader(http.NoBody)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return NewServiceErrorWithCause(ErrTypeInternal, op, "failed to marshal request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return NewServiceErrorWithCause(ErrTypeInternal, op, "failed to create request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return NewServiceErrorWithCause(transportErrorType(err), op, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.DebugWithFields("%s %s", []logger.Field{
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	}, method, endpoint.Path)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewServiceErrorWithCause(ErrTypeDecode, op, "failed to decode response", err)
	}

	return nil
}

// statusError builds an error from a non-2xx response, preferring the
// service's own {"error": ...} message when present
func statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var errResp ErrorResponse
	if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
		message = errResp.Error
	}

	se := NewServiceError(ErrTypeService, op, message)
	se.StatusCode = resp.StatusCode
	return se
}

func transportErrorType(err error) ErrorType {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTypeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTypeTimeout
	}
	return ErrTypeNetwork
}
