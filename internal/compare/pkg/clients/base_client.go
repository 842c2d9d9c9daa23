package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gocompare_api/pkg/logger"
)

// ErrMissingToken is returned before any request when no API token is set.
var ErrMissingToken = errors.New("upstream api token is not configured")

// UpstreamError reports a non-OK answer of the upstream API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %s answered with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s answered with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type BaseClient struct {
	ApiURL string
	log    logger.Logger
	client *http.Client
}

func NewBaseClient(apiURL string, writer io.Writer, logPrefix string) *BaseClient {
	return &BaseClient{
		ApiURL: apiURL,
		log:    logger.NewLogger(writer, logPrefix),
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// doRequest performs a GET on endpoint and decodes the JSON answer into
// response. Non-OK answers come back as *UpstreamError.
func (c *BaseClient) doRequest(ctx context.Context, endpoint string, query url.Values, response interface{}) error {
	c.log.Log("Got signal for %s", endpoint)

	target := c.ApiURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
