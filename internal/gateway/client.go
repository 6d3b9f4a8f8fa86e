package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/config"
	"github.com/greenshop/storefront/pkg/errors"
)

// Client is the HTTP client for the remote catalog/order service. It holds no
// state beyond connection settings: caching is the stores' responsibility and
// no call is ever retried here.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new remote service client
func NewClient(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// serverMessage is the error envelope the service uses for non-2xx replies.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes one request against the service. A transport failure maps to
// RemoteError{Network}; a non-2xx status maps to RemoteError{ServerRejected}
// carrying the server's message verbatim. On success the body is decoded
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, payload, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Remote request failed", zap.String("op", op), zap.Error(err))
		return &errors.RemoteError{
			Kind:   errors.RemoteErrorNetwork,
			Op:     op,
			Detail: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.RemoteError{
			Kind:   errors.RemoteErrorNetwork,
			Op:     op,
			Detail: fmt.Sprintf("failed to read response: %v", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(respBody)
		var msg serverMessage
		if err := json.Unmarshal(respBody, &msg); err == nil {
			if msg.Message != "" {
				detail = msg.Message
			} else if msg.Error != "" {
				detail = msg.Error
			}
		}
		c.logger.Error("Remote request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return &errors.RemoteError{
			Kind:   errors.RemoteErrorServerRejected,
			Op:     op,
			Status: resp.StatusCode,
			Detail: detail,
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
