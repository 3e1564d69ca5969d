package pagsmile

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pagsmile-checkout/internal/logger"

	"go.uber.org/zap"
)

const baseURL = "https://gateway.pagsmile.com"

// HTTPClient is the outbound transport the services call through.
type HTTPClient interface {
	Post(ctx context.Context, endpoint string, body, out any) error
	Get(ctx context.Context, endpoint string, out any) error
}

type client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient builds the signed gateway transport. Auth is HTTP Basic
// over app id and security key.
func NewClient(appID, securityKey string) HTTPClient {
	if appID == "" || securityKey == "" {
		logger.L().Warn("pagsmile credentials are empty")
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(appID + ":" + securityKey))

	return &client{
		baseURL:    baseURL,
		authHeader: "Basic " + credentials,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *client) Post(ctx context.Context, endpoint string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody), out)
}

func (c *client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *client) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("pagsmile request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read pagsmile response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("pagsmile returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("pagsmile api error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("failed decoding pagsmile response", zap.Error(err))
		return err
	}

	return nil
}
