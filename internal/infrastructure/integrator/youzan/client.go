// Package youzan implements the commerce-platform client used to pull
// daily revenue summaries into the finance dashboard.
package youzan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/pkg/logger"
)

// Config holds client credentials and endpoint configuration.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// DefaultConfig returns the public API endpoint with a sane timeout.
func DefaultConfig(clientID, clientSecret string) Config {
	return Config{
		BaseURL:      "https://open.youzan.com/api/oauthentry",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Timeout:      30 * time.Second,
	}
}

// Client talks to the platform API. Access tokens are fetched with the
// client-credentials grant and cached until shortly before expiry.
type Client struct {
	config     Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new API client.
func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	payload, err := json.Marshal(map[string]string{
		"client_id":     c.config.ClientID,
		"client_secret": c.config.ClientSecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/token", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.NewStoreUnavailable(fmt.Errorf("fetch access token: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperror.NewStoreUnavailable(
			fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", apperror.NewStoreUnavailable(fmt.Errorf("token endpoint returned empty token"))
	}

	c.accessToken = token.AccessToken
	// Renew one minute early so in-flight requests never race expiry.
	expiresIn := time.Duration(token.ExpiresIn)*time.Second - time.Minute
	if expiresIn < time.Minute {
		expiresIn = time.Minute
	}
	c.tokenExpiry = time.Now().Add(expiresIn)

	logger.Debug(ctx, "platform access token refreshed", "expires_in", expiresIn)
	return c.accessToken, nil
}

// get performs an authenticated GET and decodes the envelope payload
// into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewStoreUnavailable(fmt.Errorf("call %s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// Token revoked server-side; drop the cache so the next call
		// re-authenticates.
		c.mu.Lock()
		c.accessToken = ""
		c.mu.Unlock()
		return apperror.NewStoreUnavailable(fmt.Errorf("%s: access token rejected", endpoint))
	}
	if resp.StatusCode != http.StatusOK {
		return apperror.NewStoreUnavailable(
			fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, body))
	}

	var envelope struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Code != 0 {
		return apperror.NewStoreUnavailable(
			fmt.Errorf("%s failed with code %d: %s", endpoint, envelope.Code, envelope.Msg))
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
