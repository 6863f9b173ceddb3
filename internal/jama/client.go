// Package jama is a minimal Jama Connect REST client used to pull
// requirement items directly from a project, as an alternative to importing
// an exported Word document.
package jama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"reqlens/internal/config"
)

// Client talks to the Jama Connect REST API using OAuth client credentials.
// Tokens are cached until shortly before expiry.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Jama client from config.
func NewClient(cfg *config.JamaConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: timeout},
	}
}

// Project is one Jama project.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item is one Jama requirement item. DocumentKey is the id token that also
// appears in Word exports (e.g. PROJ-REQ_RC-001).
type Item struct {
	ID          int    `json:"id"`
	DocumentKey string `json:"documentKey"`
	GlobalID    string `json:"globalId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// token fetches or reuses the OAuth access token. Jama's token endpoint
// takes grant_type=client_credentials with the client id and secret as HTTP
// Basic auth.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("jama token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("unmarshaling token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("jama token endpoint returned no access_token")
	}

	c.accessToken = tok.AccessToken
	// Renew a minute early so in-flight calls never race expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

// get performs an authenticated GET and decodes the "data" envelope Jama
// wraps every list response in.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling jama API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jama API error (status %d): %s", resp.StatusCode, string(body))
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("unmarshaling response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("unmarshaling response data: %w", err)
	}
	return nil
}

// Projects lists the projects visible to the configured client.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/rest/v1/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Items lists the requirement items of one project.
func (c *Client) Items(ctx context.Context, projectID int) ([]Item, error) {
	var items []Item
	path := fmt.Sprintf("/rest/v1/items?project=%d", projectID)
	if err := c.get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}
