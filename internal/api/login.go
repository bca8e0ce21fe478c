// ABOUTME: Token issuance call against POST /token
// ABOUTME: Sends form-encoded credentials and returns the bearer token

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// LoginResult is the backend's token issuance response.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
}

// Login exchanges a username/password pair for a bearer token. The request
// is form-encoded per the backend's token endpoint; any rejection maps to
// ErrInvalidCredentials so the caller can show an inline login error
// without disturbing a previously stored session.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrInvalidCredentials
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if result.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}
	return &result, nil
}
