package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
// This is for unauthenticated requests (no Authorization header).
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// postJSON sends a JSON-encoded POST to an unauthenticated endpoint.
func (c *SDKClient) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, payload)
}

// putJSON sends a JSON-encoded PUT to an unauthenticated endpoint.
func (c *SDKClient) putJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	return c.sendJSON(ctx, http.MethodPut, path, payload)
}

func (c *SDKClient) sendJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	return c.doRequest(ctx, method, path, bytes.NewReader(buf), headers)
}

// doAuthRequest performs an authenticated HTTP request using the session's
// access token. It refreshes the token proactively when it is past its local
// expiry, adopts any renewed token the server hands back, and on a 401 or
// 403 forces exactly one refresh and retries before surfacing the error.
// The renewal itself goes through SDKClient.Refresh, which is never retried,
// so a dead session cannot loop.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	payload any,
) (*http.Response, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.execute(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Local expiry tracking can lag the server's clock, and the
		// server may know account state the cached token does not. One
		// forced refresh and retry before giving up.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		token, err = s.forceRefresh(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = s.execute(ctx, method, path, payload, token)
		if err != nil {
			return nil, err
		}
	}

	// The server renews expired-but-refreshable tokens transparently and
	// hands the replacement back in a header.
	if renewed := resp.Header.Get(NewAccessTokenHeader); renewed != "" {
		s.adoptToken(renewed)
	}

	return resp, nil
}

func (s *Session) execute(ctx context.Context, method, path string, payload any, token string) (*http.Response, error) {
	var body io.Reader
	headers := map[string]string{"Authorization": "Bearer " + token}

	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
		headers["Content-Type"] = "application/json"
	}

	return s.client.doRequest(ctx, method, path, body, headers)
}

// decodeJSON decodes a JSON response into the target. Non-2xx responses are
// parsed into a typed *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseErrorResponse turns an error response body back into the *APIError
// the server wrote, so callers can match it with errors.Is against the
// package sentinels.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
		}
	}

	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
