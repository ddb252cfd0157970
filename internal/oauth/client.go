/**
* Name: 			client.go
* Description: 		OAuth 토큰 엔드포인트 프록시 클라이언트 (교환, 폐기, 갱신)
* Workflow: 		요청 값을 x-www-form-urlencoded 로 재구성 -> 토큰/폐기 URL 로 POST -> 응답 바디 그대로 반환
 */

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"ConnexxBot_Backend/internal/config"
)

// 업스트림이 2xx 가 아닌 응답을 준 경우
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("token endpoint returned HTTP %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// 업스트림 바디의 "error" 값, 없거나 JSON 이 아니면 nil
func (e *UpstreamError) ErrorValue() any {
	var body map[string]any
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return nil
	}
	return body["error"]
}

// 토큰은 저장하지 않음, 매 요청 독립
type TokenClient struct {
	clientID     string
	clientSecret string
	tokenURL     string
	revokeURL    string
	httpClient   *http.Client
}

func NewTokenClient(cfg config.OAuthConfig, httpClient *http.Client) *TokenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		revokeURL:    cfg.RevokeURL,
		httpClient:   httpClient,
	}
}

// authorization code -> 토큰 JSON
func (c *TokenClient) Exchange(ctx context.Context, code, redirectURI, codeVerifier string) ([]byte, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {redirectURI},
		"grant_type":    {"authorization_code"},
		"code_verifier": {codeVerifier},
	}
	return c.post(ctx, c.tokenURL, form)
}

func (c *TokenClient) Revoke(ctx context.Context, token string) error {
	form := url.Values{
		"token":         {token},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	_, err := c.post(ctx, c.revokeURL, form)
	return err
}

// refresh token -> 새 access token JSON
func (c *TokenClient) Refresh(ctx context.Context, refreshToken string) ([]byte, error) {
	form := url.Values{
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
	}
	return c.post(ctx, c.tokenURL, form)
}

func (c *TokenClient) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TokenClient: request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("TokenClient: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[WARN] TokenClient.post(): %s returned HTTP %d", endpoint, resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
