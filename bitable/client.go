// Package bitable mirrors archived notes to a Feishu/Lark bitable app.
//
// The mirror requires a short-lived tenant token obtained from application
// credentials before each record creation; responses carry an application
// status code where 0 means success.
package bitable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"paperdesk/core"
)

// ErrNoToken is returned when the credential exchange yields no token.
var ErrNoToken = errors.New("bitable token exchange returned no token")

// Field keys of the paper notes table in the bitable app.
const (
	fieldPaperName = "paper_name"
	fieldQuestion  = "question"
	fieldAnswer    = "answer"
	fieldTags      = "tags"
	fieldSummary   = "summary"
	fieldLogTime   = "log_time"
)

// Client creates note records in the bitable mirror.
type Client struct {
	httpClient *http.Client
	cfg        core.MirrorConfig
}

// NewClient creates a mirror client from the mirror configuration.
func NewClient(cfg core.MirrorConfig, timeout time.Duration) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = core.DefaultMirrorBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

// tokenResponse is the credential-exchange response envelope.
type tokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
}

// recordResponse is the record-creation response envelope.
type recordResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// FetchToken exchanges the application credentials for a short-lived tenant
// access token. The token is not cached; it is fetched per archival action,
// which is rare enough that the extra round trip does not matter.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"app_id":     c.cfg.AppID,
		"app_secret": c.cfg.AppSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	url := c.cfg.BaseURL + "/open-apis/auth/v3/tenant_access_token/internal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if parsed.Code != 0 {
		return "", fmt.Errorf("token exchange rejected (code %d): %s", parsed.Code, parsed.Msg)
	}
	if parsed.TenantAccessToken == "" {
		return "", ErrNoToken
	}
	return parsed.TenantAccessToken, nil
}

// CreateNote creates one note record in the paper table. The log_time field
// is sent as a millisecond timestamp, as bitable date fields expect.
func (c *Client) CreateNote(ctx context.Context, note core.Note) error {
	token, err := c.FetchToken(ctx)
	if err != nil {
		return err
	}

	loggedAt := note.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	payload := map[string]any{
		"fields": map[string]any{
			fieldPaperName: note.PaperName,
			fieldQuestion:  note.Question,
			fieldAnswer:    note.Answer,
			fieldTags:      note.Tags,
			fieldSummary:   note.Summary,
			fieldLogTime:   loggedAt.UnixMilli(),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	url := fmt.Sprintf("%s/open-apis/bitable/v1/apps/%s/tables/%s/records",
		c.cfg.BaseURL, c.cfg.AppToken, c.cfg.PaperTableID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build record request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record creation failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed recordResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode record response: %w", err)
	}
	if parsed.Code != 0 {
		return fmt.Errorf("record creation rejected (code %d): %s", parsed.Code, parsed.Msg)
	}
	return nil
}
