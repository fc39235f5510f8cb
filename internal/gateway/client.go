package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-channel-timer/internal/observability/logging"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/tracing"
)

// Client talks to the chat-gateway HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) ResolveSpace(ctx context.Context, spaceID string) (*Space, error) {
	var space Space
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/spaces/%s", url.PathEscape(spaceID)), &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) ResolveChannel(ctx context.Context, spaceID, channelID string) (*Channel, error) {
	path := fmt.Sprintf("/api/v1/spaces/%s/channels/%s", url.PathEscape(spaceID), url.PathEscape(channelID))

	var channel Channel
	if err := c.getJSON(ctx, path, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (c *Client) ResolveMember(ctx context.Context, spaceID, userID string) (*Member, error) {
	path := fmt.Sprintf("/api/v1/spaces/%s/members/%s", url.PathEscape(spaceID), url.PathEscape(userID))

	var member Member
	if err := c.getJSON(ctx, path, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

type sendMessageRequest struct {
	Content string `json:"content"`
	ReplyTo string `json:"reply_to,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, channelID, replyToID, content string) (*MessageRef, error) {
	u, err := c.endpoint(fmt.Sprintf("/api/v1/channels/%s/messages", url.PathEscape(channelID)))
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(sendMessageRequest{Content: content, ReplyTo: replyToID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send message to chat gateway",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		slog.WarnContext(ctx, "chat gateway rejected message send",
			slog.String("channel_id", channelID),
			slog.Int("status_code", resp.StatusCode),
		)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrSendFailed, err)
	}

	var ref MessageRef
	if err := json.Unmarshal(respBody, &ref); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrSendFailed, err)
	}

	return &ref, nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/api/v1/channels/%s/messages/%s", url.PathEscape(channelID), url.PathEscape(messageID))
	u, err := c.endpoint(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return statusError(resp.StatusCode)
}

func (c *Client) Ping(ctx context.Context) error {
	u, err := c.endpoint("/health")
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach chat gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u, err := c.endpoint(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to chat gateway",
			slog.String("url", u),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path
	return u.String(), nil
}

func (c *Client) decorate(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)
}

func statusError(code int) error {
	switch {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusForbidden:
		return ErrPermissionDenied
	case code >= 200 && code < 300:
		return nil
	default:
		return fmt.Errorf("unexpected status code: %d", code)
	}
}
