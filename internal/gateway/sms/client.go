// Package sms is the HTTP client for the outbound SMS gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts messages to a JSON SMS gateway.
type Client struct {
	URL    string
	APIKey string
	Sender string
	HTTP   *http.Client
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

type sendResponse struct {
	ID        string `json:"id"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error"`
}

func New(url, apiKey, sender string) *Client {
	return &Client{
		URL:    strings.TrimSpace(url),
		APIKey: apiKey,
		Sender: sender,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers message to phone and returns the gateway message id.
// An empty from falls back to the client's default sender.
func (c *Client) Send(ctx context.Context, from, phone, message string) (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("sms gateway url is not configured")
	}
	if from == "" {
		from = c.Sender
	}
	body, err := json.Marshal(sendRequest{To: phone, From: from, Message: message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("sms gateway: read response: %w", err)
	}
	var out sendResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(out.Error)
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("sms gateway: status %d: %s", resp.StatusCode, msg)
	}
	if out.Error != "" {
		return "", fmt.Errorf("sms gateway: %s", out.Error)
	}
	if out.ID != "" {
		return out.ID, nil
	}
	return out.MessageID, nil
}
