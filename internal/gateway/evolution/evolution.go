// Package evolution integrates with the Evolution API, the WhatsApp gateway
// the onboarding flow talks through.
package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pratico/internal/platform/config"
)

type Client struct {
	baseURL  string
	apiKey   string
	instance string
	http     *http.Client
}

func NewClient(cfg config.EvolutionConfig) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		instance: cfg.Instance,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
	// Small delay so prompts read as typed, not fired by a bot.
	Delay int `json:"delay"`
}

// SendText delivers a chat message. Evolution answers 201 on success.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	payload, err := json.Marshal(sendTextRequest{Number: phone, Text: text, Delay: 1200})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}
	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("evolution api returned status %d", resp.StatusCode)
	}
	return nil
}
