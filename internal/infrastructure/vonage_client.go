package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"project_eventbot/internal/entities"
)

const defaultMessagesBaseURL = "https://api.nexmo.com"

// SendError wraps a gateway rejection of a send attempt.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("messaging gateway rejected send (status %d): %s", e.StatusCode, e.Body)
}

// VonageClient sends WhatsApp messages through the Vonage Messages API using
// a fixed sender identity. One synchronous attempt per send, no retries.
type VonageClient struct {
	apiKey     string
	apiSecret  string
	from       string // sender number, leading "+" stripped
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewVonageClient(apiKey, apiSecret, from string, logger *slog.Logger) *VonageClient {
	return &VonageClient{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		from:       strings.TrimPrefix(from, "+"),
		baseURL:    defaultMessagesBaseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// SendText sends a plain-text WhatsApp message.
func (v *VonageClient) SendText(ctx context.Context, to, text string) (entities.DeliveryReceipt, error) {
	payload := map[string]any{
		"from":         v.from,
		"to":           to,
		"channel":      "whatsapp",
		"message_type": "text",
		"text":         text,
	}
	return v.send(ctx, payload)
}

// SendTemplate sends a pre-approved template message. A media URL becomes a
// header image component; body parameters map in order onto the template's
// positional text slots.
func (v *VonageClient) SendTemplate(ctx context.Context, to string, tmpl entities.TemplateMessage) (entities.DeliveryReceipt, error) {
	var components []map[string]any

	if tmpl.MediaURL != "" {
		components = append(components, map[string]any{
			"type": "header",
			"parameters": []map[string]any{
				{"type": "image", "image": map[string]string{"link": tmpl.MediaURL}},
			},
		})
	}

	if len(tmpl.BodyParameters) > 0 {
		params := make([]map[string]any, 0, len(tmpl.BodyParameters))
		for _, p := range tmpl.BodyParameters {
			params = append(params, map[string]any{"type": "text", "text": p.Value})
		}
		components = append(components, map[string]any{
			"type":       "body",
			"parameters": params,
		})
	}

	payload := map[string]any{
		"from":         v.from,
		"to":           to,
		"channel":      "whatsapp",
		"message_type": "custom",
		"custom": map[string]any{
			"type": "template",
			"template": map[string]any{
				"name": tmpl.Name,
				"language": map[string]string{
					"policy": "deterministic",
					"code":   tmpl.LanguageCode,
				},
				"components": components,
			},
		},
	}
	return v.send(ctx, payload)
}

func (v *VonageClient) send(ctx context.Context, payload map[string]any) (entities.DeliveryReceipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return entities.DeliveryReceipt{}, fmt.Errorf("encode send payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return entities.DeliveryReceipt{}, fmt.Errorf("build send request: %w", err)
	}
	req.SetBasicAuth(v.apiKey, v.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return entities.DeliveryReceipt{}, fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entities.DeliveryReceipt{}, &SendError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		MessageUUID string `json:"message_uuid"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return entities.DeliveryReceipt{}, fmt.Errorf("decode send response: %w", err)
	}

	v.logger.Info("message accepted by gateway", "message_uuid", result.MessageUUID)
	return entities.DeliveryReceipt{MessageID: result.MessageUUID}, nil
}
