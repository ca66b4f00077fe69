package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
)

// DefaultConfirmationMessage is returned to shoppers whenever no generated
// confirmation text is available.
const DefaultConfirmationMessage = "Order placed successfully"

// maxConfirmationBody caps how much of the text service's reply is read.
const maxConfirmationBody = 64 << 10

// ErrConfirmationDisabled is returned when no text service is configured.
var ErrConfirmationDisabled = errors.New("confirmation service not configured")

// Confirmer produces a human-readable confirmation for a placed order.
type Confirmer interface {
	Confirm(ctx context.Context, order *domain.Order) (string, error)
}

// ConfirmationService asks an external chat-completion style endpoint for a
// short thank-you message.
type ConfirmationService struct {
	client *http.Client
	cfg    config.ConfirmationConfig
}

// NewConfirmationService builds the client. A nil http.Client uses one bound
// by the configured timeout.
func NewConfirmationService(cfg config.ConfirmationConfig, client *http.Client) *ConfirmationService {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &ConfirmationService{client: client, cfg: cfg}
}

// Enabled reports whether a text service URL is configured.
func (s *ConfirmationService) Enabled() bool {
	return s != nil && strings.TrimSpace(s.cfg.URL) != ""
}

type confirmationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type confirmationRequest struct {
	Messages  []confirmationMessage `json:"messages"`
	MaxTokens int                   `json:"max_tokens"`
}

// Confirm requests the message text. The reply is read at the configured
// gjson path; an empty result is an error.
func (s *ConfirmationService) Confirm(ctx context.Context, order *domain.Order) (string, error) {
	if !s.Enabled() {
		return "", ErrConfirmationDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
	defer cancel()

	payload, err := json.Marshal(confirmationRequest{
		Messages: []confirmationMessage{
			{Role: "system", Content: "You write one short, friendly order confirmation for an online store customer."},
			{Role: "user", Content: confirmationPrompt(order)},
		},
		MaxTokens: 80,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxConfirmationBody))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("confirmation service returned %d", resp.StatusCode)
	}

	text := strings.TrimSpace(gjson.GetBytes(body, s.cfg.ResponsePath).String())
	if text == "" {
		return "", fmt.Errorf("confirmation service reply has no text at %q", s.cfg.ResponsePath)
	}
	return text, nil
}

func confirmationPrompt(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer %s placed order %s totalling %.2f with these items:", order.CustomerName, order.ID, order.TotalAmount)
	for _, item := range order.Items {
		fmt.Fprintf(&b, " %d x %s;", item.Quantity, item.Name)
	}
	return b.String()
}
