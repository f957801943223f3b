// Package mailer sends order confirmations through the EmailJS REST API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	defaultTimeout  = 10 * time.Second
)

// EmailJS implements ports.Mailer. It is disabled when no public key is set.
type EmailJS struct {
	endpoint   string
	publicKey  string
	privateKey string
	http       *http.Client
}

// Config holds the EmailJS account keys.
type Config struct {
	Endpoint   string
	PublicKey  string
	PrivateKey string // optional access token for server-side calls
}

func NewEmailJS(cfg Config, httpClient *http.Client) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &EmailJS{
		endpoint:   cfg.Endpoint,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		http:       httpClient,
	}
}

func (m *EmailJS) Enabled() bool {
	return m.publicKey != ""
}

type sendRequest struct {
	ServiceID      string `json:"service_id"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"`
	AccessToken    string `json:"accessToken,omitempty"`
	TemplateParams any    `json:"template_params"`
}

// Send posts one templated email. Any non-200 answer is an error carrying
// the provider's message.
func (m *EmailJS) Send(ctx context.Context, serviceID, templateID string, params any) error {
	if !m.Enabled() {
		return fmt.Errorf("emailjs: no public key configured")
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         m.publicKey,
		AccessToken:    m.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
