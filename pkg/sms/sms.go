package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Sender delivers OTP codes to phone numbers.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// Config holds SMS gateway configuration
type Config struct {
	GatewayURL   string
	TokenURL     string
	ClientID     string
	ClientSecret string
	SenderID     string
}

// gatewaySender posts messages to an HTTP SMS gateway, authenticating
// with an OAuth2 client-credentials token.
type gatewaySender struct {
	client *http.Client
	config Config
}

// NewGatewaySender creates a sender backed by the configured SMS gateway.
func NewGatewaySender(config Config) Sender {
	cc := clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
	}
	client := cc.Client(context.Background())
	client.Timeout = 10 * time.Second

	return &gatewaySender{
		client: client,
		config: config,
	}
}

type gatewayMessage struct {
	To       string `json:"to"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

func (s *gatewaySender) SendOTP(ctx context.Context, phone, code string) error {
	body, err := json.Marshal(gatewayMessage{
		To:       phone,
		SenderID: s.config.SenderID,
		Message:  fmt.Sprintf("%s is your verification code. Valid for 5 minutes.", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms: gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// nullSender logs codes instead of sending them. Used in development and
// tests when no gateway is configured.
type nullSender struct{}

// NewNullSender creates a sender that only logs.
func NewNullSender() Sender {
	return nullSender{}
}

func (nullSender) SendOTP(_ context.Context, phone, code string) error {
	log.Printf("sms: (null sender) OTP for %s: %s", phone, code)
	return nil
}
