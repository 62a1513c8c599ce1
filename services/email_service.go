package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nomato-app/nomato-backend/config"
)

const (
	resendEndpoint     = "https://api.resend.com/emails"
	defaultFromAddress = "Nomato <noreply@nomato.app>"
	magicLinkSubject   = "Hi, we recieved for your request! Please verify yourself to continue single sign on"
)

// Mailer sends transactional email. ResendClient is the production one.
type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewResendClient reads RESEND_API_KEY and RESEND_FROM_EMAIL. Without an
// API key it returns an error so callers can fall back to logging links.
func NewResendClient() (*ResendClient, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable not set")
	}

	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = defaultFromAddress
	}

	return &ResendClient{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// WithEndpoint points the client at another Resend-compatible URL.
func (r *ResendClient) WithEndpoint(endpoint string) *ResendClient {
	r.endpoint = endpoint
	return r
}

func (r *ResendClient) SendMagicLink(ctx context.Context, to, link string) error {
	payload := map[string]interface{}{
		"from":    r.from,
		"to":      to,
		"subject": magicLinkSubject,
		"html":    BuildMagicLinkHTML(link),
		"text":    BuildMagicLinkText(link),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		config.Log.Errorw("[resend] request failed", "to", to, "error", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		config.Log.Errorw("[resend] api error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	config.Log.Infow("[resend] magic link sent", "to", to)
	return nil
}

// LogMailer writes links to the log instead of sending them. Used when no
// Resend key is configured.
type LogMailer struct{}

func (LogMailer) SendMagicLink(_ context.Context, to, link string) error {
	config.Log.Warnw("📧 email delivery disabled, magic link logged instead", "to", to, "link", link)
	return nil
}

var (
	mailerMu sync.RWMutex
	mailer   Mailer
)

// InitMailer installs the Resend client, or a LogMailer when Resend is not
// configured, and returns it.
func InitMailer() Mailer {
	var m Mailer
	client, err := NewResendClient()
	if err != nil {
		config.Log.Warnw("⚠️ Resend not configured, magic links will only be logged", "error", err)
		m = LogMailer{}
	} else {
		config.Log.Infow("✅ Resend mailer initialized", "from", client.from)
		m = client
	}
	SetMailer(m)
	return m
}

// GetMailer returns the installed mailer, running InitMailer on first use.
func GetMailer() Mailer {
	mailerMu.RLock()
	m := mailer
	mailerMu.RUnlock()
	if m != nil {
		return m
	}
	return InitMailer()
}

// SetMailer replaces the global mailer.
func SetMailer(m Mailer) {
	mailerMu.Lock()
	defer mailerMu.Unlock()
	mailer = m
}

func BuildMagicLinkText(link string) string {
	return fmt.Sprintf("Selamat datang di Nomato\n\nTerima kasih sudah melakukan registrasi. Silahkan klik link dibawah untuk login:\n%s\n", link)
}

func BuildMagicLinkHTML(link string) string {
	escaped := html.EscapeString(link)
	return fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Nomato</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', sans-serif; background-color: #ffffff; color: #1a1a1a;">
    <div style="max-width: 600px; margin: 0 auto; padding: 48px 20px;">
      <h1 style="font-size: 28px; font-weight: 700; margin: 0 0 16px 0;">Selamat datang di Nomato</h1>
      <p style="font-size: 16px; color: #555555; line-height: 1.7; margin: 0 0 32px 0;">
        Terima kasih sudah melakukan registrasi. Silahkan klik tombol dibawah untuk login:
      </p>
      <a href="%s" target="_blank" style="display: inline-block; background-color: #e23744; color: #ffffff; padding: 14px 36px; border-radius: 8px; text-decoration: none; font-weight: 600;">Masuk</a>
      <p style="font-size: 13px; color: #999999; margin-top: 40px; word-break: break-all;">%s</p>
    </div>
  </body>
</html>`, escaped, escaped)
}
