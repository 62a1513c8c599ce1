package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendClientSendsMagicLink(t *testing.T) {
	var got map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("RESEND_FROM_EMAIL", "")
	client, err := NewResendClient()
	require.NoError(t, err)

	link := "https://api.test/api/auth/email/callback?email=a%40b.c&token=t"
	require.NoError(t, client.WithEndpoint(srv.URL).SendMagicLink(context.Background(), "a@b.c", link))

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "a@b.c", got["to"])
	assert.Equal(t, defaultFromAddress, got["from"])
	assert.Equal(t, magicLinkSubject, got["subject"])
	assert.Contains(t, got["text"], link)
	assert.Contains(t, got["html"], "Masuk")
	assert.Contains(t, got["html"], "email=a%40b.c&amp;token=t")
}

func TestResendClientReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to"}`))
	}))
	defer srv.Close()

	t.Setenv("RESEND_API_KEY", "re_test")
	client, err := NewResendClient()
	require.NoError(t, err)

	err = client.WithEndpoint(srv.URL).SendMagicLink(context.Background(), "bad", "https://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestGetMailerFallsBackToLogging(t *testing.T) {
	t.Cleanup(func() { SetMailer(nil) })
	SetMailer(nil)

	t.Setenv("RESEND_API_KEY", "")
	_, err := NewResendClient()
	assert.Error(t, err)

	m := GetMailer()
	assert.IsType(t, LogMailer{}, m)
	assert.Equal(t, m, GetMailer())
	assert.NoError(t, m.SendMagicLink(context.Background(), "a@b.c", "https://x"))
}

func TestInitMailerPicksResendWhenConfigured(t *testing.T) {
	t.Cleanup(func() { SetMailer(nil) })

	t.Setenv("RESEND_API_KEY", "re_test")
	m := InitMailer()
	assert.IsType(t, &ResendClient{}, m)
	assert.Equal(t, m, GetMailer())

	t.Setenv("RESEND_API_KEY", "")
	assert.IsType(t, LogMailer{}, InitMailer())
}

func TestMagicLinkHTMLEscapesLink(t *testing.T) {
	body := BuildMagicLinkHTML(`https://x/?a=1&b="><script>`)
	assert.NotContains(t, body, "<script>")
	assert.True(t, strings.Contains(body, "Selamat datang di Nomato"))
}
