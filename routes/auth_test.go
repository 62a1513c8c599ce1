package routes_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"github.com/nomato-app/nomato-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentLink struct {
	to   string
	link string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentLink
}

func (m *fakeMailer) SendMagicLink(_ context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentLink{to: to, link: link})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentLink {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

func useMailer(t *testing.T) *fakeMailer {
	m := &fakeMailer{}
	services.SetMailer(m)
	t.Cleanup(func() { services.SetMailer(nil) })
	return m
}

func TestRegisterAndLogin(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)

	auth, cookie := s.signUp("Rina@Example.com", "Rina")
	assert.Equal(t, "rina@example.com", auth.User.Email)
	assert.Equal(t, models.ProviderCredentials, auth.User.Provider)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, auth.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	claims, err := services.VerifySessionJWT(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID.String(), claims.UserID)

	rec := s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   gin.H{"email": "rina@example.com", "password": "supersecret"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Rina", decodeData[models.AuthResponse](t, rec).User.Name)

	var events int64
	require.NoError(t, s.db.Model(&models.LoginEvent{}).Where("user_id = ?", auth.User.ID).Count(&events).Error)
	assert.Equal(t, int64(2), events)

	var ev models.LoginEvent
	require.NoError(t, s.db.Where("user_id = ?", auth.User.ID).First(&ev).Error)
	assert.Equal(t, "mobile", ev.DeviceType)
	assert.Equal(t, "192.0.2.10", ev.IPAddress)
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	s.signUp("rina@example.com", "Rina")

	rec := s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   gin.H{"name": "Other", "email": "RINA@example.com", "password": "supersecret"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, services.ErrEmailTaken.Error(), decode(t, rec).Message)

	rec = s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   gin.H{"name": "Budi", "email": "budi@example.com", "password": "short"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   gin.H{"name": "Budi", "email": "not-an-email", "password": "supersecret"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	s.signUp("rina@example.com", "Rina")
	testutil.Seed(t, s.db, models.User{Email: "oauth@example.com", Provider: models.ProviderGoogle})

	for _, creds := range []gin.H{
		{"email": "rina@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "supersecret"},
		{"email": "oauth@example.com", "password": "supersecret"},
	} {
		rec := s.do(request{method: http.MethodPost, path: "/api/auth/login", body: creds})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, creds["email"])
		assert.Equal(t, services.ErrInvalidCredentials.Error(), decode(t, rec).Message)
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestSessionEndpoint(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)

	rec := s.get("/api/auth/session")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"No active session","data":null}`, rec.Body.String())

	rec = s.do(request{path: "/api/auth/session", cookie: &http.Cookie{Name: middleware.AuthCookieName, Value: "garbage"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":null`)

	auth, cookie := s.signUp("rina@example.com", "Rina")
	rec = s.do(request{path: "/api/auth/session", cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeData[models.UserResponse](t, rec)
	assert.Equal(t, auth.User.ID, user.ID)

	rec = s.do(request{path: "/api/auth/session", token: auth.Token})
	assert.Equal(t, auth.User.ID, decodeData[models.UserResponse](t, rec).ID)
}

func TestLogoutClearsCookie(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	_, cookie := s.signUp("rina@example.com", "Rina")

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/logout", cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := authCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestMagicLinkSignIn(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	mailer := useMailer(t)

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/email", body: gin.H{"email": "Sari@Example.com"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	sent := mailer.last(t)
	assert.Equal(t, "sari@example.com", sent.to)
	link, err := url.Parse(sent.link)
	require.NoError(t, err)
	assert.Equal(t, "api.test", link.Host)
	assert.Equal(t, "/api/auth/email/callback", link.Path)
	assert.Equal(t, "sari@example.com", link.Query().Get("email"))

	var stored models.VerificationToken
	require.NoError(t, s.db.First(&stored).Error)
	assert.NotEqual(t, link.Query().Get("token"), stored.TokenHash)

	rec = s.get(link.RequestURI())
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://front.test/?login=email", rec.Header().Get("Location"))
	session := authCookie(t, rec)

	var user models.User
	require.NoError(t, s.db.Where("email = ?", "sari@example.com").First(&user).Error)
	assert.Equal(t, models.ProviderEmail, user.Provider)
	assert.True(t, user.EmailVerified)

	claims, err := services.VerifySessionJWT(session.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)

	// A link works once.
	rec = s.get(link.RequestURI())
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "http://front.test/login?error="))
}

func TestMagicLinkClaimsUnverifiedRegistration(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	mailer := useMailer(t)

	squatter, _ := s.signUp("sari@example.com", "Not Sari")

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/email", body: gin.H{"email": "sari@example.com"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link, err := url.Parse(mailer.last(t).link)
	require.NoError(t, err)

	rec = s.get(link.RequestURI())
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://front.test/?login=email", rec.Header().Get("Location"))
	authCookie(t, rec)

	var user models.User
	require.NoError(t, s.db.Where("email = ?", "sari@example.com").First(&user).Error)
	assert.Equal(t, squatter.User.ID, user.ID)
	assert.True(t, user.EmailVerified)
	assert.Nil(t, user.PasswordHash)

	rec = s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   gin.H{"email": "sari@example.com", "password": "supersecret"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMagicLinkExpired(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	mailer := useMailer(t)

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/email", body: gin.H{"email": "sari@example.com"}})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, s.db.Model(&models.VerificationToken{}).
		Where("identifier = ?", "sari@example.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	link, err := url.Parse(mailer.last(t).link)
	require.NoError(t, err)
	rec = s.get(link.RequestURI())
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", location.Path)
	assert.Equal(t, "Sign-in link has expired", location.Query().Get("error"))

	var users int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestMagicLinkRequiresValidEmail(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	useMailer(t)

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/email", body: gin.H{"email": "nope"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleSignInDisabledWithoutCredentials(t *testing.T) {
	testutil.NoRedis(t)
	prevOAuth, prevVerifier := config.GoogleOAuthConfig, config.OIDCVerifier
	config.GoogleOAuthConfig, config.OIDCVerifier = nil, nil
	t.Cleanup(func() { config.GoogleOAuthConfig, config.OIDCVerifier = prevOAuth, prevVerifier })
	s := newServer(t)

	assert.Equal(t, http.StatusServiceUnavailable, s.get("/api/auth/google").Code)

	rec := s.do(request{method: http.MethodPost, path: "/api/auth/google/token", body: gin.H{"credential": "x"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.get("/api/auth/google/callback?state=a&code=b")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?error=")
}
