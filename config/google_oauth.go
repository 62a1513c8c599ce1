package config

import (
	"context"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	GoogleOAuthConfig *oauth2.Config
	OIDCVerifier      *oidc.IDTokenVerifier

	// GoogleUserInfoURL is read by the OAuth callback after the code exchange.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// InitGoogleOAuth initializes Google OAuth configuration. Without client
// credentials Google sign in stays disabled and both globals remain nil.
func InitGoogleOAuth() {
	ctx := context.Background()

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" {
		Log.Warn("⚠️ GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set, Google sign in disabled")
		return
	}

	if redirectURL == "" {
		redirectURL = GetPublicAPIURL() + "/api/auth/google/callback"
		Log.Warnw("⚠️ GOOGLE_REDIRECT_URL not set, using default", "redirect_url", redirectURL)
	}

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// ID token verification for Google One Tap
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		Log.Errorw("❌ failed to create OIDC provider, One Tap disabled", "error", err)
	} else {
		OIDCVerifier = provider.Verifier(&oidc.Config{
			ClientID: clientID,
		})
	}

	Log.Info("✅ Google OAuth initialized")
}

// GetFrontendURL returns the web frontend base URL
func GetFrontendURL() string {
	return GetEnv("FRONTEND_URL", "http://localhost:3000")
}

// GetPublicAPIURL returns the externally reachable base URL of this API.
// Magic-link emails point here.
func GetPublicAPIURL() string {
	return GetEnv("PUBLIC_API_URL", "http://localhost:8080")
}
