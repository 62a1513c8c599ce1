package auth_controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
)

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state token, exchanges the code, fetches the Google profile, creates or links the user, sets the auth cookie and redirects to the frontend.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Redirect to frontend"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		redirectToFrontendWithError(c, "Google sign in is not configured")
		return
	}

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		config.Log.Warn("❌ OAuth state mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	clearCookie(c, oauthStateCookie, true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		config.Log.Errorw("❌ code exchange failed", "error", err)
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	client := config.GoogleOAuthConfig.Client(ctx, token)
	resp, err := client.Get(config.GoogleUserInfoURL)
	if err != nil {
		config.Log.Errorw("❌ failed to get user info", "error", err)
		redirectToFrontendWithError(c, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		config.Log.Errorw("❌ bad user info response", "status", resp.StatusCode, "error", err)
		redirectToFrontendWithError(c, "Failed to read user info")
		return
	}

	var googleUser models.GoogleUserInfo
	if err := json.Unmarshal(body, &googleUser); err != nil {
		redirectToFrontendWithError(c, "Failed to decode user info")
		return
	}
	if googleUser.GoogleID() == "" || googleUser.Email == "" {
		redirectToFrontendWithError(c, "Google account is missing id or email")
		return
	}

	emailVerified := googleUser.EmailVerified || googleUser.VerifiedEmail
	user, err := createOrLinkGoogleUser(c, &googleUser, emailVerified)
	if errors.Is(err, errUnverifiedEmailTaken) {
		config.Log.Warnw("⚠️ unverified Google email matches an existing account", "email", googleUser.Email)
		redirectToFrontendWithError(c, "This email is already registered. Sign in with an email link first")
		return
	}
	if err != nil {
		config.Log.Errorw("❌ failed to save Google user", "email", googleUser.Email, "error", err)
		redirectToFrontendWithError(c, "Could not sign you in")
		return
	}

	if _, err := startSession(c, user); err != nil {
		config.Log.Errorw("❌ failed to start session", "error", err)
		redirectToFrontendWithError(c, "Failed to generate token")
		return
	}

	config.Log.Infow("✅ Google login", "email", user.Email, "verified", user.EmailVerified)
	redirectToFrontend(c, fmt.Sprintf("/?login=%s", models.ProviderGoogle))
}
