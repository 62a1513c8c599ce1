package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/utils"
)

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow: stores a state token in a cookie and redirects to Google's consent page.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Temporary redirect to Google OAuth"
// @Failure 503 {object} models.ApiResponse "Google sign in not configured"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign in is not configured"))
		return
	}

	state := uuid.New().String()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		oauthStateCookie,
		state,
		600, // 10 minutes to finish the consent screen
		"/",
		"",
		config.IsProduction() || utils.IsSecureRequest(c),
		true,
	)

	authURL := config.GoogleOAuthConfig.AuthCodeURL(state)
	config.Log.Debugw("🔗 redirecting to Google", "url", authURL)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}
