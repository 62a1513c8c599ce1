package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
)

// GoogleToken godoc
// @Summary Sign in with a Google ID token
// @Description Verifies a Google One Tap credential via OpenID Connect, creates or links the user and starts a session.
// @Tags Auth - Google OAuth
// @Accept json
// @Produce json
// @Param request body models.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /auth/google/token [post]
func GoogleToken(c *gin.Context) {
	if config.OIDCVerifier == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign in is not configured"))
		return
	}

	var req models.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "credential is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	idToken, err := config.OIDCVerifier.Verify(ctx, req.Credential)
	if err != nil {
		config.Log.Warnw("❌ Google ID token rejected", "error", err)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid Google credential"))
		return
	}

	var googleUser models.GoogleUserInfo
	if err := idToken.Claims(&googleUser); err != nil || googleUser.Email == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Google credential is missing email"))
		return
	}
	if googleUser.Sub == "" {
		googleUser.Sub = idToken.Subject
	}

	user, err := createOrLinkGoogleUser(c, &googleUser, googleUser.EmailVerified)
	if errors.Is(err, errUnverifiedEmailTaken) {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "This email is already registered. Sign in with an email link first"))
		return
	}
	if err != nil {
		config.Log.Errorw("❌ failed to save Google user", "email", googleUser.Email, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Could not sign you in"))
		return
	}

	token, err := startSession(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Signed in with Google", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
