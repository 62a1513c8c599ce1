package auth_controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
)

// EmailCallback godoc
// @Summary Redeem a magic sign-in link
// @Description Consumes the emailed token, creates the user on first sign in, sets the auth cookie and redirects to the frontend.
// @Tags Auth - Email
// @Param token query string true "Token from the email"
// @Param email query string true "Email the link was sent to"
// @Success 307 "Redirect to frontend"
// @Router /auth/email/callback [get]
func EmailCallback(c *gin.Context) {
	email := services.NormalizeEmail(c.Query("email"))
	token := c.Query("token")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	err := services.NewMagicLinkService(config.Gorm).Consume(ctx, email, token)
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		redirectToFrontendWithError(c, "Sign-in link has expired")
		return
	case errors.Is(err, services.ErrInvalidToken):
		redirectToFrontendWithError(c, "Invalid sign-in link")
		return
	case err != nil:
		config.Log.Errorw("❌ failed to consume magic link", "email", email, "error", err)
		redirectToFrontendWithError(c, "Could not sign you in")
		return
	}

	user, err := findOrCreateEmailUser(c, email)
	if err != nil {
		config.Log.Errorw("❌ failed to save email user", "email", email, "error", err)
		redirectToFrontendWithError(c, "Could not sign you in")
		return
	}

	if _, err := startSession(c, user); err != nil {
		redirectToFrontendWithError(c, "Failed to generate token")
		return
	}

	config.Log.Infow("✅ magic link login", "email", user.Email)
	redirectToFrontend(c, "/?login="+models.ProviderEmail)
}
