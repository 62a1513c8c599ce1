package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
)

// EmailSignIn godoc
// @Summary Request a magic sign-in link
// @Description Creates a single-use link valid for 24 hours and emails it to the address.
// @Tags Auth - Email
// @Accept json
// @Produce json
// @Param request body models.EmailSignInRequest true "Email address"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /auth/email [post]
func EmailSignIn(c *gin.Context) {
	var req models.EmailSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email is required"))
		return
	}
	email := services.NormalizeEmail(req.Email)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, err := services.NewMagicLinkService(config.Gorm).Issue(ctx, email)
	if err != nil {
		config.Log.Errorw("❌ failed to issue magic link", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create sign-in link"))
		return
	}

	link := services.BuildMagicLinkURL(config.GetPublicAPIURL(), token, email)
	if err := services.GetMailer().SendMagicLink(ctx, email, link); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to send sign-in email"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Check your email for a sign-in link", gin.H{"email": email}))
}
