package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"gorm.io/gorm"
)

// Login godoc
// @Summary Sign in with email and password
// @Tags Auth - Credentials
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	err := config.Gorm.WithContext(ctx).
		Where("email = ?", services.NormalizeEmail(req.Email)).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		config.Log.Errorw("❌ user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to sign in"))
		return
	}

	// Same answer for unknown email, OAuth-only account and wrong password.
	if err != nil || user.PasswordHash == nil || !services.VerifyPassword(*user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, services.ErrInvalidCredentials.Error()))
		return
	}

	token, err := startSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
