package auth_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"gorm.io/gorm"
)

// Register godoc
// @Summary Register with email and password
// @Tags Auth - Credentials
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Name, email and password (min 8 characters)"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Name, valid email and password are required"))
		return
	}

	hash, err := services.HashPassword(req.Password)
	if errors.Is(err, services.ErrWeakPassword) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to register"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	email := services.NormalizeEmail(req.Email)
	var existing models.User
	err = config.Gorm.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, services.ErrEmailTaken.Error()))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		config.Log.Errorw("❌ user lookup failed", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to register"))
		return
	}

	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Provider:     models.ProviderCredentials,
		PasswordHash: &hash,
	}
	if err := config.Gorm.WithContext(ctx).Create(&user).Error; err != nil {
		config.Log.Errorw("❌ failed to create user", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to register"))
		return
	}

	token, err := startSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Registration successful", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
