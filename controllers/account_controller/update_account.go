package account_controller

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

// UpdateAccount godoc
// @Summary Update account
// @Description Changes name and/or username. Usernames are unique (case-insensitive).
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.AccountResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /account [patch]
func UpdateAccount(c *gin.Context) {
	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	if req.Name == nil && req.Username == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nothing to update"))
		return
	}

	user, ok := loadCurrentUser(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		updates["name"] = name
		user.Name = name
	}

	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))

		var taken models.User
		err := config.Gorm.WithContext(ctx).
			Where("username = ? AND id <> ?", username, user.ID).
			First(&taken).Error
		if err == nil {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, services.ErrUsernameTaken.Error()))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			config.Log.Errorw("❌ username lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update account"))
			return
		}

		updates["username"] = username
		user.Username = &username
	}

	if err := config.Gorm.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		config.Log.Errorw("❌ failed to update account", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update account"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Account updated successfully", user.ToAccount()))
}
