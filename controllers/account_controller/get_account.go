package account_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"gorm.io/gorm"
)

// GetAccount godoc
// @Summary Current account
// @Description Profile of the signed-in user. Unauthenticated requests get 401 with redirect "/login".
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AccountResponse}
// @Failure 401 {object} models.ApiResponse
// @Router /account [get]
func GetAccount(c *gin.Context) {
	user, ok := loadCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Account fetched successfully", user.ToAccount()))
}

// loadCurrentUser writes the error response itself when it returns false.
// A token for a deleted user is treated like no session at all.
func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.RedirectResponse(c, "Authentication required", middleware.LoginPath))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	err := config.Gorm.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, models.RedirectResponse(c, "Account no longer exists", middleware.LoginPath))
		return nil, false
	}
	if err != nil {
		config.Log.Errorw("❌ failed to load account", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load account"))
		return nil, false
	}
	return &user, true
}
