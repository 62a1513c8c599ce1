package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
)

// ApiResponse drops a nil data field, but clients expect an explicit null.
var noSession = gin.H{"message": "No active session", "data": nil}

// GetSession godoc
// @Summary Current session
// @Description The signed-in user, or null data when there is no valid session.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Router /auth/session [get]
func GetSession(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, noSession)
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.Gorm.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusOK, noSession)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Session active", user.ToResponse()))
}
