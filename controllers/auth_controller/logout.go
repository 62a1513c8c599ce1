package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
)

// Logout godoc
// @Summary Logout
// @Description Clears the auth_token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	clearCookie(c, middleware.AuthCookieName, true)
	clearCookie(c, oauthStateCookie, true)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
