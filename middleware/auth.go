package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
)

const (
	AuthCookieName = "auth_token"
	LoginPath      = "/login"

	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxUserName  = "userName"
)

// tokenFromRequest prefers the auth_token cookie and falls back to a Bearer
// header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func setClaims(c *gin.Context, claims *services.SessionClaims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserEmail, claims.Email)
	c.Set(ctxUserName, claims.Name)
}

// AuthMiddleware rejects requests without a valid session. The 401 body
// carries redirect "/login" so clients know where to send the user.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.RedirectResponse(c, "Authentication required", LoginPath))
			return
		}

		claims, err := services.VerifySessionJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.RedirectResponse(c, "Invalid or expired token", LoginPath))
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth loads the session when one is present and never rejects.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := services.VerifySessionJWT(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxUserEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
