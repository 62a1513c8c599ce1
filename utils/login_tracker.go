package utils

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
)

// LogLoginEvent records where a sign in came from. It writes through the pgx
// pool when one is configured and through GORM otherwise.
func LogLoginEvent(c *gin.Context, userID uuid.UUID) error {
	ctx := c.Request.Context()
	userAgent := c.GetHeader("User-Agent")

	event := models.LoginEvent{
		ID:         uuid.New(),
		UserID:     userID,
		LoggedInAt: time.Now().UTC(),
		IPAddress:  c.ClientIP(),
		UserAgent:  userAgent,
		DeviceType: ParseDeviceType(userAgent),
		Browser:    ParseBrowser(userAgent),
		OS:         ParseOS(userAgent),
	}

	var err error
	if config.DB != nil {
		_, err = config.DB.Exec(ctx, `
			INSERT INTO login_events (
				id, user_id, logged_in_at, ip_address, user_agent,
				device_type, browser, os
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			event.ID, event.UserID, event.LoggedInAt, event.IPAddress,
			event.UserAgent, event.DeviceType, event.Browser, event.OS,
		)
	} else {
		err = config.Gorm.WithContext(ctx).Create(&event).Error
	}
	if err != nil {
		config.Log.Errorw("❌ failed to log login event", "user_id", userID, "error", err)
		return err
	}

	config.Log.Infow("✅ login event logged", "user_id", userID, "ip", event.IPAddress, "device", event.DeviceType)
	return nil
}

func ParseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	return "desktop"
}

func ParseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	default:
		return "Other"
	}
}

// ParseOS checks mobile platforms first since their user agents also
// mention Linux or Mac OS.
func ParseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}
