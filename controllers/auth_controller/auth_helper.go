package auth_controller

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"github.com/nomato-app/nomato-backend/utils"
	"gorm.io/gorm"
)

const oauthStateCookie = "oauth_state"

// errUnverifiedEmailTaken means Google could not vouch for an address that
// already belongs to another account, so the two are not linked.
var errUnverifiedEmailTaken = errors.New("email belongs to another account and Google has not verified it")

// createOrLinkGoogleUser finds the user by Google id, then by email, and
// creates one when neither exists. An email match is linked only when Google
// has verified the address.
func createOrLinkGoogleUser(c *gin.Context, googleUser *models.GoogleUserInfo, emailVerified bool) (*models.User, error) {
	db := config.Gorm.WithContext(c.Request.Context())
	googleID := googleUser.GoogleID()
	email := services.NormalizeEmail(googleUser.Email)

	var user models.User
	err := db.Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("email = ?", email).First(&user).Error
		if err == nil && !emailVerified {
			return nil, errUnverifiedEmailTaken
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:         email,
			Name:          googleUser.Name,
			GoogleID:      &googleID,
			Provider:      models.ProviderGoogle,
			EmailVerified: emailVerified,
		}
		if googleUser.Picture != "" {
			user.Image = &googleUser.Picture
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	// Existing user: only fill gaps, never overwrite what they chose.
	updates := map[string]interface{}{}
	if user.Name == "" && googleUser.Name != "" {
		updates["name"] = googleUser.Name
		user.Name = googleUser.Name
	}
	if user.Image == nil && googleUser.Picture != "" {
		updates["image"] = googleUser.Picture
		user.Image = &googleUser.Picture
	}
	if user.GoogleID == nil {
		updates["google_id"] = googleID
		user.GoogleID = &googleID
	}
	if emailVerified && !user.EmailVerified {
		claimUnverifiedAccount(updates, &user)
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// claimUnverifiedAccount marks the address verified. Whoever registered the
// row before proving the address owned it never did, so their password goes.
func claimUnverifiedAccount(updates map[string]interface{}, user *models.User) {
	updates["email_verified"] = true
	user.EmailVerified = true
	if user.PasswordHash != nil {
		updates["password_hash"] = gorm.Expr("NULL")
		user.PasswordHash = nil
	}
}

// findOrCreateEmailUser backs magic-link sign in. The address is verified by
// the click itself.
func findOrCreateEmailUser(c *gin.Context, email string) (*models.User, error) {
	db := config.Gorm.WithContext(c.Request.Context())

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:         email,
			Provider:      models.ProviderEmail,
			EmailVerified: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if !user.EmailVerified {
		updates := map[string]interface{}{}
		claimUnverifiedAccount(updates, &user)
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// startSession logs the sign in, issues the JWT and sets the auth cookie.
func startSession(c *gin.Context, user *models.User) (string, error) {
	if err := utils.LogLoginEvent(c, user.ID); err != nil {
		config.Log.Warnw("⚠️ failed to log login event", "user_id", user.ID, "error", err)
	}

	jwtService := services.GetJWTService()
	token, err := jwtService.GenerateSessionJWT(user.ID, user.Email, user.Name)
	if err != nil {
		return "", err
	}

	setAuthCookie(c, token, int(jwtService.Expiry().Seconds()))
	return token, nil
}

func setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookieName,
		token,
		maxAge,
		"/",
		"",
		config.IsProduction() || utils.IsSecureRequest(c),
		true,
	)
}

func clearCookie(c *gin.Context, name string, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", config.IsProduction() || utils.IsSecureRequest(c), httpOnly)
}

func redirectToFrontend(c *gin.Context, path string) {
	c.Redirect(http.StatusTemporaryRedirect, config.GetFrontendURL()+path)
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	redirectToFrontend(c, "/login?error="+url.QueryEscape(errorMsg))
}
