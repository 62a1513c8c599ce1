package restaurant_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/utils"
	"golang.org/x/sync/errgroup"
)

const (
	homeRestaurantCount = 10
	homeCategoryCount   = 8
)

// GetHome godoc
// @Summary Home page data
// @Description Ten restaurants from a random offset, eight shuffled categories, and the signed-in user (or null).
// @Tags Home
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.HomePage}
// @Failure 500 {object} models.ApiResponse
// @Router /home [get]
func GetHome(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		restaurants []models.Restaurant
		categories  []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var total int64
		if err := config.Gorm.WithContext(gctx).Model(&models.Restaurant{}).Count(&total).Error; err != nil {
			return err
		}
		return config.Gorm.WithContext(gctx).
			Order("id ASC").
			Offset(utils.RandomOffset(total)).
			Limit(homeRestaurantCount).
			Find(&restaurants).Error
	})

	g.Go(func() error {
		return config.Gorm.WithContext(gctx).
			Order("id ASC").
			Offset(utils.RandomBetween(1, 11)).
			Limit(homeCategoryCount).
			Find(&categories).Error
	})

	if err := g.Wait(); err != nil {
		config.Log.Errorw("❌ failed to load home page", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load home page"))
		return
	}

	page := models.HomePage{
		Restaurants: restaurants,
		Categories:  make([]models.CategoryResponse, 0, len(categories)),
	}
	if page.Restaurants == nil {
		page.Restaurants = []models.Restaurant{}
	}
	for _, cat := range utils.Shuffle(categories) {
		page.Categories = append(page.Categories, cat.ToResponse())
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		var user models.User
		if err := config.Gorm.WithContext(ctx).First(&user, "id = ?", userID).Error; err == nil {
			resp := user.ToResponse()
			page.User = &resp
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Home page fetched successfully", page))
}
