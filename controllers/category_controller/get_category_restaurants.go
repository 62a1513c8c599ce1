package category_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"github.com/nomato-app/nomato-backend/utils"
)

// GetCategoryRestaurants godoc
// @Summary Restaurants in a category
// @Description Restaurants whose category list contains the given name (case-insensitive), best reviewed first.
// @Tags Categories
// @Produce json
// @Param name path string true "Category name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Restaurant}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /categories/{name}/restaurants [get]
func GetCategoryRestaurants(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Category name is required"))
		return
	}

	page, limit := utils.ParsePagination(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	restaurants, total, err := services.RestaurantsInCategory(ctx, config.Gorm, name, page, limit)
	if err != nil {
		config.Log.Errorw("❌ failed to fetch category restaurants", "category", name, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch restaurants"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c,
		"Restaurants fetched successfully",
		restaurants,
		models.NewPagination(page, limit, total),
	))
}
