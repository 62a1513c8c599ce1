package search_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
)

// GetSearch godoc
// @Summary Search restaurants
// @Description Case-insensitive match on restaurant name and categories, best reviewed first, at most 100 rows. Responds with a bare JSON array; a missing or blank q yields [].
// @Tags Search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {array} models.Restaurant
// @Failure 429 {object} models.ApiResponse "Rate limit exceeded"
// @Failure 500 {object} models.ApiResponse
// @Router /getSearch [get]
func GetSearch(c *gin.Context) {
	q := c.Query("q")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	cache := services.GetSearchCache()
	if cached, ok := cache.Get(ctx, q); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	restaurants, err := services.SearchRestaurants(ctx, config.Gorm, q)
	if err != nil {
		config.Log.Errorw("❌ search failed", "query", q, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to search restaurants"))
		return
	}

	cache.Set(ctx, q, restaurants)
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, restaurants)
}
