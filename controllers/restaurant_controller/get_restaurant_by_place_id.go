package restaurant_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/utils"
	"gorm.io/gorm"
)

// now is swapped in tests to pin the weekday.
var now = time.Now

// GetRestaurantByPlaceID godoc
// @Summary Restaurant detail
// @Description Restaurant by Google place id, with today's opening hours picked out.
// @Tags Restaurants
// @Produce json
// @Param placeId path string true "Google place id"
// @Success 200 {object} models.ApiResponse{data=models.RestaurantDetail}
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /restos/{placeId} [get]
func GetRestaurantByPlaceID(c *gin.Context) {
	placeID := c.Param("placeId")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var restaurant models.Restaurant
	err := config.Gorm.WithContext(ctx).Where("place_id = ?", placeID).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Restaurant not found"))
		return
	}
	if err != nil {
		config.Log.Errorw("❌ failed to fetch restaurant", "place_id", placeID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch restaurant"))
		return
	}

	detail := models.RestaurantDetail{
		Restaurant: restaurant,
		TodayHours: restaurant.HoursFor(utils.Weekday(now())),
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Restaurant fetched successfully", detail))
}
