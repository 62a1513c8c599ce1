package api_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/controllers/category_controller"
	"github.com/nomato-app/nomato-backend/controllers/restaurant_controller"
	"github.com/nomato-app/nomato-backend/middleware"
)

// SetupCatalogRoutes registers the public browsing endpoints.
func SetupCatalogRoutes(router *gin.RouterGroup) {
	router.GET("/home", middleware.OptionalAuth(), restaurant_controller.GetHome)
	router.GET("/restos/:placeId", restaurant_controller.GetRestaurantByPlaceID)

	categories := router.Group("/categories")
	{
		categories.GET("", category_controller.GetCategories)
		categories.GET("/:name/restaurants", category_controller.GetCategoryRestaurants)
	}
}
