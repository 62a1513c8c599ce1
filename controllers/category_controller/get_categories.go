package category_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	category_cache "github.com/nomato-app/nomato-backend/cache"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
)

// GetCategories godoc
// @Summary List categories
// @Description All categories ordered by name. Categories without an icon get the default one.
// @Tags Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryResponse}
// @Failure 500 {object} models.ApiResponse
// @Router /categories [get]
func GetCategories(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	categories, err := LoadCategories(ctx)
	if err != nil {
		config.Log.Errorw("❌ failed to fetch categories", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", categories))
}

// LoadCategories serves from the in-process cache and refills it on a miss.
func LoadCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	if cached, ok := category_cache.GetList(); ok {
		return cached, nil
	}

	var rows []models.Category
	if err := config.Gorm.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]models.CategoryResponse, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].ToResponse())
	}
	category_cache.SetList(categories)
	return categories, nil
}
