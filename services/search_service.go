package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomato-app/nomato-backend/models"
	"gorm.io/gorm"
)

const MaxSearchResults = 100

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s safe to embed in a LIKE pattern that uses ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchRestaurants matches q case-insensitively against the restaurant name
// and its category list. Best-reviewed places come first.
func SearchRestaurants(ctx context.Context, db *gorm.DB, q string) ([]models.Restaurant, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	restaurants := []models.Restaurant{}
	if q == "" {
		return restaurants, nil
	}

	pattern := "%" + EscapeLike(q) + "%"
	err := db.WithContext(ctx).
		Where(`LOWER(gofood_name) LIKE ? ESCAPE '\'`, pattern).
		Or(`LOWER(CAST(categories AS TEXT)) LIKE ? ESCAPE '\'`, pattern).
		Order("user_ratings_total DESC").
		Order("id ASC").
		Limit(MaxSearchResults).
		Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return restaurants, nil
}

// RestaurantsInCategory pages through restaurants whose category list holds
// name exactly, ignoring case.
func RestaurantsInCategory(ctx context.Context, db *gorm.DB, name string, page, limit int) ([]models.Restaurant, int64, error) {
	pattern := `%"` + EscapeLike(strings.ToLower(strings.TrimSpace(name))) + `"%`
	query := db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where(`LOWER(CAST(categories AS TEXT)) LIKE ? ESCAPE '\'`, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count category restaurants: %w", err)
	}

	restaurants := []models.Restaurant{}
	err := query.
		Order("user_ratings_total DESC").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&restaurants).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list category restaurants: %w", err)
	}
	return restaurants, total, nil
}
