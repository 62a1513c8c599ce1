package models

import (
	"time"
)

// DefaultCategoryIcon is shown for categories that have no icon of their own.
const DefaultCategoryIcon = "https://tempatapp.sgp1.cdn.digitaloceanspaces.com/category/Rice.svg"

// Category is a cuisine or dish grouping shown on the home page.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Icon      *string   `json:"icon" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryResponse is the public category shape; Icon is never empty.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (c *Category) ToResponse() CategoryResponse {
	icon := DefaultCategoryIcon
	if c.Icon != nil && *c.Icon != "" {
		icon = *c.Icon
	}
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
		Icon: icon,
	}
}
