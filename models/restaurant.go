package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Restaurant is one listed place. Field names follow the scraped source data
// (gofood_name, place_id) because the web client reads them verbatim.
type Restaurant struct {
	ID                uint           `json:"-" gorm:"primaryKey"`
	PlaceID           string         `json:"place_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	GofoodName        string         `json:"gofood_name" gorm:"type:varchar(255);index;not null"`
	AddressComponents datatypes.JSON `json:"address_components" swaggertype:"object"`
	Rating            float64        `json:"rating"`
	UserRatingsTotal  int            `json:"user_ratings_total" gorm:"index"`
	Categories        datatypes.JSON `json:"categories" swaggertype:"array,string"`
	PriceLevel        string         `json:"price_level" gorm:"type:varchar(16)"`
	Thumbnail         string         `json:"thumbnail" gorm:"type:text"`
	OpeningHours      datatypes.JSON `json:"opening_hours" swaggertype:"object"`
	CreatedAt         time.Time      `json:"-" gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `json:"-" gorm:"autoUpdateTime"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// CategoryNames decodes the categories column. Malformed data yields nil.
func (r *Restaurant) CategoryNames() []string {
	if len(r.Categories) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(r.Categories, &names); err != nil {
		return nil
	}
	return names
}

// HoursFor returns the opening hours entry for a lowercase weekday name
// ("monday"), or nil when the restaurant has none.
func (r *Restaurant) HoursFor(weekday string) *string {
	if len(r.OpeningHours) == 0 {
		return nil
	}
	var hours map[string]string
	if err := json.Unmarshal(r.OpeningHours, &hours); err != nil {
		return nil
	}
	value, ok := hours[strings.ToLower(weekday)]
	if !ok {
		return nil
	}
	return &value
}

// RestaurantDetail is the restaurant page payload.
type RestaurantDetail struct {
	Restaurant
	TodayHours *string `json:"today_hours"`
}

// HomePage is the data behind the landing page.
type HomePage struct {
	Restaurants []Restaurant       `json:"restaurant"`
	Categories  []CategoryResponse `json:"categories"`
	User        *UserResponse      `json:"user"`
}
