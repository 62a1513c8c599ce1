package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventSearch          = "search"
	EventSetSearchFilter = "set search filter"
)

// AnalyticsEvent is one product-analytics capture such as a search or a filter selection.
type AnalyticsEvent struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Event      string         `json:"event" gorm:"type:varchar(100);index;not null"`
	DistinctID string         `json:"distinct_id" gorm:"type:varchar(255);index"`
	Properties datatypes.JSON `json:"properties" swaggertype:"object"`
	CapturedAt time.Time      `json:"captured_at" gorm:"index;not null"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

type CaptureEventRequest struct {
	Event      string         `json:"event" binding:"required,max=100"`
	DistinctID string         `json:"distinct_id" binding:"max=255"`
	Properties map[string]any `json:"properties"`
}
