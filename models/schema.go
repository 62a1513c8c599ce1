package models

// All lists every table for AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Restaurant{},
		&User{},
		&VerificationToken{},
		&LoginEvent{},
		&AnalyticsEvent{},
	}
}
