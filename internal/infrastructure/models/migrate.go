package models

import "gorm.io/gorm"

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Listing{},
		&Booking{},
		&Rental{},
		&Payment{},
		&Notification{},
		&Broadcast{},
		&Inquiry{},
	}
}

// AutoMigrate creates or updates the schema for every collection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
