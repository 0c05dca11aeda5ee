package models

import "time"

type Restaurant struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OwnerUserID uint   `json:"owner_user_id" gorm:"not null;uniqueIndex"`
	Owner       User   `json:"-" gorm:"foreignKey:OwnerUserID"`
	Name        string `json:"name" gorm:"not null"`
	// Slug is the public, URL-safe key for the restaurant. Globally
	// unique; stable across edits unless the restaurant is renamed.
	Slug         string `json:"slug" gorm:"uniqueIndex;not null"`
	CurrencyCode string `json:"currency_code" gorm:"default:'USD'"`
	Tagline      string `json:"tagline"`
	LogoPath     string `json:"logo_path"`
	// ItemLimit caps the total number of items across all of the
	// restaurant's menus. Zero means unlimited.
	ItemLimit           int       `json:"item_limit" gorm:"default:0"`
	OnboardingCompleted bool      `json:"onboarding_completed" gorm:"default:false"`
	Menus               []Menu    `json:"menus,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
