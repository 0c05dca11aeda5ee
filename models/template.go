package models

import "time"

// Template is a presentation style for a public menu. Rows with a nil
// RestaurantID are global blueprints shared read-only by every tenant;
// rows with a RestaurantID are private to that restaurant and mutable.
// At most one template per restaurant has IsActive=true.
type Template struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RestaurantID *uint       `json:"restaurant_id" gorm:"index"`
	Restaurant   *Restaurant `json:"-" gorm:"foreignKey:RestaurantID"`
	Name         string      `json:"name" gorm:"not null"`

	FontFamily      string `json:"font_family"`
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
	LayoutStyle     string `json:"layout_style"`
	LogoPath        string `json:"logo_path"`

	// CustomizationSettings is an opaque JSON object owned by the
	// presentation layer. Malformed content is tolerated on read.
	CustomizationSettings string `json:"customization_settings" gorm:"type:text"`

	IsActive  bool      `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGlobal reports whether the template is a shared blueprint.
func (t *Template) IsGlobal() bool {
	return t.RestaurantID == nil
}
