package models

import "time"

// MenuType distinguishes how a menu is meant to be consumed
type MenuType string

const (
	MenuTypeDineIn   MenuType = "dine_in"
	MenuTypeTakeaway MenuType = "takeaway"
	MenuTypeDelivery MenuType = "delivery"
)

type Menu struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Name         string     `json:"name" gorm:"not null"`
	MenuType     MenuType   `json:"menu_type" gorm:"not null;default:'dine_in'"`
	IsActive     bool       `json:"is_active" gorm:"default:false"`
	DisplayOrder int        `json:"display_order" gorm:"default:0"`
	Categories   []Category `json:"categories,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	MenuID uint `json:"menu_id" gorm:"not null;index"`
	// ParentID is nil for top-level categories. A non-nil parent must
	// belong to the same menu.
	ParentID      *uint      `json:"parent_id"`
	Parent        *Category  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Name          string     `json:"name" gorm:"not null"`
	IsVisible     bool       `json:"is_visible" gorm:"default:true"`
	DisplayOrder  int        `json:"display_order" gorm:"default:0"`
	ImagePath     string     `json:"image_path"`
	Subcategories []Category `json:"subcategories,omitempty" gorm:"foreignKey:ParentID"`
	Items         []Item     `json:"items,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Item struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CategoryID  uint   `json:"category_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	// Either Price is set, or PriceMin/PriceMax describe a range.
	Price    *float64 `json:"price"`
	PriceMin *float64 `json:"price_min"`
	PriceMax *float64 `json:"price_max"`
	// JSON objects mapping a locale code to a translated string,
	// e.g. {"tr": "Mercimek Çorbası"}. Stored as raw text.
	NameTranslations        string    `json:"name_translations" gorm:"type:text"`
	DescriptionTranslations string    `json:"description_translations" gorm:"type:text"`
	IsAvailable             bool      `json:"is_available" gorm:"default:true"`
	DisplayOrder            int       `json:"display_order" gorm:"default:0"`
	ImagePath               string    `json:"image_path"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
