package config

import (
	"menucraft-api/models"
)

// SeedTemplates inserts the built-in global template blueprints if the
// table has none yet. Global rows have a nil RestaurantID and are never
// mutated after seeding.
func SeedTemplates() error {
	var count int64
	if err := DB.Model(&models.Template{}).Where("restaurant_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	globals := []models.Template{
		{
			Name:                  "Classic",
			FontFamily:            "Georgia, serif",
			PrimaryColor:          "#1f2933",
			BackgroundColor:       "#fdfdfb",
			LayoutStyle:           "list",
			CustomizationSettings: `{"showPrices":true,"showImages":false}`,
		},
		{
			Name:                  "Modern",
			FontFamily:            "Inter, sans-serif",
			PrimaryColor:          "#e63946",
			BackgroundColor:       "#ffffff",
			LayoutStyle:           "grid",
			CustomizationSettings: `{"showPrices":true,"showImages":true,"columns":2}`,
		},
		{
			Name:                  "Dark Bistro",
			FontFamily:            "Playfair Display, serif",
			PrimaryColor:          "#f4a261",
			BackgroundColor:       "#14141a",
			LayoutStyle:           "list",
			CustomizationSettings: `{"showPrices":true,"showImages":true}`,
		},
	}
	return DB.Create(&globals).Error
}
