// Package templates implements the sharing model for presentation
// templates: global blueprints are read-only and forked into a private
// copy on activation, tenant rows flip directly, and at most one row
// per restaurant is active at a time.
package templates

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"menucraft-api/apperr"
	"menucraft-api/models"
	"menucraft-api/ownership"

	"gorm.io/gorm"
)

// TemplateView is a template row with its customization blob parsed.
// Customization is nil when the stored blob is malformed; one bad row
// never fails the whole listing.
type TemplateView struct {
	models.Template
	Customization map[string]interface{} `json:"customization"`
}

// ParseCustomization decodes the raw settings blob, returning nil for
// empty or malformed content.
func ParseCustomization(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}

// ListAvailable returns every global blueprint plus the restaurant's
// own templates, globals first.
func ListAvailable(db *gorm.DB, restaurantID uint) ([]TemplateView, error) {
	var rows []models.Template
	err := db.
		Where("restaurant_id IS NULL OR restaurant_id = ?", restaurantID).
		Order("restaurant_id IS NOT NULL, name").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	views := make([]TemplateView, 0, len(rows))
	for _, t := range rows {
		views = append(views, TemplateView{
			Template:      t,
			Customization: ParseCustomization(t.CustomizationSettings),
		})
	}
	return views, nil
}

// copyStyle carries the blueprint's presentation fields onto dst
// without touching identity, ownership, or activation state.
func copyStyle(dst, src *models.Template) {
	dst.FontFamily = src.FontFamily
	dst.PrimaryColor = src.PrimaryColor
	dst.BackgroundColor = src.BackgroundColor
	dst.LayoutStyle = src.LayoutStyle
	dst.CustomizationSettings = src.CustomizationSettings
}

// Activate makes templateID the single active template for
// restaurantID. Activating a global blueprint forks (or refreshes) a
// private copy keyed by the blueprint's name; the global row is never
// written. The deactivate-then-activate sequence runs in one
// transaction so concurrent activations by the same tenant cannot
// leave two rows active. The returned row is always tenant-owned.
func Activate(db *gorm.DB, templateID, restaurantID uint) (*models.Template, error) {
	var target models.Template
	if err := db.First(&target, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("template not found")
		}
		return nil, apperr.Internal(err)
	}
	if target.RestaurantID != nil && *target.RestaurantID != restaurantID {
		return nil, apperr.Forbidden("template belongs to another restaurant")
	}

	var active models.Template
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Template{}).
			Where("restaurant_id = ?", restaurantID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		if !target.IsGlobal() {
			if err := tx.Model(&target).Update("is_active", true).Error; err != nil {
				return err
			}
			target.IsActive = true
			active = target
			return nil
		}

		// Copy-on-write fork: reuse an earlier fork of the same
		// blueprint (matched by name) rather than stacking copies.
		var fork models.Template
		err := tx.Where("restaurant_id = ? AND name = ?", restaurantID, target.Name).First(&fork).Error
		switch {
		case err == nil:
			copyStyle(&fork, &target)
			fork.IsActive = true
			if err := tx.Save(&fork).Error; err != nil {
				return err
			}
			active = fork
		case errors.Is(err, gorm.ErrRecordNotFound):
			fork = models.Template{
				RestaurantID: &restaurantID,
				Name:         target.Name,
				IsActive:     true,
			}
			copyStyle(&fork, &target)
			if err := tx.Create(&fork).Error; err != nil {
				return err
			}
			active = fork
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &active, nil
}

// ActiveFor returns the restaurant's active template, or nil when the
// tenant has never activated one.
func ActiveFor(db *gorm.DB, restaurantID uint) (*models.Template, error) {
	var t models.Template
	err := db.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &t, nil
}

// Fallback synthesizes the template used when a restaurant has never
// activated one, so the presentation layer never renders against nil.
func Fallback() *models.Template {
	return &models.Template{
		Name:            "Classic",
		FontFamily:      "Georgia, serif",
		PrimaryColor:    "#1f2933",
		BackgroundColor: "#fdfdfb",
		LayoutStyle:     "list",
	}
}

// Delete removes a tenant-owned template. Active templates cannot be
// deleted. The template's logo asset is removed best-effort; a failed
// unlink is logged and never fails the delete.
func Delete(db *gorm.DB, templateID, userID uint, uploadDir string) error {
	t, err := ownership.Template(db, templateID, userID)
	if err != nil {
		return err
	}
	if t.IsActive {
		return apperr.Forbidden("cannot delete the active template")
	}
	if err := db.Delete(&models.Template{}, t.ID).Error; err != nil {
		return apperr.Internal(err)
	}
	if t.LogoPath != "" {
		if err := os.Remove(filepath.Join(uploadDir, filepath.Base(t.LogoPath))); err != nil {
			log.Printf("template %d: failed to remove logo asset: %v", t.ID, err)
		}
	}
	return nil
}
