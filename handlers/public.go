package handlers

import (
	"errors"
	"net/http"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/hierarchy"
	"menucraft-api/models"
	"menucraft-api/templates"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// publicRestaurant is the slice of a restaurant safe to show without
// authentication — no owner identifiers, no plan fields.
type publicRestaurant struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CurrencyCode string `json:"currency_code"`
	Tagline      string `json:"tagline"`
	LogoPath     string `json:"logo_path"`
}

// GetPublicMenu serves the unauthenticated, slug-keyed menu page:
// the restaurant's active menu with visible categories and available
// items only, plus the active (or fallback) template.
func GetPublicMenu(c *gin.Context) {
	s := c.Param("slug")

	var rest models.Restaurant
	if err := config.DB.Where("slug = ?", s).First(&rest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
			return
		}
		fail(c, apperr.Internal(err))
		return
	}

	var menu models.Menu
	err := config.DB.
		Where("restaurant_id = ? AND is_active = ?", rest.ID, true).
		Order("display_order").
		First(&menu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
			return
		}
		fail(c, apperr.Internal(err))
		return
	}

	var cats []models.Category
	if err := config.DB.
		Where("menu_id = ? AND is_visible = ?", menu.ID, true).
		Order("display_order").
		Find(&cats).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	tree, err := hierarchy.BuildTree(cats)
	if err != nil {
		fail(c, err)
		return
	}
	if err := attachItems(config.DB, tree, true); err != nil {
		fail(c, err)
		return
	}

	tmpl, err := templates.ActiveFor(config.DB, rest.ID)
	if err != nil {
		fail(c, err)
		return
	}
	if tmpl == nil {
		tmpl = templates.Fallback()
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": publicRestaurant{
			Name:         rest.Name,
			Slug:         rest.Slug,
			CurrencyCode: rest.CurrencyCode,
			Tagline:      rest.Tagline,
			LogoPath:     rest.LogoPath,
		},
		"menu": gin.H{
			"name":       menu.Name,
			"menu_type":  menu.MenuType,
			"categories": tree,
		},
		"template": gin.H{
			"name":             tmpl.Name,
			"font_family":      tmpl.FontFamily,
			"primary_color":    tmpl.PrimaryColor,
			"background_color": tmpl.BackgroundColor,
			"layout_style":     tmpl.LayoutStyle,
			"customization":    templates.ParseCustomization(tmpl.CustomizationSettings),
		},
	})
}
