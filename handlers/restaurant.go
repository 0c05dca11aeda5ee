package handlers

import (
	"net/http"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/middleware"
	"menucraft-api/models"
	"menucraft-api/ownership"
	"menucraft-api/slug"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Restaurant Profile ──────────────────────────────────────────────────────

// Optional fields are pointers: an omitted field keeps the stored
// value, an explicit value (including "") overwrites it.
type SaveRestaurantRequest struct {
	Name         string  `json:"name" binding:"required"`
	CurrencyCode string  `json:"currency_code"`
	Tagline      *string `json:"tagline"`
	ItemLimit    *int    `json:"item_limit"`
}

// SaveRestaurant creates the caller's restaurant on first save and
// updates it afterwards. Creation derives a unique slug and
// auto-provisions a default active menu; renaming re-derives the slug.
// Slug generation and the write happen in one transaction so the
// unique index closes the probe/insert race.
func SaveRestaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req SaveRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := ownership.RestaurantOf(config.DB, userID)
	if err != nil && apperr.ErrorCode(err) != apperr.ENotFound {
		fail(c, err)
		return
	}

	var saved models.Restaurant
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if existing == nil {
			s, err := slug.Generate(tx, req.Name, 0)
			if err != nil {
				return err
			}
			saved = models.Restaurant{
				OwnerUserID:         userID,
				Name:                req.Name,
				Slug:                s,
				CurrencyCode:        req.CurrencyCode,
				OnboardingCompleted: true,
			}
			if req.Tagline != nil {
				saved.Tagline = *req.Tagline
			}
			if saved.CurrencyCode == "" {
				saved.CurrencyCode = "USD"
			}
			if req.ItemLimit != nil {
				saved.ItemLimit = *req.ItemLimit
			}
			if err := tx.Create(&saved).Error; err != nil {
				return apperr.Internal(err)
			}
			// First save provisions a default menu so the public page
			// has something to show once the owner adds content.
			menu := models.Menu{
				RestaurantID: saved.ID,
				Name:         "Main Menu",
				MenuType:     models.MenuTypeDineIn,
				IsActive:     true,
			}
			if err := tx.Create(&menu).Error; err != nil {
				return apperr.Internal(err)
			}
			return nil
		}

		saved = *existing
		if req.Name != existing.Name {
			s, err := slug.Generate(tx, req.Name, existing.ID)
			if err != nil {
				return err
			}
			saved.Slug = s
		}
		saved.Name = req.Name
		if req.CurrencyCode != "" {
			saved.CurrencyCode = req.CurrencyCode
		}
		if req.Tagline != nil {
			saved.Tagline = *req.Tagline
		}
		if req.ItemLimit != nil {
			saved.ItemLimit = *req.ItemLimit
		}
		saved.OnboardingCompleted = true
		if err := tx.Save(&saved).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if txErr != nil {
		fail(c, txErr)
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"message": "Restaurant saved", "restaurant": saved})
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func GetMyRestaurant(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	if err := config.DB.Preload("Menus", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	}).First(rest, rest.ID).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": rest})
}
