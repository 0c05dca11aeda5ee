package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/middleware"
	"menucraft-api/models"
	"menucraft-api/ownership"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Item Management ─────────────────────────────────────────────────────────

type CreateItemRequest struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
}

func validatePrice(price, min, max *float64) error {
	if price != nil {
		if *price < 0 {
			return apperr.Invalid("price cannot be negative")
		}
		return nil
	}
	if min == nil || max == nil {
		return apperr.Invalid("item needs a price or a price range")
	}
	if *min < 0 || *max < *min {
		return apperr.Invalid("invalid price range")
	}
	return nil
}

// countItems counts every item of the restaurant across all menus.
func countItems(db *gorm.DB, restaurantID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Item{}).
		Joins("JOIN categories ON categories.id = items.category_id").
		Joins("JOIN menus ON menus.id = categories.menu_id").
		Where("menus.restaurant_id = ?", restaurantID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// CreateItem adds an item to an owned category, enforcing the
// restaurant's plan-tier item limit across its whole menu set.
func CreateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validatePrice(req.Price, req.PriceMin, req.PriceMax); err != nil {
		fail(c, err)
		return
	}

	cat, err := ownership.Category(config.DB, req.CategoryID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	rest, err := ownership.RestaurantOf(config.DB, userID)
	if err != nil {
		fail(c, err)
		return
	}
	if rest.ItemLimit > 0 {
		count, err := countItems(config.DB, rest.ID)
		if err != nil {
			fail(c, err)
			return
		}
		if count >= int64(rest.ItemLimit) {
			fail(c, apperr.QuotaExceeded(fmt.Sprintf("item limit of %d reached for this plan", rest.ItemLimit)))
			return
		}
	}

	order, err := nextDisplayOrder(config.DB, &models.Item{}, "category_id = ?", cat.ID)
	if err != nil {
		fail(c, err)
		return
	}
	item := models.Item{
		CategoryID:   cat.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		PriceMin:     req.PriceMin,
		PriceMax:     req.PriceMax,
		IsAvailable:  true,
		DisplayOrder: order,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item created", "item": item})
}

// validateMergedPrice re-checks the price invariant an update would
// leave behind: the stored fields overlaid with the requested changes
// must still carry a price or a full range.
func validateMergedPrice(item *models.Item, update map[string]interface{}) error {
	touched := false
	merge := func(key string, current *float64) (*float64, error) {
		v, ok := update[key]
		if !ok {
			return current, nil
		}
		touched = true
		if v == nil {
			return nil, nil
		}
		f, ok := v.(float64)
		if !ok {
			return nil, apperr.Invalid(key + " must be a number")
		}
		return &f, nil
	}

	price, err := merge("price", item.Price)
	if err != nil {
		return err
	}
	min, err := merge("price_min", item.PriceMin)
	if err != nil {
		return err
	}
	max, err := merge("price_max", item.PriceMax)
	if err != nil {
		return err
	}
	if !touched {
		return nil
	}
	return validatePrice(price, min, max)
}

// UpdateItem applies a partial update to an owned item
func UpdateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	item, err := ownership.Item(config.DB, uint(itemID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true,
		"price": true, "price_min": true, "price_max": true,
		"is_available":             true,
		"name_translations":        true,
		"description_translations": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if name, ok := update["name"]; ok && name == "" {
		fail(c, apperr.Invalid("item name cannot be empty"))
		return
	}
	if err := validateMergedPrice(item, update); err != nil {
		fail(c, err)
		return
	}
	if err := config.DB.Model(item).Updates(update).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated", "item": item})
}

// DeleteItem removes an owned item
func DeleteItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	item, err := ownership.Item(config.DB, uint(itemID), userID)
	if err != nil {
		fail(c, err)
		return
	}
	if err := config.DB.Delete(&models.Item{}, item.ID).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	removeAsset(item.ImagePath)
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// ReorderItems rewrites item display orders within one owned category
// in a single all-or-nothing transaction.
func ReorderItems(c *gin.Context) {
	userID := middleware.GetUserID(c)
	catID, _ := strconv.Atoi(c.Param("categoryId"))

	cat, err := ownership.Category(config.DB, uint(catID), userID)
	if err != nil {
		fail(c, err)
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range req.Entries {
			res := tx.Model(&models.Item{}).
				Where("id = ? AND category_id = ?", e.ID, cat.ID).
				Update("display_order", e.DisplayOrder)
			if res.Error != nil {
				return apperr.Internal(res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("item not found")
			}
		}
		return nil
	})
	if txErr != nil {
		fail(c, txErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Items reordered"})
}
