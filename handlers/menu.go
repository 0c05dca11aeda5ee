package handlers

import (
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

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuRequest struct {
	Name     string          `json:"name" binding:"required"`
	MenuType models.MenuType `json:"menu_type"`
	IsActive bool            `json:"is_active"`
}

// CreateMenu adds a menu to the caller's restaurant, appended at the
// end of the display order.
func CreateMenu(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MenuType == "" {
		req.MenuType = models.MenuTypeDineIn
	}

	order, err := nextDisplayOrder(config.DB, &models.Menu{}, "restaurant_id = ?", rest.ID)
	if err != nil {
		fail(c, err)
		return
	}
	menu := models.Menu{
		RestaurantID: rest.ID,
		Name:         req.Name,
		MenuType:     req.MenuType,
		IsActive:     req.IsActive,
		DisplayOrder: order,
	}
	if err := config.DB.Create(&menu).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created", "menu": menu})
}

// ListMenus returns the caller's menus in display order
func ListMenus(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	var menus []models.Menu
	if err := config.DB.Where("restaurant_id = ?", rest.ID).
		Order("display_order").Find(&menus).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(menus), "menus": menus})
}

// UpdateMenu applies a partial update to an owned menu
func UpdateMenu(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID, _ := strconv.Atoi(c.Param("menuId"))

	menu, err := ownership.Menu(config.DB, uint(menuID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "menu_type": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if name, ok := update["name"]; ok && name == "" {
		fail(c, apperr.Invalid("menu name cannot be empty"))
		return
	}
	if err := config.DB.Model(menu).Updates(update).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu updated", "menu": menu})
}

// DeleteMenu removes an owned menu; categories and items cascade
func DeleteMenu(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID, _ := strconv.Atoi(c.Param("menuId"))

	menu, err := ownership.Menu(config.DB, uint(menuID), userID)
	if err != nil {
		fail(c, err)
		return
	}
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var catIDs []uint
		if err := tx.Model(&models.Category{}).Where("menu_id = ?", menu.ID).
			Pluck("id", &catIDs).Error; err != nil {
			return err
		}
		if len(catIDs) > 0 {
			if err := tx.Where("category_id IN ?", catIDs).Delete(&models.Item{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Menu{}, menu.ID).Error
	})
	if txErr != nil {
		fail(c, apperr.Internal(txErr))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}

// DuplicateMenu copies a menu with all of its categories and items in
// a single transaction; a failure partway leaves nothing behind.
func DuplicateMenu(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID, _ := strconv.Atoi(c.Param("menuId"))

	src, err := ownership.Menu(config.DB, uint(menuID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	var dup models.Menu
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		order, err := nextDisplayOrder(tx, &models.Menu{}, "restaurant_id = ?", src.RestaurantID)
		if err != nil {
			return err
		}
		dup = models.Menu{
			RestaurantID: src.RestaurantID,
			Name:         src.Name + " (copy)",
			MenuType:     src.MenuType,
			IsActive:     false, // the copy starts hidden
			DisplayOrder: order,
		}
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}

		var cats []models.Category
		if err := tx.Where("menu_id = ?", src.ID).Order("display_order").Find(&cats).Error; err != nil {
			return err
		}

		// Insert parents before children so remapped ParentIDs always
		// point at rows that already exist.
		idMap := make(map[uint]uint, len(cats))
		remaining := cats
		for len(remaining) > 0 {
			var deferred []models.Category
			progressed := false
			for _, cat := range remaining {
				if cat.ParentID != nil {
					if _, ok := idMap[*cat.ParentID]; !ok {
						deferred = append(deferred, cat)
						continue
					}
				}
				// ImagePath is not carried over: the copy must not
				// share asset files with the original, or deleting
				// either side would unlink the other's image.
				clone := models.Category{
					MenuID:       dup.ID,
					Name:         cat.Name,
					IsVisible:    cat.IsVisible,
					DisplayOrder: cat.DisplayOrder,
				}
				if cat.ParentID != nil {
					newParent := idMap[*cat.ParentID]
					clone.ParentID = &newParent
				}
				if err := tx.Create(&clone).Error; err != nil {
					return err
				}
				idMap[cat.ID] = clone.ID
				progressed = true
			}
			if !progressed {
				return apperr.Invalid("category parent chain contains a cycle")
			}
			remaining = deferred
		}

		var items []models.Item
		catIDs := make([]uint, 0, len(idMap))
		for oldID := range idMap {
			catIDs = append(catIDs, oldID)
		}
		if len(catIDs) > 0 {
			if err := tx.Where("category_id IN ?", catIDs).Find(&items).Error; err != nil {
				return err
			}
		}
		for _, it := range items {
			clone := it
			clone.ID = 0
			clone.CategoryID = idMap[it.CategoryID]
			clone.ImagePath = ""
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		fail(c, txErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu duplicated", "menu": dup})
}

// ── Reordering ──────────────────────────────────────────────────────────────

type ReorderEntry struct {
	ID           uint  `json:"id" binding:"required"`
	DisplayOrder int   `json:"display_order"`
	ParentID     *uint `json:"parent_id"`
}

type ReorderRequest struct {
	Entries []ReorderEntry `json:"entries" binding:"required,min=1"`
}

// ReorderMenus rewrites menu display orders in one all-or-nothing
// transaction; an entry that is not the caller's rolls everything back.
func ReorderMenus(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range req.Entries {
			res := tx.Model(&models.Menu{}).
				Where("id = ? AND restaurant_id = ?", e.ID, rest.ID).
				Update("display_order", e.DisplayOrder)
			if res.Error != nil {
				return apperr.Internal(res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("menu not found")
			}
		}
		return nil
	})
	if txErr != nil {
		fail(c, txErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menus reordered"})
}
