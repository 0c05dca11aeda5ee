package handlers

import (
	"net/http"
	"strconv"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/hierarchy"
	"menucraft-api/middleware"
	"menucraft-api/models"
	"menucraft-api/ownership"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Category Management ─────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	MenuID   uint   `json:"menu_id" binding:"required"`
	ParentID *uint  `json:"parent_id"`
	Name     string `json:"name" binding:"required"`
}

// sameMenuParent checks that parentID names a category of menuID.
// Cross-menu nesting is rejected as a hard invariant.
func sameMenuParent(db *gorm.DB, parentID, menuID uint) error {
	var parent models.Category
	if err := db.Where("id = ? AND menu_id = ?", parentID, menuID).First(&parent).Error; err != nil {
		return apperr.Invalid("parent category must belong to the same menu")
	}
	return nil
}

// CreateCategory adds a category (or subcategory) to an owned menu
func CreateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := ownership.Menu(config.DB, req.MenuID, userID)
	if err != nil {
		fail(c, err)
		return
	}
	if req.ParentID != nil {
		if err := sameMenuParent(config.DB, *req.ParentID, menu.ID); err != nil {
			fail(c, err)
			return
		}
	}

	scope := "menu_id = ? AND parent_id IS NULL"
	args := []interface{}{menu.ID}
	if req.ParentID != nil {
		scope = "menu_id = ? AND parent_id = ?"
		args = append(args, *req.ParentID)
	}
	order, err := nextDisplayOrder(config.DB, &models.Category{}, scope, args...)
	if err != nil {
		fail(c, err)
		return
	}

	cat := models.Category{
		MenuID:       menu.ID,
		ParentID:     req.ParentID,
		Name:         req.Name,
		IsVisible:    true,
		DisplayOrder: order,
	}
	if err := config.DB.Create(&cat).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": cat})
}

// GetMenuTree returns the full category tree of an owned menu,
// including hidden categories and unavailable items.
func GetMenuTree(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID, _ := strconv.Atoi(c.Param("menuId"))

	menu, err := ownership.Menu(config.DB, uint(menuID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	var cats []models.Category
	if err := config.DB.Where("menu_id = ?", menu.ID).
		Order("display_order").Find(&cats).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	tree, err := hierarchy.BuildTree(cats)
	if err != nil {
		fail(c, err)
		return
	}
	if err := attachItems(config.DB, tree, false); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu, "categories": tree})
}

// attachItems loads each node's items in display order. With
// availableOnly set, unavailable items are filtered out (public view).
func attachItems(db *gorm.DB, nodes []*hierarchy.CategoryNode, availableOnly bool) error {
	for _, n := range nodes {
		q := db.Where("category_id = ?", n.ID).Order("display_order")
		if availableOnly {
			q = q.Where("is_available = ?", true)
		}
		items := []models.Item{}
		if err := q.Find(&items).Error; err != nil {
			return apperr.Internal(err)
		}
		n.Items = items
		if err := attachItems(db, n.Subcategories, availableOnly); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCategory applies a partial update to an owned category
func UpdateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	catID, _ := strconv.Atoi(c.Param("categoryId"))

	cat, err := ownership.Category(config.DB, uint(catID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "is_visible": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if name, ok := update["name"]; ok && name == "" {
		fail(c, apperr.Invalid("category name cannot be empty"))
		return
	}
	if err := config.DB.Model(cat).Updates(update).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": cat})
}

// DeleteCategory removes an owned category with its items and
// subcategory subtree in one transaction
func DeleteCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	catID, _ := strconv.Atoi(c.Param("categoryId"))

	cat, err := ownership.Category(config.DB, uint(catID), userID)
	if err != nil {
		fail(c, err)
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		ids := []uint{cat.ID}
		frontier := []uint{cat.ID}
		for len(frontier) > 0 {
			var next []uint
			if err := tx.Model(&models.Category{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}
		if err := tx.Where("category_id IN ?", ids).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Category{}).Error
	})
	if txErr != nil {
		fail(c, apperr.Internal(txErr))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ReorderCategories rewrites display orders, and optionally parents,
// for categories of one owned menu in a single all-or-nothing
// transaction.
func ReorderCategories(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID, _ := strconv.Atoi(c.Param("menuId"))

	menu, err := ownership.Menu(config.DB, uint(menuID), userID)
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
			// parent_id is written only when the entry supplies one;
			// an order-only payload keeps the existing nesting. An
			// explicit parent_id of 0 moves the category to the root.
			update := map[string]interface{}{"display_order": e.DisplayOrder}
			if e.ParentID != nil {
				if *e.ParentID == 0 {
					update["parent_id"] = nil
				} else {
					if *e.ParentID == e.ID {
						return apperr.Invalid("category cannot be its own parent")
					}
					if err := sameMenuParent(tx, *e.ParentID, menu.ID); err != nil {
						return err
					}
					update["parent_id"] = *e.ParentID
				}
			}
			res := tx.Model(&models.Category{}).
				Where("id = ? AND menu_id = ?", e.ID, menu.ID).
				Updates(update)
			if res.Error != nil {
				return apperr.Internal(res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("category not found")
			}
		}

		// The moves must still form a forest.
		var cats []models.Category
		if err := tx.Where("menu_id = ?", menu.ID).Find(&cats).Error; err != nil {
			return apperr.Internal(err)
		}
		if _, err := hierarchy.BuildTree(cats); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		fail(c, txErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categories reordered"})
}
