package handlers

import (
	"net/http"
	"testing"

	"menucraft-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderMenusRollsBackOnForeignEntry(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "mine")
	other := seedOwner(t, db, 2, "other")

	a := models.Menu{RestaurantID: rest.ID, Name: "A", DisplayOrder: 0}
	b := models.Menu{RestaurantID: rest.ID, Name: "B", DisplayOrder: 1}
	foreign := models.Menu{RestaurantID: other.ID, Name: "X", DisplayOrder: 0}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&foreign).Error)

	w := perform(t, ReorderMenus, http.MethodPut, map[string]interface{}{
		"entries": []map[string]interface{}{
			{"id": a.ID, "display_order": 1},
			{"id": foreign.ID, "display_order": 0},
		},
	}, 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var got models.Menu
	require.NoError(t, db.First(&got, a.ID).Error)
	assert.Equal(t, 0, got.DisplayOrder)
	var gotForeign models.Menu
	require.NoError(t, db.First(&gotForeign, foreign.ID).Error)
	assert.Equal(t, 0, gotForeign.DisplayOrder)
}

func TestDuplicateMenuCopiesWholeTree(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "dup")
	menu := models.Menu{RestaurantID: rest.ID, Name: "Dinner", IsActive: true}
	require.NoError(t, db.Create(&menu).Error)

	parent := models.Category{MenuID: menu.ID, Name: "Food", IsVisible: true, ImagePath: "/uploads/food.jpg"}
	require.NoError(t, db.Create(&parent).Error)
	child := models.Category{MenuID: menu.ID, ParentID: &parent.ID, Name: "Mains", IsVisible: true}
	require.NoError(t, db.Create(&child).Error)
	p := 14.0
	require.NoError(t, db.Create(&models.Item{CategoryID: child.ID, Name: "Steak", Price: &p, IsAvailable: true, ImagePath: "/uploads/steak.jpg"}).Error)

	w := perform(t, DuplicateMenu, http.MethodPost, nil, 1,
		gin.Params{{Key: "menuId", Value: itoa(menu.ID)}})
	require.Equal(t, http.StatusCreated, w.Code)

	var dup models.Menu
	require.NoError(t, db.Where("name = ?", "Dinner (copy)").First(&dup).Error)
	assert.False(t, dup.IsActive)

	var cats []models.Category
	require.NoError(t, db.Where("menu_id = ?", dup.ID).Order("parent_id").Find(&cats).Error)
	require.Len(t, cats, 2)

	var root, sub models.Category
	for _, c := range cats {
		if c.ParentID == nil {
			root = c
		} else {
			sub = c
		}
	}
	assert.Equal(t, "Food", root.Name)
	assert.Equal(t, "Mains", sub.Name)
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, root.ID, *sub.ParentID)

	// The copy must not point at the original's asset files
	assert.Empty(t, root.ImagePath)

	var items []models.Item
	require.NoError(t, db.Where("category_id = ?", sub.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Steak", items[0].Name)
	assert.Empty(t, items[0].ImagePath)
}

func TestCreateCategoryRejectsCrossMenuParent(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "cross")
	menuA := models.Menu{RestaurantID: rest.ID, Name: "A", IsActive: true}
	menuB := models.Menu{RestaurantID: rest.ID, Name: "B"}
	require.NoError(t, db.Create(&menuA).Error)
	require.NoError(t, db.Create(&menuB).Error)
	parentInB := models.Category{MenuID: menuB.ID, Name: "Elsewhere", IsVisible: true}
	require.NoError(t, db.Create(&parentInB).Error)

	w := perform(t, CreateCategory, http.MethodPost, map[string]interface{}{
		"menu_id":   menuA.ID,
		"parent_id": parentInB.ID,
		"name":      "Bad Nesting",
	}, 1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMenuCascades(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "cascade")
	menu := models.Menu{RestaurantID: rest.ID, Name: "Doomed", IsActive: true}
	require.NoError(t, db.Create(&menu).Error)
	cat := models.Category{MenuID: menu.ID, Name: "Snacks", IsVisible: true}
	require.NoError(t, db.Create(&cat).Error)
	p := 3.0
	require.NoError(t, db.Create(&models.Item{CategoryID: cat.ID, Name: "Chips", Price: &p, IsAvailable: true}).Error)

	w := perform(t, DeleteMenu, http.MethodDelete, nil, 1,
		gin.Params{{Key: "menuId", Value: itoa(menu.ID)}})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
