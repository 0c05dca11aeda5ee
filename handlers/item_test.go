package handlers

import (
	"net/http"
	"testing"

	"menucraft-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMenuWithCategory(t *testing.T, db *gorm.DB, restID uint) (models.Menu, models.Category) {
	t.Helper()
	menu := models.Menu{RestaurantID: restID, Name: "Main", IsActive: true}
	require.NoError(t, db.Create(&menu).Error)
	cat := models.Category{MenuID: menu.ID, Name: "Starters", IsVisible: true}
	require.NoError(t, db.Create(&cat).Error)
	return menu, cat
}

func TestCreateItemRequiresPriceOrRange(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "pricing")
	_, cat := seedMenuWithCategory(t, db, rest.ID)

	w := perform(t, CreateItem, http.MethodPost, map[string]interface{}{
		"category_id": cat.ID,
		"name":        "Mystery Dish",
	}, 1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(t, CreateItem, http.MethodPost, map[string]interface{}{
		"category_id": cat.ID,
		"name":        "Seasonal Catch",
		"price_min":   12.0,
		"price_max":   18.0,
	}, 1, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateItemEnforcesPlanLimit(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "quota")
	require.NoError(t, db.Model(&rest).Update("item_limit", 2).Error)
	_, cat := seedMenuWithCategory(t, db, rest.ID)

	for _, name := range []string{"One", "Two"} {
		w := perform(t, CreateItem, http.MethodPost, map[string]interface{}{
			"category_id": cat.ID,
			"name":        name,
			"price":       5.0,
		}, 1, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := perform(t, CreateItem, http.MethodPost, map[string]interface{}{
		"category_id": cat.ID,
		"name":        "Three",
		"price":       5.0,
	}, 1, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateItemCannotDropEveryPrice(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "reprice")
	_, cat := seedMenuWithCategory(t, db, rest.ID)
	p := 9.0
	item := models.Item{CategoryID: cat.ID, Name: "Soup", Price: &p, IsAvailable: true}
	require.NoError(t, db.Create(&item).Error)

	// Nulling the only price must be rejected and leave the row intact
	w := perform(t, UpdateItem, http.MethodPut, map[string]interface{}{
		"price": nil,
	}, 1, gin.Params{{Key: "itemId", Value: itoa(item.ID)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got models.Item
	require.NoError(t, db.First(&got, item.ID).Error)
	require.NotNil(t, got.Price)
	assert.Equal(t, 9.0, *got.Price)

	// Swapping the fixed price for a range is fine
	w = perform(t, UpdateItem, http.MethodPut, map[string]interface{}{
		"price":     nil,
		"price_min": 7.0,
		"price_max": 12.0,
	}, 1, gin.Params{{Key: "itemId", Value: itoa(item.ID)}})
	assert.Equal(t, http.StatusOK, w.Code)

	// An inverted range is rejected against the stored fields too
	w = perform(t, UpdateItem, http.MethodPut, map[string]interface{}{
		"price_max": 3.0,
	}, 1, gin.Params{{Key: "itemId", Value: itoa(item.ID)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItemInForeignCategoryIsNotFound(t *testing.T) {
	db := setupDB(t)
	restA := seedOwner(t, db, 1, "alpha")
	seedOwner(t, db, 2, "beta")
	_, cat := seedMenuWithCategory(t, db, restA.ID)

	w := perform(t, CreateItem, http.MethodPost, map[string]interface{}{
		"category_id": cat.ID,
		"name":        "Sneaky",
		"price":       5.0,
	}, 2, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReorderItemsIsAtomic(t *testing.T) {
	db := setupDB(t)
	rest := seedOwner(t, db, 1, "atomic")
	_, cat := seedMenuWithCategory(t, db, rest.ID)

	var items []models.Item
	for i, name := range []string{"A", "B", "C"} {
		p := 5.0
		it := models.Item{CategoryID: cat.ID, Name: name, Price: &p, DisplayOrder: i, IsAvailable: true}
		require.NoError(t, db.Create(&it).Error)
		items = append(items, it)
	}

	// Last entry names an id outside the category; the whole reorder
	// must roll back.
	w := perform(t, ReorderItems, http.MethodPut, map[string]interface{}{
		"entries": []map[string]interface{}{
			{"id": items[0].ID, "display_order": 2},
			{"id": items[1].ID, "display_order": 0},
			{"id": 9999, "display_order": 1},
		},
	}, 1, gin.Params{{Key: "categoryId", Value: itoa(cat.ID)}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	for i, it := range items {
		var got models.Item
		require.NoError(t, db.First(&got, it.ID).Error)
		assert.Equal(t, i, got.DisplayOrder, "item %s", it.Name)
	}
}
