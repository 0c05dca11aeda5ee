package handlers

import (
	"net/http"
	"testing"

	"menucraft-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRestaurantProvisionsDefaults(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Owner", Email: "o@example.com", PasswordHash: "x"}).Error)

	w := perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{
		"name": "Güzel Kebap",
	}, 1, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var rest models.Restaurant
	require.NoError(t, db.Where("owner_user_id = ?", 1).First(&rest).Error)
	assert.Equal(t, "guzel-kebap", rest.Slug)
	assert.True(t, rest.OnboardingCompleted)

	// First save auto-provisions an active default menu
	var menu models.Menu
	require.NoError(t, db.Where("restaurant_id = ?", rest.ID).First(&menu).Error)
	assert.True(t, menu.IsActive)
}

func TestSaveRestaurantSlugStaysDistinct(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "A", Email: "a@example.com", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Name: "B", Email: "b@example.com", PasswordHash: "x"}).Error)

	w := perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{"name": "Güzel Kebap"}, 1, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{"name": "Güzel Kebap"}, 2, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var rests []models.Restaurant
	require.NoError(t, db.Order("id").Find(&rests).Error)
	require.Len(t, rests, 2)
	assert.Equal(t, "guzel-kebap", rests[0].Slug)
	assert.NotEqual(t, rests[0].Slug, rests[1].Slug)
	assert.Contains(t, rests[1].Slug, "guzel-kebap-")
}

func TestSaveRestaurantKeepsOmittedOptionalFields(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Owner", Email: "o@example.com", PasswordHash: "x"}).Error)

	w := perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{
		"name":          "Corner Cafe",
		"tagline":       "Best brunch in town",
		"currency_code": "EUR",
	}, 1, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// A later save that omits tagline must not erase it
	w = perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{
		"name": "Corner Cafe",
	}, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rest models.Restaurant
	require.NoError(t, db.Where("owner_user_id = ?", 1).First(&rest).Error)
	assert.Equal(t, "Best brunch in town", rest.Tagline)
	assert.Equal(t, "EUR", rest.CurrencyCode)

	// An explicit empty tagline clears it
	w = perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{
		"name":    "Corner Cafe",
		"tagline": "",
	}, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Where("owner_user_id = ?", 1).First(&rest).Error)
	assert.Empty(t, rest.Tagline)
}

func TestSaveRestaurantRenameRegeneratesSlug(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Owner", Email: "o@example.com", PasswordHash: "x"}).Error)

	w := perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{"name": "Old Name"}, 1, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{"name": "New Wave Diner"}, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rest models.Restaurant
	require.NoError(t, db.Where("owner_user_id = ?", 1).First(&rest).Error)
	assert.Equal(t, "new-wave-diner", rest.Slug)

	// Resaving without a rename keeps the slug stable
	w = perform(t, SaveRestaurant, http.MethodPost, map[string]interface{}{"name": "New Wave Diner"}, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Where("owner_user_id = ?", 1).First(&rest).Error)
	assert.Equal(t, "new-wave-diner", rest.Slug)

	// Only one menu was ever provisioned
	var menus int64
	require.NoError(t, db.Model(&models.Menu{}).Count(&menus).Error)
	assert.EqualValues(t, 1, menus)
}
