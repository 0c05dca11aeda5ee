// Package ownership resolves resources through their full parent chain
// (item → category → menu → restaurant → user) in a single query per
// lookup. A resource that does not exist and a resource owned by a
// different user are both reported as not found, so callers never leak
// the existence of another tenant's data.
package ownership

import (
	"errors"

	"menucraft-api/apperr"
	"menucraft-api/models"

	"gorm.io/gorm"
)

func wrap(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return apperr.Internal(err)
}

// RestaurantOf returns the restaurant owned by userID.
func RestaurantOf(db *gorm.DB, userID uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := db.Where("owner_user_id = ?", userID).First(&r).Error; err != nil {
		return nil, wrap(err, "restaurant not found")
	}
	return &r, nil
}

// Restaurant resolves a restaurant by id for userID.
func Restaurant(db *gorm.DB, id, userID uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := db.Where("id = ? AND owner_user_id = ?", id, userID).First(&r).Error; err != nil {
		return nil, wrap(err, "restaurant not found")
	}
	return &r, nil
}

// Menu resolves a menu by id for userID.
func Menu(db *gorm.DB, id, userID uint) (*models.Menu, error) {
	var m models.Menu
	err := db.
		Select("menus.*").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("menus.id = ? AND restaurants.owner_user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, wrap(err, "menu not found")
	}
	return &m, nil
}

// Category resolves a category by id for userID.
func Category(db *gorm.DB, id, userID uint) (*models.Category, error) {
	var cat models.Category
	err := db.
		Select("categories.*").
		Joins("JOIN menus ON menus.id = categories.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("categories.id = ? AND restaurants.owner_user_id = ?", id, userID).
		First(&cat).Error
	if err != nil {
		return nil, wrap(err, "category not found")
	}
	return &cat, nil
}

// Item resolves an item by id for userID.
func Item(db *gorm.DB, id, userID uint) (*models.Item, error) {
	var it models.Item
	err := db.
		Select("items.*").
		Joins("JOIN categories ON categories.id = items.category_id").
		Joins("JOIN menus ON menus.id = categories.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("items.id = ? AND restaurants.owner_user_id = ?", id, userID).
		First(&it).Error
	if err != nil {
		return nil, wrap(err, "item not found")
	}
	return &it, nil
}

// Template resolves a tenant-owned template by id for userID. Global
// templates never resolve here; the sharing engine handles those
// explicitly.
func Template(db *gorm.DB, id, userID uint) (*models.Template, error) {
	var t models.Template
	err := db.
		Select("templates.*").
		Joins("JOIN restaurants ON restaurants.id = templates.restaurant_id").
		Where("templates.id = ? AND restaurants.owner_user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, wrap(err, "template not found")
	}
	return &t, nil
}
