package handlers

import (
	"log"
	"net/http"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/middleware"
	"menucraft-api/models"
	"menucraft-api/ownership"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fail maps a taxonomy error onto the response boundary. Internal
// failures are logged and surfaced as an opaque message.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// myRestaurant resolves the caller's restaurant or writes the error
// response itself.
func myRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	rest, err := ownership.RestaurantOf(config.DB, middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return rest, true
}

// nextDisplayOrder computes the append-at-end position for a new row
// within the given sibling scope.
func nextDisplayOrder(db *gorm.DB, model interface{}, query string, args ...interface{}) (int, error) {
	var next int
	err := db.Model(model).
		Where(query, args...).
		Select("COALESCE(MAX(display_order), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return next, nil
}
