package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"menucraft-api/config"
	"menucraft-api/middleware"
	"menucraft-api/ownership"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ── Image Uploads ───────────────────────────────────────────────────────────

// saveUpload stores the "image" form file under a uuid name and
// returns the public path it is served from.
func saveUpload(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	if err := os.MkdirAll(config.UploadDir(), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return "", false
	}
	if err := c.SaveUploadedFile(file, filepath.Join(config.UploadDir(), name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return "", false
	}
	return "/uploads/" + name, true
}

// removeAsset unlinks an uploaded file by its public path. Asset
// removal is fire-and-forget: failures are logged, never surfaced.
func removeAsset(publicPath string) {
	if publicPath == "" {
		return
	}
	if err := os.Remove(filepath.Join(config.UploadDir(), filepath.Base(publicPath))); err != nil {
		log.Printf("failed to remove asset %s: %v", publicPath, err)
	}
}

// UploadLogo sets the caller's restaurant logo
func UploadLogo(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	path, ok := saveUpload(c)
	if !ok {
		return
	}
	old := rest.LogoPath
	if err := config.DB.Model(rest).Update("logo_path", path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save logo"})
		return
	}
	removeAsset(old)
	c.JSON(http.StatusOK, gin.H{"message": "Logo uploaded", "logo_path": path})
}

// UploadCategoryImage sets an owned category's image
func UploadCategoryImage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	catID, _ := strconv.Atoi(c.Param("categoryId"))

	cat, err := ownership.Category(config.DB, uint(catID), userID)
	if err != nil {
		fail(c, err)
		return
	}
	path, ok := saveUpload(c)
	if !ok {
		return
	}
	old := cat.ImagePath
	if err := config.DB.Model(cat).Update("image_path", path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	removeAsset(old)
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "image_path": path})
}

// UploadItemImage sets an owned item's image
func UploadItemImage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	item, err := ownership.Item(config.DB, uint(itemID), userID)
	if err != nil {
		fail(c, err)
		return
	}
	path, ok := saveUpload(c)
	if !ok {
		return
	}
	old := item.ImagePath
	if err := config.DB.Model(item).Update("image_path", path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	removeAsset(old)
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "image_path": path})
}
