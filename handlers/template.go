package handlers

import (
	"net/http"
	"strconv"

	"menucraft-api/apperr"
	"menucraft-api/config"
	"menucraft-api/middleware"
	"menucraft-api/ownership"
	"menucraft-api/templates"

	"github.com/gin-gonic/gin"
)

// ── Template Management ─────────────────────────────────────────────────────

// ListTemplates returns all global blueprints plus the caller's own
// templates
func ListTemplates(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	views, err := templates.ListAvailable(config.DB, rest.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(views), "templates": views})
}

// ActivateTemplate makes the given template the caller's single active
// one, forking a private copy when the target is a global blueprint
func ActivateTemplate(c *gin.Context) {
	rest, ok := myRestaurant(c)
	if !ok {
		return
	}
	tmplID, _ := strconv.Atoi(c.Param("templateId"))

	active, err := templates.Activate(config.DB, uint(tmplID), rest.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template activated", "template": active})
}

// UpdateTemplate applies a partial style update to an owned template.
// Global blueprints are read-only and never resolve here.
func UpdateTemplate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tmplID, _ := strconv.Atoi(c.Param("templateId"))

	tmpl, err := ownership.Template(config.DB, uint(tmplID), userID)
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
		"name": true, "font_family": true, "primary_color": true,
		"background_color": true, "layout_style": true,
		"customization_settings": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if name, ok := update["name"]; ok && name == "" {
		fail(c, apperr.Invalid("template name cannot be empty"))
		return
	}
	if err := config.DB.Model(tmpl).Updates(update).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template updated", "template": tmpl})
}

// DeleteTemplate removes an owned, inactive template
func DeleteTemplate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tmplID, _ := strconv.Atoi(c.Param("templateId"))

	if err := templates.Delete(config.DB, uint(tmplID), userID, config.UploadDir()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
