package routes

import (
	"menucraft-api/handlers"
	"menucraft-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Slug-keyed public menu (no auth needed)
		public.GET("/public/menus/:slug", handlers.GetPublicMenu)
	}

	// ── Owner routes ───────────────────────────────────────────────
	// Path nesting is for legibility only; every handler re-derives
	// the full ownership chain from the authenticated principal.
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired())
	{
		owner.GET("/profile", handlers.GetProfile)

		// Restaurant profile
		owner.POST("/restaurant", handlers.SaveRestaurant)
		owner.GET("/restaurant", handlers.GetMyRestaurant)
		owner.POST("/restaurant/logo", handlers.UploadLogo)

		// Menus
		owner.POST("/menus", handlers.CreateMenu)
		owner.GET("/menus", handlers.ListMenus)
		owner.PUT("/menus/reorder", handlers.ReorderMenus)
		owner.PUT("/menus/:menuId", handlers.UpdateMenu)
		owner.DELETE("/menus/:menuId", handlers.DeleteMenu)
		owner.POST("/menus/:menuId/duplicate", handlers.DuplicateMenu)
		owner.GET("/menus/:menuId/tree", handlers.GetMenuTree)
		owner.PUT("/menus/:menuId/categories/reorder", handlers.ReorderCategories)

		// Categories
		owner.POST("/categories", handlers.CreateCategory)
		owner.PUT("/categories/:categoryId", handlers.UpdateCategory)
		owner.DELETE("/categories/:categoryId", handlers.DeleteCategory)
		owner.POST("/categories/:categoryId/image", handlers.UploadCategoryImage)
		owner.PUT("/categories/:categoryId/items/reorder", handlers.ReorderItems)

		// Items
		owner.POST("/items", handlers.CreateItem)
		owner.PUT("/items/:itemId", handlers.UpdateItem)
		owner.DELETE("/items/:itemId", handlers.DeleteItem)
		owner.POST("/items/:itemId/image", handlers.UploadItemImage)

		// Templates
		owner.GET("/templates", handlers.ListTemplates)
		owner.PUT("/templates/:templateId/activate", handlers.ActivateTemplate)
		owner.PUT("/templates/:templateId", handlers.UpdateTemplate)
		owner.DELETE("/templates/:templateId", handlers.DeleteTemplate)
	}
}
