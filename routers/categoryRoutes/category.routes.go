package categoryRoutes

import (
	controllers "lms/controllers/category"
	"lms/middleware"
	validators "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up category browsing and management routes
func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories")
	categoryGroup.Get("/", controllers.GetAllCategories)
	categoryGroup.Get("/:category_id", middleware.PathIDs("category_id"), controllers.GetCategory)

	adminGroup := app.Group("/admin/categories", middleware.JWTMiddleware, middleware.RequireRole("teacher", "admin"))
	adminGroup.Post("/", validators.Category(), controllers.AdminCreateCategory)
	adminGroup.Put("/:category_id", middleware.PathIDs("category_id"), validators.Category(), controllers.AdminUpdateCategory)
	adminGroup.Delete("/:category_id", middleware.PathIDs("category_id"), controllers.AdminDeleteCategory)
}
