package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course authoring routes for teachers and admins
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("teacher", "admin"))

	// Course management
	adminGroup.Post("/courses", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/courses/:course_id", middleware.PathIDs("course_id"), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/courses/:course_id", middleware.PathIDs("course_id"), controllers.AdminDeleteCourse)

	// Module management
	moduleGroup := adminGroup.Group("/courses/:course_id/modules", middleware.PathIDs("course_id"))
	moduleGroup.Post("/", validators.CreateModule(), controllers.AdminCreateModule)
	moduleGroup.Get("/", controllers.AdminListModules)
	moduleGroup.Get("/:module_id", middleware.PathIDs("module_id"), controllers.AdminGetModule)
	moduleGroup.Put("/:module_id", middleware.PathIDs("module_id"), validators.UpdateModule(), controllers.AdminUpdateModule)
	moduleGroup.Delete("/:module_id", middleware.PathIDs("module_id"), controllers.AdminDeleteModule)
	moduleGroup.Put("/:module_id/reorder", middleware.PathIDs("module_id"), validators.Reorder(), controllers.AdminReorderModule)

	// Lesson management
	lessonGroup := moduleGroup.Group("/:module_id/lessons", middleware.PathIDs("module_id"))
	lessonGroup.Post("/", validators.CreateLesson(), controllers.AdminCreateLesson)
	lessonGroup.Get("/", controllers.AdminListLessons)
	lessonGroup.Get("/:lesson_id", middleware.PathIDs("lesson_id"), controllers.AdminGetLesson)
	lessonGroup.Put("/:lesson_id", middleware.PathIDs("lesson_id"), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lesson_id", middleware.PathIDs("lesson_id"), controllers.AdminDeleteLesson)
	lessonGroup.Put("/:lesson_id/reorder", middleware.PathIDs("lesson_id"), validators.Reorder(), controllers.AdminReorderLesson)
	lessonGroup.Post("/:lesson_id/material", middleware.PathIDs("lesson_id"), controllers.AdminUploadMaterial)

	// Practice management
	adminGroup.Post("/lessons/:lesson_id/practices", middleware.PathIDs("lesson_id"), validators.CreatePractice(), controllers.AdminCreatePractice)
	adminGroup.Put("/practices/:practice_id", middleware.PathIDs("practice_id"), validators.UpdatePractice(), controllers.AdminUpdatePractice)
	adminGroup.Delete("/practices/:practice_id", middleware.PathIDs("practice_id"), controllers.AdminDeletePractice)
}
