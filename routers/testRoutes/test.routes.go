package testRoutes

import (
	controllers "lms/controllers/test"
	"lms/middleware"
	validators "lms/validators/test"

	"github.com/gofiber/fiber/v2"
)

// SetupTestRoutes sets up learner-facing assessment routes
func SetupTestRoutes(app *fiber.App) {
	// Scoped test lookup, sanitized for learners
	app.Get("/lessons/:lesson_id/test", middleware.JWTMiddleware, middleware.PathIDs("lesson_id"), controllers.GetLessonTest)
	app.Get("/modules/:module_id/test", middleware.JWTMiddleware, middleware.PathIDs("module_id"), controllers.GetModuleTest)
	app.Get("/courses/:course_id/test", middleware.JWTMiddleware, middleware.PathIDs("course_id"), controllers.GetCourseTest)

	// Submission and results
	testGroup := app.Group("/tests", middleware.JWTMiddleware)
	testGroup.Post("/:test_id/submit", middleware.PathIDs("test_id"), validators.SubmitTest(), controllers.SubmitTest)
	testGroup.Get("/:test_id/result", middleware.PathIDs("test_id"), controllers.GetTestResult)

	app.Get("/modules/:module_id/test/result", middleware.JWTMiddleware, middleware.PathIDs("module_id"), controllers.GetModuleTestResult)
	app.Get("/courses/:course_id/test/result", middleware.JWTMiddleware, middleware.PathIDs("course_id"), controllers.GetCourseTestResult)
}

// SetupAdminTestRoutes sets up assessment authoring routes for teachers and admins
func SetupAdminTestRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("teacher", "admin"))

	adminGroup.Post("/tests", validators.CreateTest(), controllers.AdminCreateTest)
	adminGroup.Get("/tests", controllers.AdminListTests)
	adminGroup.Get("/tests/:test_id", middleware.PathIDs("test_id"), controllers.AdminGetTest)
	adminGroup.Put("/tests/:test_id", middleware.PathIDs("test_id"), validators.UpdateTest(), controllers.AdminUpdateTest)
	adminGroup.Delete("/tests/:test_id", middleware.PathIDs("test_id"), controllers.AdminDeleteTest)

	// Teacher-facing result listings per scope
	adminGroup.Get("/lessons/:lesson_id/test/results", middleware.PathIDs("lesson_id"), controllers.AdminLessonTestResults)
	adminGroup.Get("/modules/:module_id/test/results", middleware.PathIDs("module_id"), controllers.AdminModuleTestResults)
	adminGroup.Get("/courses/:course_id/test/results", middleware.PathIDs("course_id"), controllers.AdminCourseTestResults)
}
