package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog browsing
	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/:course_id", middleware.PathIDs("course_id"), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:course_id/register", middleware.JWTMiddleware, middleware.PathIDs("course_id"), controllers.EnrollInCourse)
	courseGroup.Get("/:course_id/registration", middleware.JWTMiddleware, middleware.PathIDs("course_id"), controllers.CheckRegistration)

	// Progress tracking
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, middleware.PathIDs("course_id"), controllers.GetCourseProgress)
	courseGroup.Post("/:course_id/lessons/:lesson_id/complete", middleware.JWTMiddleware, middleware.PathIDs("course_id", "lesson_id"), controllers.CompleteLesson)
	courseGroup.Put("/:course_id/last-lesson", middleware.JWTMiddleware, middleware.PathIDs("course_id"), validators.LastLesson(), controllers.UpdateLastLesson)

	// Practice material attached to lessons
	courseGroup.Get("/lessons/:lesson_id/practices", middleware.PathIDs("lesson_id"), controllers.GetLessonPractices)

	// Enrollment dashboard
	myGroup := app.Group("/my", middleware.JWTMiddleware)
	myGroup.Get("/courses", controllers.GetUserEnrollments)
	myGroup.Get("/courses/last-lesson", controllers.GetUserEnrollmentsWithLastLesson)
}
