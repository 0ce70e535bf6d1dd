package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	course "lms/models/course"
	"lms/services"
	"lms/utils"
	courseValidator "lms/validators/course"
)

func GetAllCourses(c *fiber.Ctx) error {
	svc := services.NewCourseService(database.Database.Db)

	courses, err := svc.GetAll()
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)

	svc := services.NewCourseService(database.Database.Db)
	tree, err := svc.GetWithModules(courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", tree)
}

func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("course_id").(string)

	svc := services.NewEnrollmentService(database.Database.Db)
	alreadyRegistered, _, err := svc.CheckRegistration(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	enrollment, err := svc.Register(courseID, userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	// Welcome email only on the first registration.
	if !alreadyRegistered {
		var user models.User
		var crs course.Course
		if database.Database.Db.First(&user, "id = ?", userID).Error == nil &&
			database.Database.Db.First(&crs, "id = ?", courseID).Error == nil {
			utils.SendEnrollmentEmail(user.Email, user.FirstName, crs.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func CheckRegistration(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("course_id").(string)

	svc := services.NewEnrollmentService(database.Database.Db)
	registered, enrollment, err := svc.CheckRegistration(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration status fetched!", fiber.Map{
		"registered": registered,
		"enrollment": enrollment,
	})
}

func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := services.NewEnrollmentService(database.Database.Db)
	enrolled, err := svc.ListEnrolled(userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrolled)
}

func GetUserEnrollmentsWithLastLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := services.NewEnrollmentService(database.Database.Db)
	enrolled, err := svc.ListEnrolledWithLastLesson(userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrolled)
}

func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("course_id").(string)

	svc := services.NewEnrollmentService(database.Database.Db)
	progress, err := svc.GetProgress(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("course_id").(string)
	lessonID := c.Locals("lesson_id").(string)

	svc := services.NewCompletionService(database.Database.Db)
	progress, err := svc.CompleteLesson(userID, courseID, lessonID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	if progress >= 100 {
		var user models.User
		var crs course.Course
		if database.Database.Db.First(&user, "id = ?", userID).Error == nil &&
			database.Database.Db.First(&crs, "id = ?", courseID).Error == nil {
			utils.SendCourseCompletedEmail(user.Email, user.FirstName, crs.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"progress": progress,
	})
}

func UpdateLastLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("course_id").(string)
	reqData := c.Locals("validatedLastLesson").(*courseValidator.LastLessonRequest)

	svc := services.NewEnrollmentService(database.Database.Db)
	if err := svc.UpdateLastLesson(userID, courseID, reqData.LessonID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Last lesson updated!", nil)
}
