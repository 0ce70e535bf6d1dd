package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	courseValidator "lms/validators/course"
)

func AdminCreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	svc := services.NewCourseService(database.Database.Db)
	created, err := svc.Create(services.CourseInput{
		Title:           reqData.Title,
		Description:     reqData.Description,
		DifficultyLevel: reqData.DifficultyLevel,
		CategoryID:      reqData.CategoryID,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", created)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)

	svc := services.NewCourseService(database.Database.Db)
	updated, err := svc.Update(courseID, services.CourseInput{
		Title:           reqData.Title,
		Description:     reqData.Description,
		DifficultyLevel: reqData.DifficultyLevel,
		CategoryID:      reqData.CategoryID,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)

	svc := services.NewCourseService(database.Database.Db)
	if err := svc.Delete(courseID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
