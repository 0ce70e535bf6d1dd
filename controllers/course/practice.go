package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	courseValidator "lms/validators/course"
)

func GetLessonPractices(c *fiber.Ctx) error {
	lessonID := c.Locals("lesson_id").(string)

	svc := services.NewPracticeService(database.Database.Db)
	practices, err := svc.ListByLesson(lessonID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practices fetched successfully!", practices)
}

func AdminCreatePractice(c *fiber.Ctx) error {
	lessonID := c.Locals("lesson_id").(string)
	reqData := c.Locals("validatedPractice").(*courseValidator.PracticeRequest)

	svc := services.NewPracticeService(database.Database.Db)
	created, err := svc.Create(lessonID, services.PracticeInput{
		Title:       reqData.Title,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Practice created successfully!", created)
}

func AdminUpdatePractice(c *fiber.Ctx) error {
	practiceID := c.Locals("practice_id").(string)
	reqData := c.Locals("validatedPracticeUpdate").(*courseValidator.PracticeRequest)

	svc := services.NewPracticeService(database.Database.Db)
	updated, err := svc.Update(practiceID, services.PracticeInput{
		Title:       reqData.Title,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practice updated successfully!", updated)
}

func AdminDeletePractice(c *fiber.Ctx) error {
	practiceID := c.Locals("practice_id").(string)

	svc := services.NewPracticeService(database.Database.Db)
	if err := svc.Delete(practiceID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practice deleted successfully!", nil)
}
