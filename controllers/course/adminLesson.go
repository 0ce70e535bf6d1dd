package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	"lms/utils"
	courseValidator "lms/validators/course"
)

func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	reqData := c.Locals("validatedLesson").(*courseValidator.LessonRequest)

	svc := services.NewContentService(database.Database.Db)
	created, err := svc.CreateLesson(courseID, moduleID, services.LessonInput{
		Title:    reqData.Title,
		Content:  reqData.Content,
		Position: reqData.Position,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", created)
}

func AdminListLessons(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)

	svc := services.NewContentService(database.Database.Db)
	lessons, err := svc.ListLessons(courseID, moduleID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

func AdminGetLesson(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	lessonID := c.Locals("lesson_id").(string)

	svc := services.NewContentService(database.Database.Db)
	lesson, err := svc.GetLesson(courseID, moduleID, lessonID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	lessonID := c.Locals("lesson_id").(string)
	reqData := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)

	svc := services.NewContentService(database.Database.Db)
	updated, err := svc.UpdateLesson(courseID, moduleID, lessonID, services.LessonInput{
		Title:    reqData.Title,
		Content:  reqData.Content,
		Position: reqData.Position,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", updated)
}

func AdminDeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	lessonID := c.Locals("lesson_id").(string)

	svc := services.NewContentService(database.Database.Db)
	if err := svc.DeleteLesson(courseID, moduleID, lessonID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

func AdminReorderLesson(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	lessonID := c.Locals("lesson_id").(string)
	reqData := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)

	svc := services.NewContentService(database.Database.Db)
	updated, err := svc.ReorderLesson(courseID, moduleID, lessonID, *reqData.Position)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson reordered successfully!", updated)
}

func AdminUploadMaterial(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	lessonID := c.Locals("lesson_id").(string)

	file, err := c.FormFile("material")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Material file is required!", nil)
	}

	url, err := utils.UploadMaterial(file, "lessons")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload material!", nil)
	}

	svc := services.NewContentService(database.Database.Db)
	updated, err := svc.AttachMaterial(courseID, moduleID, lessonID, url)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material uploaded successfully!", updated)
}
