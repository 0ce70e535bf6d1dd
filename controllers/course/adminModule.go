package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	courseValidator "lms/validators/course"
)

func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	reqData := c.Locals("validatedModule").(*courseValidator.ModuleRequest)

	svc := services.NewContentService(database.Database.Db)
	created, err := svc.CreateModule(courseID, services.ModuleInput{
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    reqData.Position,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", created)
}

func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)

	svc := services.NewContentService(database.Database.Db)
	modules, err := svc.ListModules(courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

func AdminGetModule(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)

	svc := services.NewContentService(database.Database.Db)
	module, err := svc.GetModule(courseID, moduleID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	reqData := c.Locals("validatedModuleUpdate").(*courseValidator.UpdateModuleRequest)

	svc := services.NewContentService(database.Database.Db)
	updated, err := svc.UpdateModule(courseID, moduleID, services.ModuleInput{
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    reqData.Position,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", updated)
}

func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)

	svc := services.NewContentService(database.Database.Db)
	removedLessons, err := svc.DeleteModule(courseID, moduleID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", fiber.Map{
		"removed_lessons": removedLessons,
	})
}

func AdminReorderModule(c *fiber.Ctx) error {
	courseID := c.Locals("course_id").(string)
	moduleID := c.Locals("module_id").(string)
	reqData := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)

	svc := services.NewContentService(database.Database.Db)
	updated, err := svc.ReorderModule(courseID, moduleID, *reqData.Position)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module reordered successfully!", updated)
}
