package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	categoryValidator "lms/validators/category"
)

func GetAllCategories(c *fiber.Ctx) error {
	svc := services.NewCategoryService(database.Database.Db)

	categories, err := svc.List()
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

func GetCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("category_id").(string)

	svc := services.NewCategoryService(database.Database.Db)
	category, err := svc.Get(categoryID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully!", category)
}

func AdminCreateCategory(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)

	svc := services.NewCategoryService(database.Database.Db)
	created, err := svc.Create(services.CategoryInput{
		Name:        reqData.Name,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", created)
}

func AdminUpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("category_id").(string)
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)

	svc := services.NewCategoryService(database.Database.Db)
	updated, err := svc.Update(categoryID, services.CategoryInput{
		Name:        reqData.Name,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", updated)
}

func AdminDeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("category_id").(string)

	svc := services.NewCategoryService(database.Database.Db)
	if err := svc.Delete(categoryID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
