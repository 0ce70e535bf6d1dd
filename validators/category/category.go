package categoryValidator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "' validation"
		}
		return errs
	}
	errs["body"] = "invalid request body"
	return errs
}

// CategoryRequest is the create/update category payload.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
