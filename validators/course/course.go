package courseValidator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into the errors map the
// teacher-style ValidationErrorResponse expects.
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

// CourseRequest is the create/update course payload.
type CourseRequest struct {
	Title           string  `json:"title" validate:"required,min=1"`
	Description     string  `json:"description"`
	DifficultyLevel string  `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	CategoryID      *string `json:"category_id" validate:"omitempty,uuid"`
}

// UpdateCourseRequest allows partial updates.
type UpdateCourseRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DifficultyLevel string  `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	CategoryID      *string `json:"category_id" validate:"omitempty,uuid"`
}

// ModuleRequest is the create/update module payload.
type ModuleRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
	Position    *int   `json:"position" validate:"omitempty,gte=0"`
}

// UpdateModuleRequest allows partial updates.
type UpdateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    *int   `json:"position" validate:"omitempty,gte=0"`
}

// LessonRequest is the create/update lesson payload.
type LessonRequest struct {
	Title    string `json:"title" validate:"required,min=1"`
	Content  string `json:"content"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

// UpdateLessonRequest allows partial updates.
type UpdateLessonRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

// ReorderRequest carries the new position for a module or lesson.
type ReorderRequest struct {
	Position *int `json:"position" validate:"required,gte=0"`
}

// LastLessonRequest records the last lesson the user viewed.
type LastLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required,uuid"`
}

// PracticeRequest is the create/update practice payload.
type PracticeRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
}

func body(localKey string, newReq func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := newReq()
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals(localKey, reqData)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return body("validatedCourse", func() interface{} { return new(CourseRequest) })
}

func UpdateCourse() fiber.Handler {
	return body("validatedCourseUpdate", func() interface{} { return new(UpdateCourseRequest) })
}

func CreateModule() fiber.Handler {
	return body("validatedModule", func() interface{} { return new(ModuleRequest) })
}

func UpdateModule() fiber.Handler {
	return body("validatedModuleUpdate", func() interface{} { return new(UpdateModuleRequest) })
}

func CreateLesson() fiber.Handler {
	return body("validatedLesson", func() interface{} { return new(LessonRequest) })
}

func UpdateLesson() fiber.Handler {
	return body("validatedLessonUpdate", func() interface{} { return new(UpdateLessonRequest) })
}

func Reorder() fiber.Handler {
	return body("validatedReorder", func() interface{} { return new(ReorderRequest) })
}

func LastLesson() fiber.Handler {
	return body("validatedLastLesson", func() interface{} { return new(LastLessonRequest) })
}

func CreatePractice() fiber.Handler {
	return body("validatedPractice", func() interface{} { return new(PracticeRequest) })
}

func UpdatePractice() fiber.Handler {
	return body("validatedPracticeUpdate", func() interface{} { return new(PracticeRequest) })
}
