package testValidator

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

// AnswerRequest is one answer option inside a question payload.
type AnswerRequest struct {
	Text      string `json:"text" validate:"required,min=1"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest is one question inside a test payload.
type QuestionRequest struct {
	Text    string          `json:"text" validate:"required,min=1"`
	Type    string          `json:"type" validate:"omitempty,oneof=single_choice multiple_choice"`
	Answers []AnswerRequest `json:"answers" validate:"required,min=2,dive"`
}

// CreateTestRequest creates a test attached to a lesson, module or course.
type CreateTestRequest struct {
	Title           string            `json:"title" validate:"required,min=1"`
	ScopeType       string            `json:"scope_type" validate:"required,oneof=lesson module course"`
	ScopeID         string            `json:"scope_id" validate:"required,uuid"`
	QuestionsToShow int               `json:"questions_to_show" validate:"omitempty,gte=0"`
	PassingScore    *int              `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	Questions       []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// UpdateTestRequest updates test metadata and, when questions are present,
// replaces the whole question tree.
type UpdateTestRequest struct {
	Title           string            `json:"title"`
	QuestionsToShow *int              `json:"questions_to_show" validate:"omitempty,gte=0"`
	PassingScore    *int              `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	Questions       []QuestionRequest `json:"questions" validate:"omitempty,min=1,dive"`
}

// SubmittedAnswerRequest pairs a question with the chosen answer.
type SubmittedAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	AnswerID   string `json:"answer_id" validate:"required,uuid"`
}

// SubmitTestRequest is the test submission payload.
type SubmitTestRequest struct {
	Answers []SubmittedAnswerRequest `json:"answers" validate:"required,min=1,dive"`
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

func CreateTest() fiber.Handler {
	return body("validatedTest", func() interface{} { return new(CreateTestRequest) })
}

func UpdateTest() fiber.Handler {
	return body("validatedTestUpdate", func() interface{} { return new(UpdateTestRequest) })
}

func SubmitTest() fiber.Handler {
	return body("validatedSubmission", func() interface{} { return new(SubmitTestRequest) })
}
