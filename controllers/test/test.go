package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	course "lms/models/course"
	"lms/services"
	"lms/utils"
	testValidator "lms/validators/test"
)

// scopedTest serves the sanitized test attached to the given scope,
// annotated with the requesting user's latest result.
func scopedTest(c *fiber.Ctx, scope services.TestScope) error {
	userID, _ := c.Locals("userId").(string)

	svc := services.NewAssessmentService(database.Database.Db)
	view, err := svc.FindByScope(scope, userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	if view == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No test attached!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test fetched successfully!", view)
}

func GetLessonTest(c *fiber.Ctx) error {
	return scopedTest(c, services.LessonScope(c.Locals("lesson_id").(string)))
}

func GetModuleTest(c *fiber.Ctx) error {
	return scopedTest(c, services.ModuleScope(c.Locals("module_id").(string)))
}

func GetCourseTest(c *fiber.Ctx) error {
	return scopedTest(c, services.CourseScope(c.Locals("course_id").(string)))
}

func SubmitTest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	testID := c.Locals("test_id").(string)
	reqData := c.Locals("validatedSubmission").(*testValidator.SubmitTestRequest)

	answers := make([]services.SubmittedAnswer, 0, len(reqData.Answers))
	for _, a := range reqData.Answers {
		answers = append(answers, services.SubmittedAnswer{
			QuestionID: a.QuestionID,
			AnswerID:   a.AnswerID,
		})
	}

	svc := services.NewAssessmentService(database.Database.Db)
	result, err := svc.Submit(userID, testID, answers)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	if result.Passed {
		var user models.User
		var test course.Test
		if database.Database.Db.First(&user, "id = ?", userID).Error == nil &&
			database.Database.Db.Select("id", "title").First(&test, "id = ?", testID).Error == nil {
			utils.SendTestPassedEmail(user.Email, user.FirstName, test.Title, result.Score)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test submitted successfully!", fiber.Map{
		"score":  result.Score,
		"passed": result.Passed,
	})
}

func GetTestResult(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	testID := c.Locals("test_id").(string)

	svc := services.NewAssessmentService(database.Database.Db)
	result, err := svc.Result(userID, testID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	if result == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No result yet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", result)
}

func scopedResult(c *fiber.Ctx, scope services.TestScope) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := services.NewAssessmentService(database.Database.Db)
	result, err := svc.ScopeResult(scope, userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	if result == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No result yet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", result)
}

func GetModuleTestResult(c *fiber.Ctx) error {
	return scopedResult(c, services.ModuleScope(c.Locals("module_id").(string)))
}

func GetCourseTestResult(c *fiber.Ctx) error {
	return scopedResult(c, services.CourseScope(c.Locals("course_id").(string)))
}
