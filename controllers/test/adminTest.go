package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services"
	testValidator "lms/validators/test"
)

func questionInputs(questions []testValidator.QuestionRequest) []services.QuestionInput {
	out := make([]services.QuestionInput, 0, len(questions))
	for _, q := range questions {
		answers := make([]services.AnswerInput, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, services.AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		out = append(out, services.QuestionInput{Text: q.Text, Type: q.Type, Answers: answers})
	}
	return out
}

func AdminCreateTest(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTest").(*testValidator.CreateTestRequest)

	svc := services.NewAssessmentService(database.Database.Db)
	created, err := svc.Create(services.CreateTestInput{
		Title:           reqData.Title,
		Scope:           services.TestScope{Type: reqData.ScopeType, ID: reqData.ScopeID},
		QuestionsToShow: reqData.QuestionsToShow,
		PassingScore:    reqData.PassingScore,
		Questions:       questionInputs(reqData.Questions),
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test created successfully!", created)
}

func AdminListTests(c *fiber.Ctx) error {
	svc := services.NewAssessmentService(database.Database.Db)
	tests, err := svc.List()
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tests fetched successfully!", tests)
}

func AdminGetTest(c *fiber.Ctx) error {
	testID := c.Locals("test_id").(string)

	svc := services.NewAssessmentService(database.Database.Db)
	test, err := svc.Get(testID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test fetched successfully!", test)
}

func AdminUpdateTest(c *fiber.Ctx) error {
	testID := c.Locals("test_id").(string)
	reqData := c.Locals("validatedTestUpdate").(*testValidator.UpdateTestRequest)

	in := services.UpdateTestInput{
		QuestionsToShow: reqData.QuestionsToShow,
		PassingScore:    reqData.PassingScore,
	}
	if reqData.Title != "" {
		in.Title = &reqData.Title
	}
	if reqData.Questions != nil {
		in.Questions = questionInputs(reqData.Questions)
	}

	svc := services.NewAssessmentService(database.Database.Db)
	updated, err := svc.Update(testID, in)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test updated successfully!", updated)
}

func AdminDeleteTest(c *fiber.Ctx) error {
	testID := c.Locals("test_id").(string)

	svc := services.NewAssessmentService(database.Database.Db)
	if err := svc.Delete(testID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test deleted successfully!", nil)
}

func adminScopedResults(c *fiber.Ctx, scope services.TestScope) error {
	svc := services.NewAssessmentService(database.Database.Db)
	results, err := svc.ListResults(scope)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", results)
}

func AdminLessonTestResults(c *fiber.Ctx) error {
	return adminScopedResults(c, services.LessonScope(c.Locals("lesson_id").(string)))
}

func AdminModuleTestResults(c *fiber.Ctx) error {
	return adminScopedResults(c, services.ModuleScope(c.Locals("module_id").(string)))
}

func AdminCourseTestResults(c *fiber.Ctx) error {
	return adminScopedResults(c, services.CourseScope(c.Locals("course_id").(string)))
}
