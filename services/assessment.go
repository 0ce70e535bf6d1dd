package services

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	course "lms/models/course"
)

// AssessmentService manages tests with their nested question/answer trees,
// produces learner-safe projections and grades submissions. Correctness
// flags leave this service only on teacher-facing paths; everything a
// learner can reach goes through the *View types below, which have no
// correctness field at all.
type AssessmentService struct {
	db *gorm.DB
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{db: db}
}

// TestScope names the single content node a test is attached to. Using one
// (Type, ID) pair instead of three nullable references makes exclusivity
// hold by construction.
type TestScope struct {
	Type string
	ID   string
}

func LessonScope(id string) TestScope { return TestScope{Type: course.ScopeLesson, ID: id} }
func ModuleScope(id string) TestScope { return TestScope{Type: course.ScopeModule, ID: id} }
func CourseScope(id string) TestScope { return TestScope{Type: course.ScopeCourse, ID: id} }

// AnswerInput / QuestionInput / CreateTestInput carry an authoring request.
type AnswerInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text"`
	Type    string        `json:"type"`
	Answers []AnswerInput `json:"answers"`
}

type CreateTestInput struct {
	Title           string
	Scope           TestScope
	QuestionsToShow int
	PassingScore    *int
	Questions       []QuestionInput
}

// UpdateTestInput updates scalar fields; a non-nil Questions slice replaces
// the whole question tree transactionally.
type UpdateTestInput struct {
	Title           *string
	QuestionsToShow *int
	PassingScore    *int
	Questions       []QuestionInput
}

// AnswerView is the learner-safe answer projection. There is deliberately
// no correctness field here.
type AnswerView struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionView struct {
	ID        string       `json:"id"`
	TestID    string       `json:"test_id"`
	Text      string       `json:"text"`
	Type      string       `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Answers   []AnswerView `json:"answers"`
}

// TestView is the sanitized test projection, annotated with the requesting
// user's most recent result when a user is known.
type TestView struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	ScopeType       string         `json:"scope_type"`
	ScopeID         string         `json:"scope_id"`
	QuestionsToShow int            `json:"questions_to_show"`
	PassingScore    *int           `json:"passing_score"`
	CreatedAt       time.Time      `json:"created_at"`
	Questions       []QuestionView `json:"questions"`
	Completed       bool           `json:"completed"`
	Passed          bool           `json:"passed"`
	Score           int            `json:"score"`
}

// SubmittedAnswer pairs a question with the answer the learner picked.
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	AnswerID   string `json:"answer_id"`
}

// TestSummary and ResultView describe a graded submission back to the
// learner.
type TestSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	PassingScore    *int   `json:"passing_score"`
	QuestionsToShow int    `json:"questions_to_show"`
}

type ResultView struct {
	ID          string      `json:"id"`
	Score       int         `json:"score"`
	Passed      bool        `json:"passed"`
	CompletedAt time.Time   `json:"completed_at"`
	Test        TestSummary `json:"test"`
}

// ResultWithUser is the teacher-facing result row joined with the
// submitting user's identity fields.
type ResultWithUser struct {
	UserID      string    `json:"user_id"`
	FirstName   string    `json:"first_name"`
	Surname     string    `json:"surname"`
	Email       string    `json:"email"`
	Score       int       `json:"score"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
}

// Create persists a test with its questions and answers as one atomic unit.
// A test with half its questions is never observable.
func (s *AssessmentService) Create(in CreateTestInput) (*course.Test, error) {
	if err := s.validateScope(in.Scope); err != nil {
		return nil, err
	}
	if in.PassingScore != nil && (*in.PassingScore < 0 || *in.PassingScore > 100) {
		return nil, invalid("passing score must be between 0 and 100")
	}

	test := course.Test{
		Title:           in.Title,
		ScopeType:       in.Scope.Type,
		ScopeID:         in.Scope.ID,
		QuestionsToShow: in.QuestionsToShow,
		PassingScore:    in.PassingScore,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&test).Error; err != nil {
			return err
		}
		return createQuestionTree(tx, test.ID, in.Questions)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(test.ID)
}

// Update applies scalar changes; when a replacement question set is
// supplied the old tree is deleted and the new one inserted inside the same
// transaction, so a failure leaves the prior question set intact.
func (s *AssessmentService) Update(id string, in UpdateTestInput) (*course.Test, error) {
	var test course.Test
	if err := s.db.Where("id = ?", id).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("test %s", id)
		}
		return nil, err
	}

	if in.PassingScore != nil && (*in.PassingScore < 0 || *in.PassingScore > 100) {
		return nil, invalid("passing score must be between 0 and 100")
	}

	if in.Title != nil {
		test.Title = *in.Title
	}
	if in.QuestionsToShow != nil {
		test.QuestionsToShow = *in.QuestionsToShow
	}
	if in.PassingScore != nil {
		test.PassingScore = in.PassingScore
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.Questions != nil {
			var questionIDs []string
			if err := tx.Model(&course.Question{}).Where("test_id = ?", id).
				Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).
					Delete(&course.Answer{}).Error; err != nil {
					return err
				}
				if err := tx.Where("test_id = ?", id).
					Delete(&course.Question{}).Error; err != nil {
					return err
				}
			}
			if err := createQuestionTree(tx, id, in.Questions); err != nil {
				return err
			}
		}
		return tx.Save(&test).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Get returns the test with its full question/answer tree, correctness
// included. This is the authoring view; it must stay behind the teacher
// role at the boundary.
func (s *AssessmentService) Get(id string) (*course.Test, error) {
	var test course.Test
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("id = ?", id).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("test %s", id)
		}
		return nil, err
	}
	return &test, nil
}

// List returns every test with its tree, for authoring.
func (s *AssessmentService) List() ([]course.Test, error) {
	var tests []course.Test
	err := s.db.Preload("Questions").Preload("Questions.Answers").
		Order("created_at desc").Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

// Delete removes the test with its questions, answers and results.
func (s *AssessmentService) Delete(id string) error {
	var test course.Test
	if err := s.db.Select("id").Where("id = ?", id).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("test %s", id)
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteTestTrees(tx, []string{id})
	})
}

// FindByScope locates the test attached to a content node and returns its
// sanitized projection. No test configured is a normal state: (nil, nil).
// With a non-empty userID the view carries that user's most recent result.
func (s *AssessmentService) FindByScope(scope TestScope, userID string) (*TestView, error) {
	test, err := s.findTest(scope)
	if err != nil || test == nil {
		return nil, err
	}

	full, err := s.Get(test.ID)
	if err != nil {
		return nil, err
	}

	view := sanitize(full)
	if userID == "" {
		return view, nil
	}

	latest, err := s.latestResult(userID, test.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		view.Completed = true
		view.Passed = latest.Passed
		view.Score = latest.Score
	}
	return view, nil
}

// Submit grades a submission against the test's answer key and appends a
// result row. Unanswered questions and non-matching answer IDs contribute
// nothing; there is no penalty and no partial credit.
func (s *AssessmentService) Submit(userID, testID string, answers []SubmittedAnswer) (*course.UserTestResult, error) {
	test, err := s.Get(testID)
	if err != nil {
		return nil, err
	}

	picked := make(map[string]string, len(answers))
	for _, a := range answers {
		picked[a.QuestionID] = a.AnswerID
	}

	correctCount := 0
	for _, q := range test.Questions {
		answerID, ok := picked[q.ID]
		if !ok {
			continue
		}
		for _, a := range q.Answers {
			if a.IsCorrect && a.ID == answerID {
				correctCount++
				break
			}
		}
	}

	totalQuestions := len(test.Questions)
	score := 0
	if totalQuestions > 0 {
		score = int(math.Round(100 * float64(correctCount) / float64(totalQuestions)))
	}

	passingScore := 0
	if test.PassingScore != nil {
		passingScore = *test.PassingScore
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	result := course.UserTestResult{
		UserID:      userID,
		TestID:      testID,
		Score:       score,
		Passed:      score >= passingScore,
		CompletedAt: time.Now(),
		Answers:     datatypes.JSON(raw),
	}
	if err := s.db.Create(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Result returns the user's most recent result for the test, or nil when
// they have never submitted it.
func (s *AssessmentService) Result(userID, testID string) (*ResultView, error) {
	latest, err := s.latestResult(userID, testID)
	if err != nil || latest == nil {
		return nil, err
	}

	var test course.Test
	if err := s.db.Where("id = ?", testID).First(&test).Error; err != nil {
		return nil, err
	}

	return &ResultView{
		ID:          latest.ID,
		Score:       latest.Score,
		Passed:      latest.Passed,
		CompletedAt: latest.CompletedAt,
		Test: TestSummary{
			ID:              test.ID,
			Title:           test.Title,
			PassingScore:    test.PassingScore,
			QuestionsToShow: test.QuestionsToShow,
		},
	}, nil
}

// ScopeResult resolves the scope's test and delegates to Result. No test,
// or no submission yet, both come back as nil.
func (s *AssessmentService) ScopeResult(scope TestScope, userID string) (*ResultView, error) {
	test, err := s.findTest(scope)
	if err != nil || test == nil {
		return nil, err
	}
	return s.Result(userID, test.ID)
}

// ListResults returns every result for the scope's test joined with user
// identity fields, newest first. The teacher-only gate is the boundary's
// responsibility, not this method's.
func (s *AssessmentService) ListResults(scope TestScope) ([]ResultWithUser, error) {
	test, err := s.findTest(scope)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return []ResultWithUser{}, nil
	}

	var rows []ResultWithUser
	err = s.db.Model(&course.UserTestResult{}).
		Select("user_test_results.user_id, users.first_name, users.surname, users.email, "+
			"user_test_results.score, user_test_results.passed, user_test_results.completed_at").
		Joins("JOIN users ON users.id = user_test_results.user_id").
		Where("user_test_results.test_id = ?", test.ID).
		Order("user_test_results.completed_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ResultWithUser{}
	}
	return rows, nil
}

func (s *AssessmentService) findTest(scope TestScope) (*course.Test, error) {
	var test course.Test
	err := s.db.Where("scope_type = ? AND scope_id = ?", scope.Type, scope.ID).
		Order("created_at asc").
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (s *AssessmentService) latestResult(userID, testID string) (*course.UserTestResult, error) {
	var result course.UserTestResult
	err := s.db.Where("user_id = ? AND test_id = ?", userID, testID).
		Order("completed_at desc").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// validateScope checks the scope type and that the referenced content node
// exists.
func (s *AssessmentService) validateScope(scope TestScope) error {
	var model interface{}
	switch scope.Type {
	case course.ScopeLesson:
		model = &course.Lesson{}
	case course.ScopeModule:
		model = &course.Module{}
	case course.ScopeCourse:
		model = &course.Course{}
	default:
		return invalid("unknown test scope %q", scope.Type)
	}

	var count int64
	if err := s.db.Model(model).Where("id = ?", scope.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("%s %s", scope.Type, scope.ID)
	}
	return nil
}

func createQuestionTree(tx *gorm.DB, testID string, questions []QuestionInput) error {
	for _, q := range questions {
		question := course.Question{
			TestID: testID,
			Text:   q.Text,
			Type:   q.Type,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, a := range q.Answers {
			answer := course.Answer{
				QuestionID: question.ID,
				Text:       a.Text,
				IsCorrect:  a.IsCorrect,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// sanitize strips correctness from the whole tree by rebuilding it with
// view types that cannot carry the flag.
func sanitize(test *course.Test) *TestView {
	questions := make([]QuestionView, len(test.Questions))
	for i, q := range test.Questions {
		answers := make([]AnswerView, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = AnswerView{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				Text:       a.Text,
				CreatedAt:  a.CreatedAt,
			}
		}
		questions[i] = QuestionView{
			ID:        q.ID,
			TestID:    q.TestID,
			Text:      q.Text,
			Type:      q.Type,
			CreatedAt: q.CreatedAt,
			Answers:   answers,
		}
	}
	return &TestView{
		ID:              test.ID,
		Title:           test.Title,
		ScopeType:       test.ScopeType,
		ScopeID:         test.ScopeID,
		QuestionsToShow: test.QuestionsToShow,
		PassingScore:    test.PassingScore,
		CreatedAt:       test.CreatedAt,
		Questions:       questions,
	}
}
