package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	course "lms/models/course"
)

func TestRegisterIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs := seedCourse(t, db, "Go Basics")
	svc := NewEnrollmentService(db)

	first, err := svc.Register(crs.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, course.EnrollmentActive, first.Status)
	assert.Zero(t, first.Progress)

	second, err := svc.Register(crs.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&course.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs := seedCourse(t, db, "Go Basics")
	svc := NewEnrollmentService(db)

	_, err := svc.Register(crs.ID, "22222222-2222-2222-2222-222222222222")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register("33333333-3333-3333-3333-333333333333", user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckRegistrationAbsenceIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs := seedCourse(t, db, "Go Basics")
	svc := NewEnrollmentService(db)

	registered, enrollment, err := svc.CheckRegistration(user.ID, crs.ID)
	require.NoError(t, err)
	assert.False(t, registered)
	assert.Nil(t, enrollment)

	_, err = svc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	registered, enrollment, err = svc.CheckRegistration(user.ID, crs.ID)
	require.NoError(t, err)
	assert.True(t, registered)
	require.NotNil(t, enrollment)
	assert.Equal(t, crs.ID, enrollment.CourseID)
}

func TestUpdateLastLessonRequiresCourseMembership(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 2)
	foreign := seedCourse(t, db, "Foreign")
	foreignMod := seedModule(t, db, foreign.ID, "FM", 0)
	foreignLesson := seedLesson(t, db, foreignMod.ID, "FL", 0)
	svc := NewEnrollmentService(db)

	_, err := svc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateLastLesson(user.ID, crs.ID, lessons[1].ID))

	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).
		First(&enrollment).Error)
	require.NotNil(t, enrollment.LastLessonID)
	assert.Equal(t, lessons[1].ID, *enrollment.LastLessonID)

	// A lesson from another course is rejected as if it did not exist.
	err = svc.UpdateLastLesson(user.ID, crs.ID, foreignLesson.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEnrolledNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	first := seedCourse(t, db, "First Course")
	second := seedCourse(t, db, "Second Course")
	svc := NewEnrollmentService(db)

	enrFirst, err := svc.Register(first.ID, user.ID)
	require.NoError(t, err)
	enrSecond, err := svc.Register(second.ID, user.ID)
	require.NoError(t, err)

	// Force a strict ordering; sqlite timestamps can collide within a test.
	require.NoError(t, db.Model(&course.Enrollment{}).Where("id = ?", enrFirst.ID).
		Update("created_at", enrSecond.CreatedAt.Add(-time.Second)).Error)

	enrolled, err := svc.ListEnrolled(user.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 2)
	assert.Equal(t, "Second Course", enrolled[0].Course.Title)
	assert.Equal(t, "First Course", enrolled[1].Course.Title)
}

func TestListEnrolledWithLastLesson(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, mod, lessons := seedCourseTree(t, db, 2)
	svc := NewEnrollmentService(db)

	_, err := svc.Register(crs.ID, user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateLastLesson(user.ID, crs.ID, lessons[0].ID))

	enrolled, err := svc.ListEnrolledWithLastLesson(user.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	require.NotNil(t, enrolled[0].LastLesson)
	assert.Equal(t, lessons[0].ID, enrolled[0].LastLesson.ID)
	assert.Equal(t, mod.Title, enrolled[0].ModuleTitle)
	assert.Equal(t, int64(2), enrolled[0].LessonCount)
}

func TestGetProgressReturnsLedger(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 4)
	enrollSvc := NewEnrollmentService(db)
	completeSvc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	_, err = completeSvc.CompleteLesson(user.ID, crs.ID, lessons[0].ID)
	require.NoError(t, err)
	_, err = completeSvc.CompleteLesson(user.ID, crs.ID, lessons[2].ID)
	require.NoError(t, err)

	progress, err := enrollSvc.GetProgress(user.ID, crs.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress.Progress, 0.001)
	assert.ElementsMatch(t, []string{lessons[0].ID, lessons[2].ID}, progress.CompletedLessonIDs)
}

func TestGetProgressWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs := seedCourse(t, db, "Unenrolled")
	svc := NewEnrollmentService(db)

	_, err := svc.GetProgress(user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
