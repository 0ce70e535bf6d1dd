package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	course "lms/models/course"
)

func TestCompleteLessonRecomputesProgress(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 4)
	enrollSvc := NewEnrollmentService(db)
	svc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	progress, err := svc.CompleteLesson(user.ID, crs.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, progress, 0.001)

	progress, err = svc.CompleteLesson(user.ID, crs.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)

	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).
		First(&enrollment).Error)
	assert.InDelta(t, 50.0, enrollment.Progress, 0.001)
	assert.Equal(t, course.EnrollmentActive, enrollment.Status)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 4)
	enrollSvc := NewEnrollmentService(db)
	svc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		progress, err := svc.CompleteLesson(user.ID, crs.ID, lessons[0].ID)
		require.NoError(t, err)
		assert.InDelta(t, 25.0, progress, 0.001)
	}

	var count int64
	require.NoError(t, db.Model(&course.LessonCompletion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompletingEveryLessonCompletesEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 2)
	enrollSvc := NewEnrollmentService(db)
	svc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	for _, lesson := range lessons {
		_, err := svc.CompleteLesson(user.ID, crs.ID, lesson.ID)
		require.NoError(t, err)
	}

	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).
		First(&enrollment).Error)
	assert.InDelta(t, 100.0, enrollment.Progress, 0.001)
	assert.Equal(t, course.EnrollmentCompleted, enrollment.Status)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, lessons := seedCourseTree(t, db, 1)
	svc := NewCompletionService(db)

	_, err := svc.CompleteLesson(user.ID, crs.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteLessonRejectsForeignLesson(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, _, _ := seedCourseTree(t, db, 1)
	foreign := seedCourse(t, db, "Other")
	foreignMod := seedModule(t, db, foreign.ID, "FM", 0)
	foreignLesson := seedLesson(t, db, foreignMod.ID, "FL", 0)
	enrollSvc := NewEnrollmentService(db)
	svc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	// A lesson from another course must not be completable through this
	// enrollment, even though the lesson itself exists.
	_, err = svc.CompleteLesson(user.ID, crs.ID, foreignLesson.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&course.LessonCompletion{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProgressSurvivesContentGrowth(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, mod, lessons := seedCourseTree(t, db, 2)
	enrollSvc := NewEnrollmentService(db)
	svc := NewCompletionService(db)

	_, err := enrollSvc.Register(crs.ID, user.ID)
	require.NoError(t, err)

	progress, err := svc.CompleteLesson(user.ID, crs.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)

	// New content dilutes progress on the next recomputation instead of
	// leaving a stale figure behind.
	seedLesson(t, db, mod.ID, "Added later", 2)
	seedLesson(t, db, mod.ID, "Added even later", 3)

	progress, err = svc.CompleteLesson(user.ID, crs.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)
}
