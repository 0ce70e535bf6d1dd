package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	course "lms/models/course"
)

func TestCreateModulePositionDefaults(t *testing.T) {
	db := newTestDB(t)
	crs := seedCourse(t, db, "Databases")
	svc := NewContentService(db)

	first, err := svc.CreateModule(crs.ID, ModuleInput{Title: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := svc.CreateModule(crs.ID, ModuleInput{Title: "Joins"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	explicit, err := svc.CreateModule(crs.ID, ModuleInput{Title: "Indexes", Position: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, explicit.Position)

	// The default keeps appending after the highest occupied position.
	next, err := svc.CreateModule(crs.ID, ModuleInput{Title: "Tuning"})
	require.NoError(t, err)
	assert.Equal(t, 8, next.Position)
}

func TestCreateModuleUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	_, err := svc.CreateModule("11111111-1111-1111-1111-111111111111", ModuleInput{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModuleMembershipIsStructural(t *testing.T) {
	db := newTestDB(t)
	crsA := seedCourse(t, db, "Course A")
	crsB := seedCourse(t, db, "Course B")
	mod := seedModule(t, db, crsA.ID, "A1", 0)
	svc := NewContentService(db)

	// The module exists but belongs to another course. That must be
	// indistinguishable from a missing module.
	_, err := svc.GetModule(crsB.ID, mod.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateModule(crsB.ID, mod.ID, ModuleInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetModule(crsA.ID, mod.ID)
	require.NoError(t, err)
	assert.Equal(t, mod.ID, got.ID)
}

func TestListModulesOrdersByPosition(t *testing.T) {
	db := newTestDB(t)
	crs := seedCourse(t, db, "Ordered")
	seedModule(t, db, crs.ID, "Third", 2)
	seedModule(t, db, crs.ID, "First", 0)
	seedModule(t, db, crs.ID, "Second", 1)
	svc := NewContentService(db)

	modules, err := svc.ListModules(crs.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "First", modules[0].Title)
	assert.Equal(t, "Second", modules[1].Title)
	assert.Equal(t, "Third", modules[2].Title)
}

func TestReorderModuleWritesPositionVerbatim(t *testing.T) {
	db := newTestDB(t)
	crs := seedCourse(t, db, "Reorder")
	modA := seedModule(t, db, crs.ID, "A", 0)
	modB := seedModule(t, db, crs.ID, "B", 1)
	svc := NewContentService(db)

	// Colliding positions are allowed; siblings are not renumbered.
	updated, err := svc.ReorderModule(crs.ID, modB.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Position)

	var untouched course.Module
	require.NoError(t, db.First(&untouched, "id = ?", modA.ID).Error)
	assert.Equal(t, 0, untouched.Position)

	_, err = svc.ReorderModule(crs.ID, modB.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateLessonChainVerification(t *testing.T) {
	db := newTestDB(t)
	crs := seedCourse(t, db, "Chain")
	other := seedCourse(t, db, "Other")
	mod := seedModule(t, db, crs.ID, "M", 0)
	svc := NewContentService(db)

	lesson, err := svc.CreateLesson(crs.ID, mod.ID, LessonInput{Title: "L1", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, 0, lesson.Position)

	// Claiming the module under the wrong course fails the whole chain.
	_, err = svc.CreateLesson(other.ID, mod.ID, LessonInput{Title: "L2"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteModuleCascades(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, mod, lessons := seedCourseTree(t, db, 3)

	require.NoError(t, db.Create(&course.Practice{LessonID: lessons[0].ID, Title: "P"}).Error)
	require.NoError(t, db.Create(&course.LessonCompletion{
		UserID: user.ID, CourseID: crs.ID, LessonID: lessons[0].ID,
	}).Error)
	require.NoError(t, db.Create(&course.Test{
		Title: "Quiz", ScopeType: course.ScopeLesson, ScopeID: lessons[1].ID,
	}).Error)
	require.NoError(t, db.Create(&course.Test{
		Title: "Module Quiz", ScopeType: course.ScopeModule, ScopeID: mod.ID,
	}).Error)

	svc := NewContentService(db)
	removed, err := svc.DeleteModule(crs.ID, mod.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	var counts = map[string]interface{}{
		"lessons":     &course.Lesson{},
		"practices":   &course.Practice{},
		"completions": &course.LessonCompletion{},
		"tests":       &course.Test{},
	}
	for name, model := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, name)
	}
}

func TestDeleteLessonRemovesDependents(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	crs, mod, lessons := seedCourseTree(t, db, 2)

	require.NoError(t, db.Create(&course.Practice{LessonID: lessons[0].ID, Title: "P"}).Error)
	require.NoError(t, db.Create(&course.LessonCompletion{
		UserID: user.ID, CourseID: crs.ID, LessonID: lessons[0].ID,
	}).Error)

	svc := NewContentService(db)
	require.NoError(t, svc.DeleteLesson(crs.ID, mod.ID, lessons[0].ID))

	var lessonCount, practiceCount, completionCount int64
	require.NoError(t, db.Model(&course.Lesson{}).Count(&lessonCount).Error)
	require.NoError(t, db.Model(&course.Practice{}).Count(&practiceCount).Error)
	require.NoError(t, db.Model(&course.LessonCompletion{}).Count(&completionCount).Error)
	assert.Equal(t, int64(1), lessonCount)
	assert.Zero(t, practiceCount)
	assert.Zero(t, completionCount)
}

func TestAttachMaterial(t *testing.T) {
	db := newTestDB(t)
	crs, mod, lessons := seedCourseTree(t, db, 1)
	svc := NewContentService(db)

	updated, err := svc.AttachMaterial(crs.ID, mod.ID, lessons[0].ID, "/uploads/lessons/slides.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/lessons/slides.pdf", updated.MaterialURL)
}
