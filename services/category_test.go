package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	course "lms/models/course"
)

func TestCategoryDuplicateNameConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	created, err := svc.Create(CategoryInput{Name: "Backend"})
	require.NoError(t, err)

	_, err = svc.Create(CategoryInput{Name: "Backend"})
	assert.ErrorIs(t, err, ErrConflict)

	other, err := svc.Create(CategoryInput{Name: "Frontend"})
	require.NoError(t, err)

	// Renaming onto an existing name is the same conflict.
	_, err = svc.Update(other.ID, CategoryInput{Name: "Backend"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(created.ID, CategoryInput{Description: "Server-side topics"})
	require.NoError(t, err)
}

func TestCategoryListCountsCourses(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	backend, err := svc.Create(CategoryInput{Name: "Backend"})
	require.NoError(t, err)
	_, err = svc.Create(CategoryInput{Name: "Algorithms"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&course.Course{Title: "Go", CategoryID: &backend.ID}).Error)

	categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, categories, 2)

	// Alphabetical order.
	assert.Equal(t, "Algorithms", categories[0].Name)
	assert.Zero(t, categories[0].CourseCount)
	assert.Equal(t, "Backend", categories[1].Name)
	assert.Equal(t, int64(1), categories[1].CourseCount)
}

func TestCategoryDeleteRefusesWhenInUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	category, err := svc.Create(CategoryInput{Name: "Used"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&course.Course{Title: "Go", CategoryID: &category.ID}).Error)

	err = svc.Delete(category.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, db.Where("category_id = ?", category.ID).Delete(&course.Course{}).Error)
	require.NoError(t, svc.Delete(category.ID))

	_, err = svc.Get(category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
