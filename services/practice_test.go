package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeLifecycle(t *testing.T) {
	db := newTestDB(t)
	_, _, lessons := seedCourseTree(t, db, 1)
	svc := NewPracticeService(db)

	created, err := svc.Create(lessons[0].ID, PracticeInput{
		Title:       "Write a loop",
		Description: "Sum the numbers 1-10",
	})
	require.NoError(t, err)

	practices, err := svc.ListByLesson(lessons[0].ID)
	require.NoError(t, err)
	require.Len(t, practices, 1)

	updated, err := svc.Update(created.ID, PracticeInput{Title: "Write a for loop"})
	require.NoError(t, err)
	assert.Equal(t, "Write a for loop", updated.Title)
	assert.Equal(t, "Sum the numbers 1-10", updated.Description)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPracticeRequiresLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewPracticeService(db)

	_, err := svc.Create("99999999-9999-9999-9999-999999999999", PracticeInput{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}
