package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/database"
	"lms/models"
	course "lms/models/course"
)

// newTestDB opens a private in-memory database and applies migrations.
// The DSN is keyed by test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Aizhan",
		Surname:   "Bekova",
		Email:     fmt.Sprintf("%s@example.com", t.Name()),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, title string) course.Course {
	t.Helper()
	crs := course.Course{Title: title, DifficultyLevel: "beginner"}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func seedModule(t *testing.T, db *gorm.DB, courseID, title string, position int) course.Module {
	t.Helper()
	mod := course.Module{CourseID: courseID, Title: title, Position: position}
	require.NoError(t, db.Create(&mod).Error)
	return mod
}

func seedLesson(t *testing.T, db *gorm.DB, moduleID, title string, position int) course.Lesson {
	t.Helper()
	lesson := course.Lesson{ModuleID: moduleID, Title: title, Position: position}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

// seedCourseTree builds a course with one module and the given number of
// lessons, returning all of it for assertions.
func seedCourseTree(t *testing.T, db *gorm.DB, lessonCount int) (course.Course, course.Module, []course.Lesson) {
	t.Helper()
	crs := seedCourse(t, db, "Go Fundamentals")
	mod := seedModule(t, db, crs.ID, "Basics", 0)
	lessons := make([]course.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = seedLesson(t, db, mod.ID, fmt.Sprintf("Lesson %d", i+1), i)
	}
	return crs, mod, lessons
}

func intPtr(v int) *int { return &v }
