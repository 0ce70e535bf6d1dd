package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

// Imports a course catalog from Catalog.csv. Expected columns:
// category, course_title, difficulty, module_title, module_position,
// lesson_title, lesson_position, lesson_content
// Rows repeat the course/module cells for every lesson; categories, courses
// and modules are created once and reused on repeated runs by name/title.
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	file, err := os.Open("Catalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file has no data rows")
	}

	imported := 0
	for i, record := range records[1:] {
		if len(record) < 8 {
			log.Printf("Skipping row %d: expected 8 columns, got %d", i+2, len(record))
			continue
		}

		categoryName := record[0]
		courseTitle := record[1]
		difficulty := record[2]
		moduleTitle := record[3]
		modulePosition := parsePosition(record[4], i+2)
		lessonTitle := record[5]
		lessonPosition := parsePosition(record[6], i+2)
		lessonContent := record[7]

		var categoryID *string
		if categoryName != "" {
			var category models.Category
			if err := db.Where("name = ?", categoryName).
				FirstOrCreate(&category, models.Category{Name: categoryName}).Error; err != nil {
				log.Printf("Skipping row %d: category: %v", i+2, err)
				continue
			}
			categoryID = &category.ID
		}

		var crs courseModels.Course
		if err := db.Where("title = ?", courseTitle).
			FirstOrCreate(&crs, courseModels.Course{
				Title:           courseTitle,
				DifficultyLevel: difficulty,
				CategoryID:      categoryID,
			}).Error; err != nil {
			log.Printf("Skipping row %d: course: %v", i+2, err)
			continue
		}

		var module courseModels.Module
		if err := db.Where("course_id = ? AND title = ?", crs.ID, moduleTitle).
			FirstOrCreate(&module, courseModels.Module{
				CourseID: crs.ID,
				Title:    moduleTitle,
				Position: modulePosition,
			}).Error; err != nil {
			log.Printf("Skipping row %d: module: %v", i+2, err)
			continue
		}

		var lesson courseModels.Lesson
		if err := db.Where("module_id = ? AND title = ?", module.ID, lessonTitle).
			FirstOrCreate(&lesson, courseModels.Lesson{
				ModuleID: module.ID,
				Title:    lessonTitle,
				Content:  lessonContent,
				Position: lessonPosition,
			}).Error; err != nil {
			log.Printf("Skipping row %d: lesson: %v", i+2, err)
			continue
		}
		imported++
	}

	log.Printf("Catalog import finished: %d lesson row(s) processed", imported)
}

func parsePosition(raw string, row int) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		log.Printf("Row %d: invalid position %q, using 0", row, raw)
		return 0
	}
	return value
}
