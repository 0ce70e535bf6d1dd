package utils

import (
	"log"

	"github.com/robfig/cron/v3"

	"lms/database"
	courseModels "lms/models/course"
)

// InitializeProgressScheduler starts the nightly reconciliation job.
// Progress is already recomputed from the ledger on every completion; this
// job re-derives it for every enrollment anyway, so a write lost to a crash
// mid-transaction heals without waiting for the user's next completion.
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress reconciliation scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Scheduler started - runs daily at 3 AM")
}

// ReconcileEnrollmentProgress recomputes every enrollment's progress from
// the completion ledger and repairs any drift.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	repaired := 0
	for _, enrollment := range enrollments {
		var totalLessons int64
		if err := db.Model(&courseModels.Lesson{}).
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Where("modules.course_id = ?", enrollment.CourseID).
			Count(&totalLessons).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error counting lessons for course %s: %v", enrollment.CourseID, err)
			continue
		}

		var completedLessons int64
		if err := db.Model(&courseModels.LessonCompletion{}).
			Where("user_id = ? AND course_id = ?", enrollment.UserID, enrollment.CourseID).
			Count(&completedLessons).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error counting completions for enrollment %s: %v", enrollment.ID, err)
			continue
		}

		progress := float64(0)
		if totalLessons > 0 {
			progress = 100 * float64(completedLessons) / float64(totalLessons)
		}

		if progress == enrollment.Progress {
			continue
		}

		enrollment.Progress = progress
		if progress >= 100 {
			enrollment.Status = courseModels.EnrollmentCompleted
		} else {
			enrollment.Status = courseModels.EnrollmentActive
		}
		if err := db.Save(&enrollment).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error saving enrollment %s: %v", enrollment.ID, err)
			continue
		}
		repaired++
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciliation done, %d enrollment(s) repaired", repaired)
}
