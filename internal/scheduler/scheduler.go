package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/jobtrackr-dev/jobtrackr/db"
	"github.com/jobtrackr-dev/jobtrackr/internal/models"
	"github.com/jobtrackr-dev/jobtrackr/internal/utils"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm/clause"
)

// Scheduler owns the recurring background work: the minutely reminder scan
// over upcoming deadlines and interviews, and the daily purge of expired
// notifications.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Start registers the cron entries and begins scheduling.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		s.RunReminderScan(time.Now())
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		s.PurgeExpiredNotifications(time.Now())
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Scheduler started")
	return nil
}

// Stop shuts the scheduler down, waiting for a running scan to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// RunReminderScan creates a reminder notification for every job deadline and
// interview falling exactly 1 or 2 calendar days after now. Inserts carry the
// current day bucket, so the unique index makes the whole operation
// insert-or-ignore: re-running the scan within the same day is a no-op.
// Failures are logged and skipped; the next cycle retries naturally.
func (s *Scheduler) RunReminderScan(now time.Time) {
	today := utils.StartOfDay(now)

	var jobs []models.Job

	if err := db.DB.Where("reminder_on = ? AND deadline_date IS NOT NULL", true).Find(&jobs).Error; err != nil {
		log.Printf("Reminder scan: failed to load jobs: %v", err)
	} else {
		for _, job := range jobs {
			days := utils.DaysBetween(today, utils.StartOfDay(*job.DeadlineDate))

			if days != 1 && days != 2 {
				continue
			}

			message := fmt.Sprintf("Reminder: Deadline for %s at %s is %s on %s.",
				job.Role, job.CompanyName, daysPhrase(days), utils.FormatShortDate(*job.DeadlineDate))

			s.insertReminder(job.UserID, message, today)
		}
	}

	var interviews []models.Interview

	// All interviews with a date are scanned; the job's reminder flag only
	// gates deadline reminders.
	if err := db.DB.Preload("Job").Where("interview_date IS NOT NULL").Find(&interviews).Error; err != nil {
		log.Printf("Reminder scan: failed to load interviews: %v", err)
		return
	}

	for _, interview := range interviews {
		days := utils.DaysBetween(today, utils.StartOfDay(interview.InterviewDate))

		if days != 1 && days != 2 {
			continue
		}

		message := fmt.Sprintf("Reminder: Interview for %s at %s (Round: %s) is %s on %s.",
			interview.Job.Role, interview.Job.CompanyName, interview.Round,
			daysPhrase(days), utils.FormatShortDate(interview.InterviewDate))

		s.insertReminder(interview.Job.UserID, message, today)
	}
}

// PurgeExpiredNotifications removes notifications past the retention window.
func (s *Scheduler) PurgeExpiredNotifications(now time.Time) {
	cutoff := now.Add(-models.NotificationRetention)

	result := db.DB.Where("created_at < ?", cutoff).Delete(&models.Notification{})

	if result.Error != nil {
		log.Printf("Failed to purge expired notifications: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired notifications", result.RowsAffected)
	}
}

func (s *Scheduler) insertReminder(userID uint, message string, day time.Time) {
	notification := models.Notification{
		UserID:    userID,
		Message:   message,
		DayBucket: &day,
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&notification).Error; err != nil {
		log.Printf("Failed to insert reminder for user %d: %v", userID, err)
	}
}

func daysPhrase(days int) string {
	if days == 1 {
		return "tomorrow"
	}
	return "in 2 days"
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler
func Initialize() error {
	globalScheduler = NewScheduler()
	return globalScheduler.Start()
}

// Shutdown stops the global scheduler
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}
