package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"Munshi/Controllers"
	"Munshi/Models"
	"Munshi/Notifications"
)

// SummaryRefresher recomputes every user's current-month summary on a
// schedule, so the cache stays warm even when nothing marked it dirty.
type SummaryRefresher struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	notify         bool
	runImmediately bool
	jobID          cron.EntryID
}

// NewSummaryRefresher creates a new summary refresher
func NewSummaryRefresher(db *gorm.DB, notify, runImmediately bool) *SummaryRefresher {
	return &SummaryRefresher{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		notify:         notify,
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly refresh
func (s *SummaryRefresher) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 30 2 * * *", func() {
		log.Println("Running scheduled summary refresh")
		s.refreshAll()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Summary refresher started - will run daily at 2:30 AM")

	if s.runImmediately {
		s.refreshAll()
	}

	return nil
}

// Stop terminates the refresher
func (s *SummaryRefresher) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Summary refresher stopped")
	}
}

// UpdateSchedule changes the refresh schedule.
// Format: "0 30 2 * * *" = at 02:30:00 AM every day
func (s *SummaryRefresher) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled summary refresh")
		s.refreshAll()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Summary refresh schedule updated to: %s\n", schedule)
	return nil
}

// refreshAll recomputes the current month for every user
func (s *SummaryRefresher) refreshAll() {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	var userIDs []uint
	if err := s.db.Model(&Models.User{}).Pluck("id", &userIDs).Error; err != nil {
		log.Printf("Summary refresh: failed to list users: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := Controllers.RecomputeMonthlySummary(s.db, userID, year, month); err != nil {
			log.Printf("Summary refresh failed for user %d: %v", userID, err)
			continue
		}
		if s.notify {
			if err := Notifications.SendSummaryReady(s.db, userID, year, month); err != nil {
				log.Printf("Summary notification failed for user %d: %v", userID, err)
			}
		}
	}

	log.Printf("Summary refresh completed for %d users", len(userIDs))
}
