package models

import (
	"time"
)

const (
	InterviewScheduled = "Scheduled"
	InterviewCompleted = "Completed"
	InterviewCancelled = "Cancelled"
)

// InterviewRounds lists the accepted round types for an interview.
var InterviewRounds = []string{
	"Coding", "Technical", "Aptitude", "Group Discussion", "HR",
	"System Design", "Behavioral", "Final", "Other",
}

type Interview struct {
	BaseModel

	JobID         uint      `gorm:"not null;index" json:"job_id"`
	Round         string    `gorm:"not null" json:"round"`
	InterviewDate time.Time `gorm:"not null" json:"interview_date"`
	Status        string    `gorm:"not null;default:Scheduled" json:"status"`
	Comments      string    `json:"comments"`

	// Relationships
	Job Job `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func ValidInterviewRound(round string) bool {
	for _, r := range InterviewRounds {
		if r == round {
			return true
		}
	}
	return false
}
