package models

import (
	"time"
)

const (
	JobStatusApplied   = "Applied"
	JobStatusInterview = "Interview"
	JobStatusOffered   = "Offered"
	JobStatusRejected  = "Rejected"
	JobStatusAccepted  = "Accepted"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Job struct {
	BaseModel

	UserID          uint       `gorm:"not null;index" json:"user_id"`
	CompanyName     string     `gorm:"not null" json:"company_name"`
	Role            string     `gorm:"not null" json:"role"`
	Status          string     `gorm:"not null;default:Applied" json:"status"`
	ApplicationDate time.Time  `gorm:"not null" json:"application_date"`
	DeadlineDate    *time.Time `gorm:"index" json:"deadline_date"`
	Source          string     `json:"source"`
	SourceLink      string     `json:"source_link"`
	PriorityLevel   string     `gorm:"not null;default:Medium" json:"priority_level"`
	JobDescription  string     `json:"job_description"`
	ResumePath      string     `json:"resume_path"`
	Notes           string     `json:"notes"`
	Location        string     `json:"location"`
	StipendOrSalary *float64   `json:"stipend_or_salary"`
	IsPinned        bool       `gorm:"not null;default:false" json:"is_pinned"`
	ReminderOn      bool       `gorm:"not null;default:false" json:"reminder_on"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Interviews []Interview `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"interviews"`
}
