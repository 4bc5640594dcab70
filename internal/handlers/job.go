package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobtrackr-dev/jobtrackr/db"
	"github.com/jobtrackr-dev/jobtrackr/internal/models"
	"github.com/jobtrackr-dev/jobtrackr/internal/utils"
	"gorm.io/gorm"
)

type InterviewInput struct {
	Round         string    `json:"round" binding:"required"`
	InterviewDate time.Time `json:"interview_date" binding:"required"`
	Status        string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
	Comments      string    `json:"comments"`
}

type JobRequest struct {
	CompanyName     string           `json:"company_name" binding:"required"`
	Role            string           `json:"role" binding:"required"`
	Status          string           `json:"status" binding:"omitempty,oneof=Applied Interview Offered Rejected Accepted"`
	ApplicationDate *time.Time       `json:"application_date"`
	DeadlineDate    *time.Time       `json:"deadline_date"`
	Source          string           `json:"source"`
	SourceLink      string           `json:"source_link"`
	PriorityLevel   string           `json:"priority_level" binding:"omitempty,oneof=Low Medium High"`
	JobDescription  string           `json:"job_description"`
	ResumePath      string           `json:"resume_path"`
	Notes           string           `json:"notes"`
	Location        string           `json:"location"`
	StipendOrSalary *float64         `json:"stipend_or_salary" binding:"omitempty,gte=0"`
	ReminderOn      bool             `json:"reminder_on"`
	Interviews      []InterviewInput `json:"interviews" binding:"omitempty,dive"`
}

type ToggleReminderRequest struct {
	ReminderOn *bool `json:"reminder_on" binding:"required"`
}

func AddJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req JobRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateInterviews(req.Interviews); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applicationDate := time.Now()
	if req.ApplicationDate != nil {
		applicationDate = *req.ApplicationDate
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusApplied
	}

	priority := req.PriorityLevel
	if priority == "" {
		priority = models.PriorityMedium
	}

	job := models.Job{
		UserID:          userID,
		CompanyName:     strings.TrimSpace(req.CompanyName),
		Role:            strings.TrimSpace(req.Role),
		Status:          status,
		ApplicationDate: applicationDate,
		DeadlineDate:    req.DeadlineDate,
		Source:          strings.TrimSpace(req.Source),
		SourceLink:      strings.TrimSpace(req.SourceLink),
		PriorityLevel:   priority,
		JobDescription:  req.JobDescription,
		ResumePath:      req.ResumePath,
		Notes:           req.Notes,
		Location:        strings.TrimSpace(req.Location),
		StipendOrSalary: req.StipendOrSalary,
		ReminderOn:      req.ReminderOn,
	}

	if err := db.DB.Create(&job).Error; err != nil {
		log.Printf("Failed to create job: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add job"})
		return
	}

	created, err := createInterviews(job.ID, req.Interviews)

	if err != nil {
		log.Printf("Failed to create interviews for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add job"})
		return
	}

	job.Interviews = created

	createUserNotification(userID, fmt.Sprintf("Job added: %s at %s", job.Role, job.CompanyName))

	if len(created) > 0 {
		createUserNotification(userID, fmt.Sprintf("Added %d interviews for %s at %s", len(created), job.Role, job.CompanyName))
	}

	ctx.JSON(http.StatusCreated, job)
}

func GetJobs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("user_id = ?", userID)

	if status := ctx.Query("status"); status != "" && status != "All" {
		query = query.Where("status = ?", status)
	}

	if priority := ctx.Query("priority_level"); priority != "" && priority != "All" {
		query = query.Where("priority_level = ?", priority)
	}

	if pinned := ctx.Query("is_pinned"); pinned != "" && pinned != "All" {
		query = query.Where("is_pinned = ?", pinned == "Pinned")
	}

	if search := ctx.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(role) LIKE ?", like, like)
	}

	if source := ctx.Query("source"); source != "" {
		query = query.Where("LOWER(source) LIKE ?", "%"+strings.ToLower(source)+"%")
	}

	if location := ctx.Query("location"); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	switch ctx.Query("sort") {
	case "application_date-asc":
		query = query.Order("application_date ASC")
	case "deadline_date-asc":
		query = query.Order("deadline_date ASC")
	case "priority_level-desc":
		query = query.Order("CASE priority_level WHEN 'High' THEN 3 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 1 ELSE 0 END DESC, company_name ASC")
	default:
		query = query.Order("application_date DESC")
	}

	var jobs []models.Job

	if err := query.Preload("Interviews").Find(&jobs).Error; err != nil {
		log.Printf("Failed to fetch jobs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	ctx.JSON(http.StatusOK, jobs)
}

func GetJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.Job

	if err := db.DB.Preload("Interviews").Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	ctx.JSON(http.StatusOK, job)
}

func GetJobDetails(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.Job

	if err := db.DB.Preload("Interviews").Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job details"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"job": job})
}

func UpdateJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req JobRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateInterviews(req.Interviews); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.Job

	if err := db.DB.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	job.CompanyName = strings.TrimSpace(req.CompanyName)
	job.Role = strings.TrimSpace(req.Role)
	if req.Status != "" {
		job.Status = req.Status
	}
	if req.ApplicationDate != nil {
		job.ApplicationDate = *req.ApplicationDate
	}
	job.DeadlineDate = req.DeadlineDate
	job.Source = strings.TrimSpace(req.Source)
	job.SourceLink = strings.TrimSpace(req.SourceLink)
	if req.PriorityLevel != "" {
		job.PriorityLevel = req.PriorityLevel
	}
	job.JobDescription = req.JobDescription
	if req.ResumePath != "" {
		job.ResumePath = req.ResumePath
	}
	if req.Notes != "" {
		job.Notes = req.Notes
	}
	job.Location = strings.TrimSpace(req.Location)
	job.StipendOrSalary = req.StipendOrSalary
	job.ReminderOn = req.ReminderOn

	if err := db.DB.Save(&job).Error; err != nil {
		log.Printf("Failed to update job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	// Interviews are replaced wholesale, not merged.
	if err := db.DB.Where("job_id = ?", job.ID).Delete(&models.Interview{}).Error; err != nil {
		log.Printf("Failed to delete interviews for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	created, err := createInterviews(job.ID, req.Interviews)

	if err != nil {
		log.Printf("Failed to recreate interviews for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	job.Interviews = created

	createUserNotification(userID, fmt.Sprintf("Job updated: %s at %s", job.Role, job.CompanyName))

	if len(created) > 0 {
		createUserNotification(userID, fmt.Sprintf("Updated %d interviews for %s at %s", len(created), job.Role, job.CompanyName))
	}

	ctx.JSON(http.StatusOK, job)
}

func DeleteJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.Job

	if err := db.DB.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	if err := db.DB.Where("job_id = ?", job.ID).Delete(&models.Interview{}).Error; err != nil {
		log.Printf("Failed to delete interviews for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}

	if err := db.DB.Delete(&job).Error; err != nil {
		log.Printf("Failed to delete job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func ToggleReminder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ToggleReminderRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var job models.Job

	if err := db.DB.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	job.ReminderOn = *req.ReminderOn

	if err := db.DB.Save(&job).Error; err != nil {
		log.Printf("Failed to toggle reminder for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle reminder"})
		return
	}

	state := "disabled"
	if job.ReminderOn {
		state = "enabled"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Reminder " + state,
		"reminder_on": job.ReminderOn,
	})
}

func TogglePin(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.Job

	if err := db.DB.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	job.IsPinned = !job.IsPinned

	if err := db.DB.Save(&job).Error; err != nil {
		log.Printf("Failed to toggle pin for job %d: %v", job.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle pin"})
		return
	}

	action := "unpinned"
	if job.IsPinned {
		action = "pinned"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Job %s: %s at %s", action, job.Role, job.CompanyName),
		"is_pinned": job.IsPinned,
	})
}

// DisableNotifications clears ReminderOn on every job belonging to the given
// email. It backs the unsubscribe link embedded in reminder mails.
func DisableNotifications(ctx *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(ctx.Query("email")))

	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable notifications"})
		}
		return
	}

	result := db.DB.Model(&models.Job{}).Where("user_id = ?", user.ID).Update("reminder_on", false)

	if result.Error != nil {
		log.Printf("Failed to disable notifications: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable notifications"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusOK, gin.H{"message": "No jobs found to disable notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Disabled notifications for all jobs (%d jobs updated)", result.RowsAffected),
	})
}

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func UploadResume(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, err := ctx.FormFile("resume")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	if !allowedResumeExtensions[ext] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Printf("Failed to create upload directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload resume"})
		return
	}

	filename := uuid.NewString() + ext

	if err := ctx.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		log.Printf("Failed to save uploaded resume: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload resume"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"resume_path": "/uploads/" + filename})
}

func validateInterviews(interviews []InterviewInput) error {
	for _, interview := range interviews {
		if !models.ValidInterviewRound(interview.Round) {
			return fmt.Errorf("Invalid interview round: %s", interview.Round)
		}
		if interview.InterviewDate.IsZero() {
			return errors.New("Invalid interview data: round and interview date are required")
		}
	}
	return nil
}

func createInterviews(jobID uint, inputs []InterviewInput) ([]models.Interview, error) {
	created := make([]models.Interview, 0, len(inputs))

	for _, input := range inputs {
		status := input.Status
		if status == "" {
			status = models.InterviewScheduled
		}

		interview := models.Interview{
			JobID:         jobID,
			Round:         input.Round,
			InterviewDate: input.InterviewDate,
			Status:        status,
			Comments:      input.Comments,
		}

		if err := db.DB.Create(&interview).Error; err != nil {
			return nil, err
		}

		created = append(created, interview)
	}

	return created, nil
}

func createUserNotification(userID uint, message string) {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
	}
}
