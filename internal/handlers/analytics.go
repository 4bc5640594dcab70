package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr-dev/jobtrackr/db"
	"github.com/jobtrackr-dev/jobtrackr/internal/models"
	"github.com/jobtrackr-dev/jobtrackr/internal/utils"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type MonthCount struct {
	Date  string `json:"date"` // YYYY-MM
	Count int64  `json:"count"`
}

type SuccessRate struct {
	Stage string  `json:"stage"`
	Rate  float64 `json:"rate"`
}

func analyticsQuery(ctx *gin.Context, userID uint) *gorm.DB {
	query := db.DB.Model(&models.Job{}).Where("user_id = ?", userID)

	if jobTitle := ctx.Query("job_title"); jobTitle != "" {
		query = query.Where("LOWER(role) LIKE ?", "%"+strings.ToLower(jobTitle)+"%")
	}

	if company := ctx.Query("company"); company != "" {
		query = query.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(company)+"%")
	}

	if source := ctx.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}

	return query
}

func GetStatusDistribution(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var distribution []StatusCount

	if err := analyticsQuery(ctx, userID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&distribution).Error; err != nil {
		log.Printf("Failed to compute status distribution: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute status distribution"})
		return
	}

	ctx.JSON(http.StatusOK, distribution)
}

func GetApplicationsBySource(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var bySource []SourceCount

	if err := analyticsQuery(ctx, userID).
		Select("source, COUNT(*) as count").
		Group("source").
		Scan(&bySource).Error; err != nil {
		log.Printf("Failed to compute applications by source: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute applications by source"})
		return
	}

	ctx.JSON(http.StatusOK, bySource)
}

func GetApplicationsOverTime(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var dates []time.Time

	if err := analyticsQuery(ctx, userID).Pluck("application_date", &dates).Error; err != nil {
		log.Printf("Failed to fetch application dates: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute applications over time"})
		return
	}

	// Month bucketing happens here rather than in SQL so the query stays
	// portable across database dialects.
	buckets := make(map[string]int64)

	for _, date := range dates {
		buckets[date.Format("2006-01")]++
	}

	months := make([]string, 0, len(buckets))

	for month := range buckets {
		months = append(months, month)
	}

	sort.Strings(months)

	overTime := make([]MonthCount, 0, len(months))

	for _, month := range months {
		overTime = append(overTime, MonthCount{Date: month, Count: buckets[month]})
	}

	ctx.JSON(http.StatusOK, overTime)
}

func GetSuccessRates(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var total int64

	if err := analyticsQuery(ctx, userID).Count(&total).Error; err != nil {
		log.Printf("Failed to count applications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute success rates"})
		return
	}

	rates := []SuccessRate{}

	if total > 0 {
		stages := []struct {
			label  string
			status string
		}{
			{"Applied to Interview", models.JobStatusInterview},
			{"Applied to Offered", models.JobStatusOffered},
			{"Applied to Accepted", models.JobStatusAccepted},
		}

		for _, stage := range stages {
			var count int64

			if err := analyticsQuery(ctx, userID).Where("status = ?", stage.status).Count(&count).Error; err != nil {
				log.Printf("Failed to count %s applications: %v", stage.status, err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute success rates"})
				return
			}

			rates = append(rates, SuccessRate{
				Stage: stage.label,
				Rate:  float64(count) / float64(total) * 100,
			})
		}
	}

	ctx.JSON(http.StatusOK, rates)
}
