package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/jobtrackr-dev/jobtrackr/db"
	"github.com/jobtrackr-dev/jobtrackr/internal/models"
)

func seedAnalyticsJobs(t *testing.T, userID uint) {
	t.Helper()

	jobs := []models.Job{
		{UserID: userID, CompanyName: "Acme", Role: "SRE", Status: models.JobStatusApplied, Source: "LinkedIn", PriorityLevel: models.PriorityMedium, ApplicationDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		{UserID: userID, CompanyName: "Globex", Role: "SRE", Status: models.JobStatusApplied, Source: "LinkedIn", PriorityLevel: models.PriorityMedium, ApplicationDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local)},
		{UserID: userID, CompanyName: "Initech", Role: "SRE", Status: models.JobStatusInterview, Source: "Referral", PriorityLevel: models.PriorityMedium, ApplicationDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)},
		{UserID: userID, CompanyName: "Hooli", Role: "SRE", Status: models.JobStatusAccepted, Source: "Referral", PriorityLevel: models.PriorityMedium, ApplicationDate: time.Date(2024, 2, 14, 0, 0, 0, 0, time.Local)},
	}

	for i := range jobs {
		if err := db.DB.Create(&jobs[i]).Error; err != nil {
			t.Fatalf("failed to seed job: %v", err)
		}
	}
}

func TestGetStatusDistribution(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "analytics1@example.com", "password123")
	seedAnalyticsJobs(t, user.ID)

	ctx, w := testContext(t, user, http.MethodGet, "/api/analytics/status-distribution", nil)
	GetStatusDistribution(ctx)
	assertStatus(t, w, http.StatusOK)

	var distribution []StatusCount
	decodeBody(t, w, &distribution)

	counts := make(map[string]int64)
	for _, entry := range distribution {
		counts[entry.Status] = entry.Count
	}

	if counts[models.JobStatusApplied] != 2 || counts[models.JobStatusInterview] != 1 || counts[models.JobStatusAccepted] != 1 {
		t.Errorf("unexpected distribution: %+v", counts)
	}
}

func TestGetApplicationsOverTime(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "analytics2@example.com", "password123")
	seedAnalyticsJobs(t, user.ID)

	ctx, w := testContext(t, user, http.MethodGet, "/api/analytics/applications-over-time", nil)
	GetApplicationsOverTime(ctx)
	assertStatus(t, w, http.StatusOK)

	var overTime []MonthCount
	decodeBody(t, w, &overTime)

	if len(overTime) != 2 {
		t.Fatalf("expected 2 months, got %d", len(overTime))
	}

	if overTime[0].Date != "2024-01" || overTime[0].Count != 2 {
		t.Errorf("unexpected first bucket: %+v", overTime[0])
	}

	if overTime[1].Date != "2024-02" || overTime[1].Count != 2 {
		t.Errorf("unexpected second bucket: %+v", overTime[1])
	}
}

func TestGetSuccessRates(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "analytics3@example.com", "password123")
	seedAnalyticsJobs(t, user.ID)

	ctx, w := testContext(t, user, http.MethodGet, "/api/analytics/success-rates", nil)
	GetSuccessRates(ctx)
	assertStatus(t, w, http.StatusOK)

	var rates []SuccessRate
	decodeBody(t, w, &rates)

	if len(rates) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(rates))
	}

	if rates[0].Stage != "Applied to Interview" || rates[0].Rate != 25 {
		t.Errorf("unexpected interview rate: %+v", rates[0])
	}

	if rates[2].Stage != "Applied to Accepted" || rates[2].Rate != 25 {
		t.Errorf("unexpected accepted rate: %+v", rates[2])
	}
}

func TestGetSuccessRatesNoJobs(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "analytics4@example.com", "password123")

	ctx, w := testContext(t, user, http.MethodGet, "/api/analytics/success-rates", nil)
	GetSuccessRates(ctx)
	assertStatus(t, w, http.StatusOK)

	var rates []SuccessRate
	decodeBody(t, w, &rates)

	if len(rates) != 0 {
		t.Errorf("expected empty rates with no jobs, got %+v", rates)
	}
}
