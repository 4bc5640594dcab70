package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jobtrackr-dev/jobtrackr/db"
	"github.com/jobtrackr-dev/jobtrackr/internal/auth"
	"github.com/jobtrackr-dev/jobtrackr/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)

	payload := map[string]interface{}{
		"full_name": "Jane Doe",
		"email":     "jane@example.com",
		"password":  "supersecret",
	}

	ctx, w := testContext(t, models.User{}, http.MethodPost, "/api/users/register", payload)
	RegisterUser(ctx)
	assertStatus(t, w, http.StatusCreated)

	var registered struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &registered)

	if registered.Token == "" {
		t.Error("expected a token on registration")
	}

	// Duplicate registration is rejected.
	ctx, w = testContext(t, models.User{}, http.MethodPost, "/api/users/register", payload)
	RegisterUser(ctx)
	assertStatus(t, w, http.StatusBadRequest)

	login := map[string]interface{}{"email": "jane@example.com", "password": "supersecret"}
	ctx, w = testContext(t, models.User{}, http.MethodPost, "/api/users/login", login)
	LoginUser(ctx)
	assertStatus(t, w, http.StatusOK)

	login["password"] = "wrongpassword"
	ctx, w = testContext(t, models.User{}, http.MethodPost, "/api/users/login", login)
	LoginUser(ctx)
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestResetPassword(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "reset@example.com", "oldpassword")

	expiry := time.Now().Add(time.Hour)
	user.ResetCode = "123456"
	user.ResetCodeExpiry = &expiry

	if err := db.DB.Save(&user).Error; err != nil {
		t.Fatalf("failed to save reset code: %v", err)
	}

	ctx, w := testContext(t, models.User{}, http.MethodPost, "/api/users/reset-password", map[string]interface{}{
		"code":     "123456",
		"password": "newpassword1",
	})
	ResetPassword(ctx)
	assertStatus(t, w, http.StatusOK)

	var updated models.User
	db.DB.First(&updated, user.ID)

	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword1")); err != nil {
		t.Error("password was not updated")
	}

	if updated.ResetCode != "" {
		t.Error("reset code should be cleared")
	}
}

func TestResetPasswordExpiredCode(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "expired@example.com", "oldpassword")

	expiry := time.Now().Add(-time.Minute)
	user.ResetCode = "654321"
	user.ResetCodeExpiry = &expiry

	if err := db.DB.Save(&user).Error; err != nil {
		t.Fatalf("failed to save reset code: %v", err)
	}

	ctx, w := testContext(t, models.User{}, http.MethodPost, "/api/users/reset-password", map[string]interface{}{
		"code":     "654321",
		"password": "newpassword1",
	})
	ResetPassword(ctx)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestForgotPasswordRateLimit(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "limited@example.com", "password123")

	now := time.Now()
	attempts, _ := json.Marshal([]int64{
		now.Add(-10 * time.Minute).UnixMilli(),
		now.Add(-20 * time.Minute).UnixMilli(),
		now.Add(-30 * time.Minute).UnixMilli(),
	})
	user.ResetAttempts = attempts

	if err := db.DB.Save(&user).Error; err != nil {
		t.Fatalf("failed to save attempts: %v", err)
	}

	ctx, w := testContext(t, models.User{}, http.MethodPost, "/api/users/forgot-password", map[string]interface{}{
		"email": "limited@example.com",
	})
	ForgotPassword(ctx)
	assertStatus(t, w, http.StatusTooManyRequests)
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "cascade@example.com", "password123")

	job := models.Job{UserID: user.ID, CompanyName: "Acme", Role: "SRE", Status: models.JobStatusApplied, PriorityLevel: models.PriorityMedium, ApplicationDate: time.Now()}

	if err := db.DB.Create(&job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	interview := models.Interview{JobID: job.ID, Round: "HR", InterviewDate: time.Now(), Status: models.InterviewScheduled}

	if err := db.DB.Create(&interview).Error; err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}

	notification := models.Notification{UserID: user.ID, Message: "hello"}

	if err := db.DB.Create(&notification).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	ctx, w := testContext(t, user, http.MethodDelete, "/api/users/delete", map[string]interface{}{
		"password": "password123",
	})
	DeleteUser(ctx)
	assertStatus(t, w, http.StatusOK)

	var users, jobs, interviews, notifications int64
	db.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&users)
	db.DB.Model(&models.Job{}).Where("user_id = ?", user.ID).Count(&jobs)
	db.DB.Model(&models.Interview{}).Where("job_id = ?", job.ID).Count(&interviews)
	db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&notifications)

	if users != 0 || jobs != 0 || interviews != 0 || notifications != 0 {
		t.Errorf("expected full cascade, got users=%d jobs=%d interviews=%d notifications=%d",
			users, jobs, interviews, notifications)
	}
}
