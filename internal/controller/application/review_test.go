package application

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"institute-backend/internal/auth"
	"institute-backend/internal/database"
	"institute-backend/internal/middleware"
	"institute-backend/internal/model"
	"institute-backend/internal/testutil"
)

// fakeNotifier records the last message and can be told to fail.
type fakeNotifier struct {
	fail    bool
	to      string
	subject string
	body    string
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp: connection refused")
	}
	f.to = to
	f.subject = subject
	f.body = body
	return nil
}

func reviewRouter(notifier *fakeNotifier) *gin.Engine {
	r := gin.Default()
	ac := NewApplicationController(testDB, nil)
	if notifier != nil {
		ac.Notifier = notifier
	}
	r.PATCH("/applications/:id", ac.UpdateApplication)
	r.GET("/applications/:id", ac.GetApplicationByID)
	r.DELETE("/applications/:id", ac.DeleteApplication)
	return r
}

func seedApplication(t *testing.T, email string) model.Application {
	t.Helper()
	app := model.Application{
		ID:       uuid.NewString(),
		JobID:    database.TestJobOpen.ID,
		JobTitle: database.TestJobOpen.Title,
		Status:   model.StatusNew,
		Fields: []model.ApplicationField{
			{Name: "firstName", Label: "First name", Type: "text", Value: "Grace"},
			{Name: "email", Label: "Email", Type: "email", Value: email},
		},
		Email: email,
	}
	assert.NoError(t, testDB.Create(&app).Error)
	return app
}

func TestUpdateApplication_StatusAndNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reviewRouter(notifier)
	app := seedApplication(t, "grace@example.com")

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusShortlist},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["emailAttempted"])
	assert.Equal(t, true, resp["emailSent"])
	assert.Equal(t, "grace@example.com", notifier.to)
	assert.Contains(t, notifier.subject, "Good news")
	assert.Contains(t, notifier.body, "Grace")

	stored := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, model.StatusShortlist, stored.Status)
}

func TestUpdateApplication_RejectedUsesDeclineTemplate(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reviewRouter(notifier)
	app := seedApplication(t, "grace@example.com")

	rec, _ := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusRejected},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, notifier.subject, "Update on your application")
	assert.NotContains(t, notifier.body, "offer")
}

func TestUpdateApplication_SendFailureDoesNotBlockStatus(t *testing.T) {
	notifier := &fakeNotifier{fail: true}
	r := reviewRouter(notifier)
	app := seedApplication(t, "grace@example.com")

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusHired},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["emailAttempted"])
	assert.Equal(t, false, resp["emailSent"])

	// The review outcome is authoritative even when the mail bounced.
	stored := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, model.StatusHired, stored.Status)
}

func TestUpdateApplication_NoEmailOnRecord(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reviewRouter(notifier)
	app := seedApplication(t, "")

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusInReview},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["emailAttempted"])
	assert.Equal(t, false, resp["emailSent"])
	assert.Empty(t, notifier.to)
}

func TestUpdateApplication_NilNotifier(t *testing.T) {
	r := reviewRouter(nil)
	app := seedApplication(t, "grace@example.com")

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusInReview},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["emailAttempted"])
	assert.Equal(t, false, resp["emailSent"])
}

func TestUpdateApplication_NotesOnlySkipsNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reviewRouter(notifier)
	app := seedApplication(t, "grace@example.com")

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"notes": "strong systems background"},
		"", r, "/applications/"+app.ID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["emailAttempted"])

	stored := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, "strong systems background", stored.Notes)
	assert.Equal(t, model.StatusNew, stored.Status)
}

func TestUpdateApplication_NotFound(t *testing.T) {
	r := reviewRouter(nil)

	rec, _ := testutil.MakeJSONRequest(
		gin.H{"status": model.StatusInReview},
		"", r, "/applications/"+uuid.NewString(), http.MethodPatch)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteApplication(t *testing.T) {
	r := reviewRouter(nil)
	app := seedApplication(t, "grace@example.com")

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/applications/"+app.ID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/applications/"+app.ID, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetApplications_RequiresAdminToken(t *testing.T) {
	r := gin.Default()
	ac := NewApplicationController(testDB, nil)
	admin := r.Group("/", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.GET("/applications", ac.GetApplications)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/applications", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)
	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/applications", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}
