package job

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"institute-backend/internal/database"
	"institute-backend/internal/model"
	"institute-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func jobRouter() *gin.Engine {
	r := gin.Default()
	jc := NewJobController(testDB)
	r.GET("/jobs", jc.GetJobs)
	r.GET("/jobs/:id", jc.GetJobByID)
	r.POST("/jobs", jc.CreateJobHandler)
	r.PATCH("/jobs/:id", jc.EditJob)
	r.DELETE("/jobs/:id", jc.DeleteJob)
	return r
}

func TestCreateJob_RoundTripPreservesFormFieldOrder(t *testing.T) {
	r := jobRouter()

	body := gin.H{
		"title":       "Data Curator",
		"type":        "Full-time",
		"location":    "Cambridge, MA",
		"department":  "Library Sciences",
		"description": "Curate and publish research datasets.",
		"formFields": []gin.H{
			{"id": "a", "name": "firstName", "label": "First name", "type": "text", "required": true},
			{"id": "b", "name": "email", "label": "Email", "type": "email", "required": true},
			{"id": "c", "name": "portfolio", "label": "Portfolio URL", "type": "text", "required": false},
		},
	}

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	id, _ := resp["id"].(string)
	assert.NotEmpty(t, id)

	stored := model.JobRole{}
	assert.NoError(t, testDB.Where("id = ?", id).First(&stored).Error)
	assert.True(t, stored.Active)
	assert.Equal(t, model.UrgencyMedium, stored.Urgency)
	assert.NotEmpty(t, stored.PostedDate)
	names := []string{}
	for _, f := range stored.FormFields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"firstName", "email", "portfolio"}, names)
}

func TestCreateJob_MissingRequiredFields(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "No department"}, "", r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobs_IncludesInactive(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), database.TestJobClosed.ID)
	assert.Contains(t, rec.Body.String(), database.TestJobOpen.ID)
}

func TestGetJobByID_NotFound(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditJob_PatchCannotChangeID(t *testing.T) {
	r := jobRouter()
	job := createTestJob(t, "Patch target")

	rec, _ := testutil.MakeJSONRequest(
		gin.H{"id": "hijacked", "title": "Patched title", "unknownKey": 42},
		"", r, "/jobs/"+job.ID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored := model.JobRole{}
	assert.NoError(t, testDB.Where("id = ?", job.ID).First(&stored).Error)
	assert.Equal(t, "Patched title", stored.Title)

	hijacked := model.JobRole{}
	assert.Error(t, testDB.Where("id = ?", "hijacked").First(&hijacked).Error)
}

func TestEditJob_ExplicitFalseDeactivates(t *testing.T) {
	r := jobRouter()
	job := createTestJob(t, "Deactivation target")
	assert.True(t, job.Active)

	rec, _ := testutil.MakeJSONRequest(
		gin.H{"active": false},
		"", r, "/jobs/"+job.ID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored := model.JobRole{}
	assert.NoError(t, testDB.Where("id = ?", job.ID).First(&stored).Error)
	assert.False(t, stored.Active)
	// Fields not in the patch are untouched.
	assert.Equal(t, "Deactivation target", stored.Title)
}

func TestDeleteJob_LeavesApplicationsWithTitleSnapshot(t *testing.T) {
	r := jobRouter()
	job := createTestJob(t, "Snapshot role")

	app := model.Application{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		JobTitle: job.Title,
		Status:   model.StatusNew,
		Fields:   []model.ApplicationField{{Name: "email", Value: "x@example.com"}},
	}
	assert.NoError(t, testDB.Create(&app).Error)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/"+job.ID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, "Snapshot role", stored.JobTitle)
}

func TestDeleteJob_NotFound(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/"+uuid.NewString(), http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenameJob_DoesNotRewriteApplicationTitles(t *testing.T) {
	r := jobRouter()
	job := createTestJob(t, "Original title")

	app := model.Application{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		JobTitle: job.Title,
		Status:   model.StatusNew,
		Fields:   []model.ApplicationField{{Name: "email", Value: "x@example.com"}},
	}
	assert.NoError(t, testDB.Create(&app).Error)

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Renamed title"}, "", r, "/jobs/"+job.ID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, "Original title", stored.JobTitle)
}

func createTestJob(t *testing.T, title string) model.JobRole {
	t.Helper()
	job := model.JobRole{
		ID: uuid.NewString(),
		EditableJobInfo: model.EditableJobInfo{
			Title:       title,
			Type:        "Full-time",
			Location:    "Cambridge, MA",
			Department:  "Testing",
			Description: "A role created by the test suite.",
			PostedDate:  time.Now().Format("2006-01-02"),
			Urgency:     model.UrgencyMedium,
			Active:      true,
			FormFields: []model.JobFormField{
				{ID: "f1", Name: "email", Label: "Email", Type: "email", Required: true},
			},
		},
	}
	assert.NoError(t, testDB.Create(&job).Error)
	return job
}
