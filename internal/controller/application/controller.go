// Package application implements the job-application pipeline: candidate
// intake against a job's form schema and the admin review workflow with
// its best-effort email side effect.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"institute-backend/internal/database"
	"institute-backend/internal/mailer"
	"institute-backend/internal/model"
	"institute-backend/internal/utilities"
)

// ApplicationController handles application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
	// Notifier may be nil, meaning no mail provider is configured.
	Notifier mailer.Notifier
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct, notifier mailer.Notifier) *ApplicationController {
	return &ApplicationController{
		DB:       db,
		Notifier: notifier,
	}
}

// submission is the intake payload. Files carry references returned by a
// prior upload call; bytes never travel in this request.
type submission struct {
	JobID    string                   `json:"jobId"`
	JobTitle string                   `json:"jobTitle"`
	Fields   []model.ApplicationField `json:"fields"`
	Files    []model.ApplicationFile  `json:"files"`
}

// submitResponse is returned on successful intake.
type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// SubmitHandler accepts a candidate's application against one job role.
// @Summary Submit an application for a job role
// @Description Validates the submitted fields against the job's form schema and stores the application
// @Tags Application
// @Accept json
// @Produce json
// @Param Application body submission true "Submitted field values and file references"
// @Success 201 {object} submitResponse "Application accepted"
// @Failure 400 {object} utilities.ErrorResponse "Malformed payload, job unavailable, or missing required field"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) SubmitHandler(c *gin.Context) {

	sub := submission{}
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if sub.JobID == "" || sub.Fields == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "jobId and fields are required",
		})
		return
	}

	// The candidate-facing message deliberately does not distinguish a
	// missing job from an inactive one.
	job := model.JobRole{}
	if err := ac.DB.Where("id = ?", sub.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "This position is not accepting applications",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job role: %s", err.Error()),
		})
		return
	}
	if !job.Active {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This position is not accepting applications",
		})
		return
	}

	submitted := map[string]bool{}
	for _, f := range sub.Fields {
		submitted[f.Name] = true
	}
	for _, required := range job.RequiredFieldNames() {
		if !submitted[required] {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error:        fmt.Sprintf("Missing required field: %s", required),
				MissingField: required,
			})
			return
		}
	}

	declared := map[string]bool{}
	for _, f := range job.FormFields {
		declared[f.Name] = true
	}

	// Stored field names stay a subset of the job's declared names; keys
	// the form never defined are dropped. Strip stored-markup injection
	// vectors from everything that will be rendered in the admin
	// dashboard. Booleans pass through as-is.
	fields := make([]model.ApplicationField, 0, len(sub.Fields))
	for _, f := range sub.Fields {
		if !declared[f.Name] {
			continue
		}
		f.Label = utilities.StripUnsafeMarkup(f.Label)
		if s, ok := f.Value.(string); ok {
			f.Value = utilities.StripUnsafeMarkup(s)
		}
		fields = append(fields, f)
	}
	app := model.Application{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		JobTitle: sub.JobTitle,
		Status:   model.StatusNew,
		Fields:   fields,
		Files:    sub.Files,
	}
	if app.JobTitle == "" {
		app.JobTitle = job.Title
	}
	app.Email = app.FieldValue("email")

	if err := ac.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to store application",
		})
		return
	}

	c.JSON(http.StatusCreated, submitResponse{Success: true, ID: app.ID})
}

// GetApplications lists applications, optionally filtered by job, newest first.
// @Summary List applications, optionally filtered by job id
// @Description Only admins have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id query string false "Only return applications for this job role"
// @Success 200 {array} model.Application "Return applications, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	apps := []model.Application{}

	query := ac.DB.Order("created_at DESC")
	if jobID := c.Query("job_id"); jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}
	if err := query.Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// GetApplicationByID fetches one application.
// @Summary Get application by ID
// @Description Only admins have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired application"
// @Success 200 {object} model.Application "Return the application with the specified ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	id := c.Param("id")

	app := model.Application{}
	if err := ac.DB.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

// reviewPatch is the review payload; both fields are optional.
type reviewPatch struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// reviewResponse carries the updated record plus the notification
// outcome so the dashboard can warn when no mail went out.
type reviewResponse struct {
	Application    model.Application `json:"application"`
	EmailAttempted bool              `json:"emailAttempted"`
	EmailSent      bool              `json:"emailSent"`
}

// UpdateApplication applies a status/notes change and, when a status was
// supplied and the applicant left an email, attempts a notification.
// The status write commits before and independently of the email; a
// failed send only shows up in the emailAttempted/emailSent pair.
// @Summary Update an application's status and/or notes
// @Description Only admins have access to this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired application"
// @Param Patch body reviewPatch true "New status and/or notes"
// @Success 200 {object} reviewResponse "Updated application plus notification outcome"
// @Failure 400 {object} utilities.ErrorResponse "Invalid patch struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [patch]
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	id := c.Param("id")

	patch := reviewPatch{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	app := model.Application{}
	if err := ac.DB.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	// Any status may follow any status; the workflow is advisory and
	// enforced by the dashboard, not the server.
	if patch.Status != nil {
		app.Status = *patch.Status
	}
	if patch.Notes != nil {
		app.Notes = *patch.Notes
	}
	app.UpdatedAt = time.Now()

	if err := ac.DB.Model(&app).Select("status", "notes", "updated_at").Updates(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	outcome := mailer.Outcome{}
	if patch.Status != nil && app.Email != "" {
		outcome = mailer.Notify(ac.Notifier, app.Email, app.FieldValue("firstName"), app.JobTitle, app.Status)
	}

	c.JSON(http.StatusOK, reviewResponse{
		Application:    app,
		EmailAttempted: outcome.Attempted,
		EmailSent:      outcome.Sent,
	})
}

// DeleteApplication removes an application from the working pool, used
// after a terminal decision has been communicated.
// @Summary Delete given application ID
// @Description Only admins have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired application"
// @Success 200 {object} utilities.MessageResponse "Successfully delete application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	id := c.Param("id")

	result := ac.DB.Where("id = ?", id).Delete(&model.Application{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete application: %s", result.Error.Error()),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}
