// Package job provides HTTP handlers for job role related operations.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"institute-backend/internal/database"
	"institute-backend/internal/model"
	"institute-backend/internal/utilities"
)

// JobController handles job role related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// jobDraft is the creation payload. ID and PostedDate are always
// assigned server-side, whatever the client sends.
type jobDraft struct {
	Title        string              `json:"title" binding:"required"`
	Type         string              `json:"type"`
	Location     string              `json:"location" binding:"required"`
	Department   string              `json:"department" binding:"required"`
	SalaryRange  string              `json:"salaryRange"`
	Description  string              `json:"description" binding:"required"`
	Requirements []string            `json:"requirements"`
	Benefits     []string            `json:"benefits"`
	Urgency      string              `json:"urgency"`
	FormFields   []model.JobFormField `json:"formFields" binding:"required"`
	Active       *bool               `json:"active"`
}

// GetJobs fetches all job roles from the database, newest first.
// @Summary List all job roles
// @Tags Job
// @Produce json
// @Success 200 {array} model.JobRole "Return all job roles, newest first"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	jobs := []model.JobRole{}
	if err := jc.DB.Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job roles: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a job role by its ID.
// @Summary Get job role by ID
// @Tags Job
// @Produce json
// @Param id path string true "ID of desired job role"
// @Success 200 {object} model.JobRole "Return the job role with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Job role not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.JobRole{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job role: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJobHandler handles the creation of a new job role by an admin.
// @Summary Create job role based on given json structure
// @Description Only admins have access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body jobDraft true "Input job role information"
// @Success 201 {object} model.JobRole "Successfully create job role"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job role struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {

	draft := jobDraft{}
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job := model.JobRole{
		ID: uuid.NewString(),
		EditableJobInfo: model.EditableJobInfo{
			Title:        draft.Title,
			Type:         draft.Type,
			Location:     draft.Location,
			Department:   draft.Department,
			SalaryRange:  draft.SalaryRange,
			Description:  draft.Description,
			Requirements: draft.Requirements,
			Benefits:     draft.Benefits,
			PostedDate:   time.Now().Format("2006-01-02"),
			Urgency:      draft.Urgency,
			FormFields:   draft.FormFields,
			Active:       true,
		},
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Benefits == nil {
		job.Benefits = []string{}
	}
	if job.Urgency == "" {
		job.Urgency = model.UrgencyMedium
	}
	if draft.Active != nil {
		job.Active = *draft.Active
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job role: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// EditJob allows an admin to update a job role. Only the documented
// mutable fields can change; the id is immutable and unknown keys in the
// patch are ignored.
// @Summary Edit job role based on given json structure
// @Description Only admins have access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired job role"
// @Param Job body model.EditableJobInfo true "Partial job role information"
// @Success 200 {object} model.JobRole "Successfully update job role"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job role struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job role not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) EditJob(c *gin.Context) {
	id := c.Param("id")

	job := model.JobRole{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job role: %s", err.Error()),
		})
		return
	}

	// Merge the patch over the editable sub-struct only: keys outside it
	// (including id) are silently ignored, absent keys keep their value.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to read request body: %s", err.Error()),
		})
		return
	}
	if err := json.Unmarshal(body, &job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Model(&job).Select("*").Omit("id", "created_at").Updates(job.EditableJobInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job role: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob allows an admin to delete a job role. Existing applications
// keep their jobTitle snapshot and are never cascaded.
// @Summary Delete given job role ID
// @Description Only admins have access to this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired job role"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job role not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	id := c.Param("id")

	result := jc.DB.Where("id = ?", id).Delete(&model.JobRole{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job role: %s", result.Error.Error()),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job role not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job role deleted"})
}
