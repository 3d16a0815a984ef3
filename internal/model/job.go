package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Urgency levels a job role can carry.
var (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// JobFormField is one input definition within a job's application form.
// Name is the key submitted values are stored under and must be unique
// within one job's field list. Options only matter for select/radio.
type JobFormField struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// EditableJobInfo holds every job role field an admin may change after
// creation. ID lives outside so a patch can never touch it.
type EditableJobInfo struct {
	Title        string                            `gorm:"type:text" json:"title"`
	Type         string                            `gorm:"type:text" json:"type"`
	Location     string                            `gorm:"type:text" json:"location"`
	Department   string                            `gorm:"type:text" json:"department"`
	SalaryRange  string                            `gorm:"type:text" json:"salaryRange,omitempty"`
	Description  string                            `gorm:"type:text" json:"description"`
	Requirements pq.StringArray                    `gorm:"type:text[]" json:"requirements"`
	Benefits     pq.StringArray                    `gorm:"type:text[]" json:"benefits"`
	PostedDate   string                            `gorm:"type:text" json:"postedDate"`
	Urgency      string                            `gorm:"type:text" json:"urgency"`
	FormFields   datatypes.JSONSlice[JobFormField] `gorm:"type:jsonb" json:"formFields"`
	Active       bool                              `json:"active"`
}

// JobRole is gorm model for a posted position with its dynamic
// application form schema.
type JobRole struct {
	ID string `gorm:"primaryKey;<-:create" json:"id"`
	EditableJobInfo

	CreatedAt time.Time `gorm:"type:timestamp" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"-"`
}

// TableName keeps the table name stable regardless of struct renames.
func (JobRole) TableName() string {
	return "jobs"
}

// RequiredFieldNames returns the names of every form field the job marks
// required, in declaration order.
func (j *JobRole) RequiredFieldNames() []string {
	var names []string
	for _, f := range j.FormFields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
