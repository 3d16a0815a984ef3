package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

var (
	// StatusNew is the initial status of every submitted application
	StatusNew = "new"
	// StatusInReview indicates an admin has started reviewing the application
	StatusInReview = "in_review"
	// StatusShortlist indicates the candidate was shortlisted for an offer
	StatusShortlist = "shortlist"
	// StatusRejected indicates the candidate was declined
	StatusRejected = "rejected"
	// StatusHired indicates the candidate accepted an offer
	StatusHired = "hired"
)

// ApplicationField is one submitted answer, mirroring the job form field
// that produced it. Value is a sanitized string or a bool.
type ApplicationField struct {
	Name  string      `json:"name"`
	Label string      `json:"label,omitempty"`
	Type  string      `json:"type,omitempty"`
	Value interface{} `json:"value"`
}

// ApplicationFile references a previously uploaded file by its durable
// store reference. File bytes never travel with the application itself.
type ApplicationFile struct {
	FieldName   string `json:"fieldName"`
	FileID      int    `json:"fileId"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Application represents one candidate's submission against one job role.
// JobTitle is a snapshot taken at submission time so history survives
// later job edits or deletion.
type Application struct {
	ID       string `gorm:"primaryKey" json:"id"`
	JobID    string `gorm:"type:text;not null;index" json:"jobId"`
	JobTitle string `gorm:"type:text;<-:create" json:"jobTitle"`
	Status   string `gorm:"type:text" json:"status"`

	Fields datatypes.JSONSlice[ApplicationField] `gorm:"type:jsonb" json:"fields"`
	Files  datatypes.JSONSlice[ApplicationFile]  `gorm:"type:jsonb" json:"files,omitempty"`

	// Email is extracted from whichever submitted field is named "email"
	// (case-insensitive) and is only used as the notification target.
	Email string `gorm:"type:text" json:"email,omitempty"`
	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// FieldValue returns the submitted value for a field name,
// case-insensitively, or "" when absent or non-string.
func (a *Application) FieldValue(name string) string {
	for _, f := range a.Fields {
		if strings.EqualFold(f.Name, name) {
			if s, ok := f.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
