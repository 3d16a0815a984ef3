package model

import "time"

// File is one uploaded binary object. Content holds the bytes when no
// cloud bucket is configured; otherwise StorageObjectName points at the
// remote object and Content stays empty.
type File struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	Content           []byte  `json:"-"`
	Filename          string  `gorm:"type:text" json:"filename"`
	ContentType       string  `gorm:"type:text" json:"contentType"`
	Extension         string  `gorm:"type:text" json:"-"`
	Size              int64   `json:"size"`
	StorageObjectName *string `json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"-"`
}
