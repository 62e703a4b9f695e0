package models

import "time"

type ApplicationDocument struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	ApplicationID    int        `gorm:"column:application_id" json:"application_id"`
	DocumentTypeCode *string    `gorm:"column:document_type_code" json:"document_type_code,omitempty"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	FileName         string     `gorm:"column:file_name" json:"file_name"`
	FileType         string     `gorm:"column:file_type" json:"file_type"`
	FileSizeBytes    int64      `gorm:"column:file_size_bytes" json:"file_size_bytes"`
	StoredPath       string     `gorm:"column:stored_path" json:"-"`
	UploadedAt       time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Application GrantApplication `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}

func (ApplicationDocument) TableName() string {
	return "application_documents"
}

type DocumentType struct {
	Code          string `gorm:"primaryKey;column:code" json:"code"`
	Name          string `gorm:"column:name" json:"name"`
	Required      bool   `gorm:"column:required" json:"required"`
	DocumentOrder int    `gorm:"column:document_order" json:"document_order"`
}

func (DocumentType) TableName() string {
	return "document_types"
}

// GetFileSizeInMB returns the document size in megabytes.
func (d *ApplicationDocument) GetFileSizeInMB() float64 {
	return float64(d.FileSizeBytes) / (1024 * 1024)
}
