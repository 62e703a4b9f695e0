package models

import "time"

// StatusHistoryEntry is the append-only audit record for status changes.
// Rows are inserted in the same transaction as the status mutation and are
// never updated or deleted.
type StatusHistoryEntry struct {
	HistoryID     int                `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID int                `gorm:"column:application_id" json:"application_id"`
	FromStatus    *ApplicationStatus `gorm:"column:from_status" json:"from_status"`
	ToStatus      ApplicationStatus  `gorm:"column:to_status" json:"to_status"`
	ChangedByID   int                `gorm:"column:changed_by_user_id" json:"changed_by_user_id"`
	ChangedByRole string             `gorm:"column:changed_by_role" json:"changed_by_role"`
	Note          *string            `gorm:"column:note" json:"note"`
	ChangedAt     time.Time          `gorm:"column:changed_at" json:"changed_at"`
}

func (StatusHistoryEntry) TableName() string {
	return "status_history"
}
