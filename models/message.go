package models

import "time"

// Message is one entry in the per-application thread between an applicant
// organization and the reviewers. Messages exist only on non-Draft
// applications.
type Message struct {
	MessageID     int       `gorm:"primaryKey;column:message_id" json:"message_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	SenderUserID  int       `gorm:"column:sender_user_id" json:"sender_user_id"`
	SenderRole    string    `gorm:"column:sender_role" json:"sender_role"`
	Subject       *string   `gorm:"column:subject" json:"subject"`
	Body          string    `gorm:"column:body" json:"body"`
	IsRead        bool      `gorm:"column:is_read" json:"is_read"`
	SentAt        time.Time `gorm:"column:sent_at" json:"sent_at"`
}

func (Message) TableName() string {
	return "messages"
}

// InternalNote is a reviewer-only annotation on an application. Never
// exposed to applicants.
type InternalNote struct {
	NoteID        int       `gorm:"primaryKey;column:note_id" json:"note_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	AuthorUserID  int       `gorm:"column:author_user_id" json:"author_user_id"`
	NoteText      string    `gorm:"column:note_text" json:"note_text"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (InternalNote) TableName() string {
	return "internal_notes"
}
