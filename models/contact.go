package models

import "time"

// ContactInquiry is a public contact-form submission. Stored for record
// keeping and optionally forwarded by mail to the program inbox.
type ContactInquiry struct {
	InquiryID   int       `gorm:"primaryKey;column:inquiry_id" json:"inquiry_id"`
	SenderName  string    `gorm:"column:sender_name" json:"sender_name"`
	SenderEmail string    `gorm:"column:sender_email" json:"sender_email"`
	Subject     string    `gorm:"column:subject" json:"subject"`
	Message     string    `gorm:"column:message" json:"message"`
	IPAddress   *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}
