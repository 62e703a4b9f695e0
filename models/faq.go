package models

type FAQ struct {
	FaqID     int    `gorm:"primaryKey;column:faq_id" json:"faq_id"`
	Question  string `gorm:"column:question" json:"question"`
	Answer    string `gorm:"column:answer" json:"answer"`
	Category  string `gorm:"column:category" json:"category"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
	IsActive  bool   `gorm:"column:is_active" json:"is_active"`
}

func (FAQ) TableName() string {
	return "faqs"
}
