package models

import "time"

// Organization types accepted at registration.
var ValidOrganizationTypes = []string{
	"Non-Profit Society",
	"Registered Charity",
	"Indigenous Organization",
	"Other",
}

type Organization struct {
	OrganizationID            int        `gorm:"primaryKey;column:organization_id" json:"organization_id"`
	ExternalAccountID         string     `gorm:"column:external_account_id;unique" json:"external_account_id"`
	LegalName                 string     `gorm:"column:legal_name" json:"legal_name"`
	OrganizationType          string     `gorm:"column:organization_type" json:"organization_type"`
	SocietyRegistrationNumber *string    `gorm:"column:society_registration_number" json:"society_registration_number,omitempty"`
	RegistrationDate          *time.Time `gorm:"column:registration_date" json:"registration_date,omitempty"`
	ZoneCode                  *string    `gorm:"column:zone_code" json:"zone_code,omitempty"`

	ServiceAddressStreet     string `gorm:"column:service_address_street" json:"service_address_street"`
	ServiceAddressCity       string `gorm:"column:service_address_city" json:"service_address_city"`
	ServiceAddressProvince   string `gorm:"column:service_address_province" json:"service_address_province"`
	ServiceAddressPostalCode string `gorm:"column:service_address_postal_code" json:"service_address_postal_code"`

	MailingAddressStreet     string `gorm:"column:mailing_address_street" json:"mailing_address_street"`
	MailingAddressCity       string `gorm:"column:mailing_address_city" json:"mailing_address_city"`
	MailingAddressProvince   string `gorm:"column:mailing_address_province" json:"mailing_address_province"`
	MailingAddressPostalCode string `gorm:"column:mailing_address_postal_code" json:"mailing_address_postal_code"`

	PrimaryContactName  string `gorm:"column:primary_contact_name" json:"primary_contact_name"`
	PrimaryContactEmail string `gorm:"column:primary_contact_email" json:"primary_contact_email"`
	PrimaryContactPhone string `gorm:"column:primary_contact_phone" json:"primary_contact_phone"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}
