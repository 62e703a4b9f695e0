package models

import "time"

type FundedShelter struct {
	ShelterID       int        `gorm:"primaryKey;column:shelter_id" json:"shelter_id"`
	ShelterName     string     `gorm:"column:shelter_name" json:"shelter_name"`
	City            string     `gorm:"column:city" json:"city"`
	ZoneCode        string     `gorm:"column:zone_code" json:"zone_code"`
	ServiceTypeCode string     `gorm:"column:service_type_code" json:"service_type_code"`
	BedCount        *int       `gorm:"column:bed_count" json:"bed_count"`
	UnitCount       *int       `gorm:"column:unit_count" json:"unit_count"`
	FundingAmount   *float64   `gorm:"column:funding_amount" json:"funding_amount,omitempty"`
	IsActive        bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Zone        Zone        `gorm:"foreignKey:ZoneCode;references:Code" json:"zone,omitempty"`
	ServiceType ServiceType `gorm:"foreignKey:ServiceTypeCode;references:Code" json:"service_type,omitempty"`
}

func (FundedShelter) TableName() string {
	return "funded_shelters"
}

type Zone struct {
	Code      string `gorm:"primaryKey;column:code" json:"code"`
	Name      string `gorm:"column:name" json:"name"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
}

func (Zone) TableName() string {
	return "zones"
}

type ServiceType struct {
	Code string `gorm:"primaryKey;column:code" json:"code"`
	Name string `gorm:"column:name" json:"name"`
}

func (ServiceType) TableName() string {
	return "service_types"
}
