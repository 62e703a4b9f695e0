package models

import "time"

// ApplicationStatus is the closed status enumeration for grant applications.
type ApplicationStatus string

const (
	StatusDraft            ApplicationStatus = "Draft"
	StatusSubmitted        ApplicationStatus = "Submitted"
	StatusUnderReview      ApplicationStatus = "UnderReview"
	StatusMoreInfoRequired ApplicationStatus = "MoreInfoRequired"
	StatusApproved         ApplicationStatus = "Approved"
	StatusDeclined         ApplicationStatus = "Declined"
)

// AllStatuses lists every member of the status enumeration.
var AllStatuses = []ApplicationStatus{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusMoreInfoRequired,
	StatusApproved,
	StatusDeclined,
}

// IsValid reports whether s is a member of the status enumeration.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application types selectable on a Draft application.
const (
	TypePartABaseRenewal    = "PART_A_BASE_RENEWAL"
	TypePartBNewOrExpansion = "PART_B_NEW_OR_EXPANSION"
)

var ValidApplicationTypes = []string{TypePartABaseRenewal, TypePartBNewOrExpansion}

// Program types selectable on the application form.
var ValidProgramTypes = []string{"WomensShelter", "SecondStageShelter"}

// Expansion types for Part B applications.
var ValidExpansionTypes = []string{
	"NewShelter",
	"AdditionalBeds",
	"SecondStageExpansion",
	"IncreasedOperationalFunding",
}

type GrantApplication struct {
	ApplicationID   int     `gorm:"primaryKey;column:application_id" json:"application_id"`
	ReferenceNumber string  `gorm:"column:reference_number;unique" json:"reference_number"`
	OrganizationID  int     `gorm:"column:organization_id" json:"organization_id"`
	ApplicationType *string `gorm:"column:application_type" json:"application_type,omitempty"`
	FiscalYearCode  *string `gorm:"column:fiscal_year_code" json:"fiscal_year_code,omitempty"`

	StatusCode ApplicationStatus `gorm:"column:status_code" json:"status_code"`

	ProgramName        *string `gorm:"column:program_name" json:"program_name,omitempty"`
	ServiceDescription *string `gorm:"column:service_description" json:"service_description,omitempty"`

	// Part A: base operational renewal
	CurrentBedCount  *int `gorm:"column:current_bed_count" json:"current_bed_count,omitempty"`
	CurrentUnitCount *int `gorm:"column:current_unit_count" json:"current_unit_count,omitempty"`

	// Part B: community need justification
	ProposedLocation             *string `gorm:"column:proposed_location" json:"proposed_location,omitempty"`
	TargetPopulation             *string `gorm:"column:target_population" json:"target_population,omitempty"`
	CommunityNeedJustification   *string `gorm:"column:community_need_justification" json:"community_need_justification,omitempty"`
	ExistingResourcesDescription *string `gorm:"column:existing_resources_description" json:"existing_resources_description,omitempty"`
	DVDataReference              *string `gorm:"column:dv_data_reference" json:"dv_data_reference,omitempty"`

	// Part B: expansion details
	ExpansionType    *string `gorm:"column:expansion_type" json:"expansion_type,omitempty"`
	ProposedBedCount *int    `gorm:"column:proposed_bed_count" json:"proposed_bed_count,omitempty"`
	ProposedOpenDate *string `gorm:"column:proposed_open_date" json:"proposed_open_date,omitempty"`

	// Part B: federal funding
	HasFederalFunding        *bool      `gorm:"column:has_federal_funding" json:"has_federal_funding,omitempty"`
	FederalAgencyName        *string    `gorm:"column:federal_agency_name" json:"federal_agency_name,omitempty"`
	FederalFundingAmount     *float64   `gorm:"column:federal_funding_amount" json:"federal_funding_amount,omitempty"`
	FederalFundingExpiryDate *time.Time `gorm:"column:federal_funding_expiry_date" json:"federal_funding_expiry_date,omitempty"`

	TotalFundingRequested float64 `gorm:"column:total_funding_requested" json:"total_funding_requested"`

	DeclarationAccepted  bool       `gorm:"column:declaration_accepted" json:"declaration_accepted"`
	DeclarationTimestamp *time.Time `gorm:"column:declaration_timestamp" json:"declaration_timestamp,omitempty"`
	SubmittedAt          *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Organization *Organization    `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	BudgetLines  []BudgetLineItem `gorm:"foreignKey:ApplicationID" json:"budget_lines,omitempty"`
}

func (GrantApplication) TableName() string {
	return "grant_applications"
}

// IsDraft reports whether the application is still editable by the applicant.
func (a *GrantApplication) IsDraft() bool {
	return a.StatusCode == StatusDraft
}

// Budget categories accepted on budget line items.
var ValidBudgetCategories = []string{
	"Salaries",
	"Benefits",
	"FacilityRental",
	"Utilities",
	"ProgramSupplies",
	"Transport",
	"Administration",
	"Other",
}

type BudgetLineItem struct {
	LineItemID    int       `gorm:"primaryKey;column:line_item_id" json:"line_item_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	Category      string    `gorm:"column:category" json:"category"`
	Description   *string   `gorm:"column:description" json:"description,omitempty"`
	AnnualAmount  float64   `gorm:"column:annual_amount" json:"annual_amount"`
	SortOrder     int       `gorm:"column:sort_order" json:"sort_order"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`
}

func (BudgetLineItem) TableName() string {
	return "budget_line_items"
}

type FiscalYear struct {
	Code      string `gorm:"primaryKey;column:code" json:"code"`
	IsCurrent bool   `gorm:"column:is_current" json:"is_current"`
}

func (FiscalYear) TableName() string {
	return "fiscal_years"
}

// BudgetAllocation holds the allocated envelope per fiscal year, zone and
// application type, joined by the cost pressure report.
type BudgetAllocation struct {
	AllocationID    int     `gorm:"primaryKey;column:allocation_id" json:"allocation_id"`
	FiscalYearCode  string  `gorm:"column:fiscal_year_code" json:"fiscal_year_code"`
	ZoneCode        string  `gorm:"column:zone_code" json:"zone_code"`
	ApplicationType string  `gorm:"column:application_type" json:"application_type"`
	AllocatedAmount float64 `gorm:"column:allocated_amount" json:"allocated_amount"`
}

func (BudgetAllocation) TableName() string {
	return "budget_allocations"
}
