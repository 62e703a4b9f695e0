package services

import (
	"fmt"
	"regexp"
	"strings"

	"shelter-grants-api/models"
)

// BudgetLineInput is one budget row from a draft save. Lines replace the
// stored set wholesale on every save.
type BudgetLineInput struct {
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	AnnualAmount float64 `json:"annual_amount"`
}

// PartADraftInput carries the Part A (base renewal) form fields. Pointers
// distinguish "not sent" from an explicit value; absent fields keep their
// stored values.
type PartADraftInput struct {
	ProgramName        *string            `json:"program_name"`
	ServiceDescription *string            `json:"service_description"`
	CurrentBedCount    *int               `json:"current_bed_count"`
	CurrentUnitCount   *int               `json:"current_unit_count"`
	BudgetLines        *[]BudgetLineInput `json:"budget_lines"`
}

// PartBDraftInput carries the Part B (new or expansion) form fields.
type PartBDraftInput struct {
	ProgramName                  *string            `json:"program_name"`
	ServiceDescription           *string            `json:"service_description"`
	ProposedLocation             *string            `json:"proposed_location"`
	TargetPopulation             *string            `json:"target_population"`
	CommunityNeedJustification   *string            `json:"community_need_justification"`
	ExistingResourcesDescription *string            `json:"existing_resources_description"`
	DVDataReference              *string            `json:"dv_data_reference"`
	ExpansionType                *string            `json:"expansion_type"`
	ProposedBedCount             *int               `json:"proposed_bed_count"`
	ProposedOpenDate             *string            `json:"proposed_open_date"`
	HasFederalFunding            *bool              `json:"has_federal_funding"`
	FederalAgencyName            *string            `json:"federal_agency_name"`
	FederalFundingAmount         *float64           `json:"federal_funding_amount"`
	BudgetLines                  *[]BudgetLineInput `json:"budget_lines"`
}

var openDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ValidatePartADraft checks Part A draft fields. Lenient: only supplied
// fields are checked, and all problems are reported keyed by field name.
func ValidatePartADraft(in *PartADraftInput) map[string]string {
	errs := make(map[string]string)

	if in.ProgramName != nil && *in.ProgramName != "" && !containsString(models.ValidProgramTypes, *in.ProgramName) {
		errs["program_name"] = fmt.Sprintf("Program type must be one of: %s", strings.Join(models.ValidProgramTypes, ", "))
	}
	if in.ServiceDescription != nil && len(*in.ServiceDescription) > 5000 {
		errs["service_description"] = "Service description must be 5,000 characters or less"
	}
	if in.CurrentBedCount != nil && (*in.CurrentBedCount < 0 || *in.CurrentBedCount > 500) {
		errs["current_bed_count"] = "Bed count must be an integer between 0 and 500"
	}
	if in.CurrentUnitCount != nil && (*in.CurrentUnitCount < 0 || *in.CurrentUnitCount > 500) {
		errs["current_unit_count"] = "Unit count must be an integer between 0 and 500"
	}
	if in.BudgetLines != nil {
		validateBudgetLines(*in.BudgetLines, errs)
	}

	return errs
}

// ValidatePartBDraft checks Part B draft fields, same lenient contract as
// Part A.
func ValidatePartBDraft(in *PartBDraftInput) map[string]string {
	errs := make(map[string]string)

	if in.ProgramName != nil && *in.ProgramName != "" && !containsString(models.ValidProgramTypes, *in.ProgramName) {
		errs["program_name"] = fmt.Sprintf("Program type must be one of: %s", strings.Join(models.ValidProgramTypes, ", "))
	}
	if in.ServiceDescription != nil && len(*in.ServiceDescription) > 5000 {
		errs["service_description"] = "Service description must be 5,000 characters or less"
	}
	if in.ProposedLocation != nil && len(*in.ProposedLocation) > 200 {
		errs["proposed_location"] = "Geographic area must be 200 characters or less"
	}
	if in.TargetPopulation != nil && len(*in.TargetPopulation) > 1000 {
		errs["target_population"] = "Population served must be 1,000 characters or less"
	}
	if in.ExistingResourcesDescription != nil && len(*in.ExistingResourcesDescription) > 2000 {
		errs["existing_resources_description"] = "Existing resources description must be 2,000 characters or less"
	}
	if in.CommunityNeedJustification != nil && *in.CommunityNeedJustification != "" {
		if n := len(*in.CommunityNeedJustification); n < 100 || n > 3000 {
			errs["community_need_justification"] = "Need gap description must be between 100 and 3,000 characters"
		}
	}
	if in.DVDataReference != nil && len(*in.DVDataReference) > 500 {
		errs["dv_data_reference"] = "Domestic violence data reference must be 500 characters or less"
	}
	if in.ExpansionType != nil && *in.ExpansionType != "" && !containsString(models.ValidExpansionTypes, *in.ExpansionType) {
		errs["expansion_type"] = fmt.Sprintf("Expansion type must be one of: %s", strings.Join(models.ValidExpansionTypes, ", "))
	}
	if in.ProposedBedCount != nil && (*in.ProposedBedCount < 1 || *in.ProposedBedCount > 200) {
		errs["proposed_bed_count"] = "Requested bed count must be between 1 and 200"
	}
	if in.ProposedOpenDate != nil && *in.ProposedOpenDate != "" && !openDatePattern.MatchString(*in.ProposedOpenDate) {
		errs["proposed_open_date"] = "Proposed open date must be a valid date (YYYY-MM-DD)"
	}
	if in.FederalFundingAmount != nil && *in.FederalFundingAmount < 0 {
		errs["federal_funding_amount"] = "Federal funding amount must be a non-negative number"
	}
	if in.FederalAgencyName != nil && len(*in.FederalAgencyName) > 200 {
		errs["federal_agency_name"] = "Federal agency name must be 200 characters or less"
	}
	if in.BudgetLines != nil {
		validateBudgetLines(*in.BudgetLines, errs)
	}

	return errs
}

func validateBudgetLines(lines []BudgetLineInput, errs map[string]string) {
	for i, line := range lines {
		if !containsString(models.ValidBudgetCategories, line.Category) {
			errs[fmt.Sprintf("budget_lines[%d].category", i)] =
				fmt.Sprintf("Invalid category. Must be one of: %s", strings.Join(models.ValidBudgetCategories, ", "))
		}
		if len(line.Description) > 200 {
			errs[fmt.Sprintf("budget_lines[%d].description", i)] = "Description must be 200 characters or less"
		}
		if line.AnnualAmount < 0 {
			errs[fmt.Sprintf("budget_lines[%d].annual_amount", i)] = "Annual amount must be greater than or equal to zero"
		}
	}
}
