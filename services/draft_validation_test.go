package services

import (
	"strings"
	"testing"
)

func TestValidatePartADraftAcceptsPartialInput(t *testing.T) {
	in := &PartADraftInput{ProgramName: strp("WomensShelter")}

	if errs := ValidatePartADraft(in); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidatePartADraftEmptyInputIsValid(t *testing.T) {
	if errs := ValidatePartADraft(&PartADraftInput{}); len(errs) != 0 {
		t.Errorf("draft save with no fields should pass, got %v", errs)
	}
}

func TestValidatePartADraftLimits(t *testing.T) {
	longDescription := strings.Repeat("x", 5001)
	in := &PartADraftInput{
		ProgramName:        strp("DayProgram"),
		ServiceDescription: &longDescription,
		CurrentBedCount:    intp(501),
		CurrentUnitCount:   intp(-1),
	}

	errs := ValidatePartADraft(in)
	for _, field := range []string{"program_name", "service_description", "current_bed_count", "current_unit_count"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidatePartBDraftJustificationLength(t *testing.T) {
	short := strings.Repeat("x", 99)
	in := &PartBDraftInput{CommunityNeedJustification: &short}
	if errs := ValidatePartBDraft(in); errs["community_need_justification"] == "" {
		t.Error("expected error for justification under 100 characters")
	}

	ok := strings.Repeat("x", 100)
	in = &PartBDraftInput{CommunityNeedJustification: &ok}
	if errs := ValidatePartBDraft(in); len(errs) != 0 {
		t.Errorf("expected 100-character justification to pass, got %v", errs)
	}

	long := strings.Repeat("x", 3001)
	in = &PartBDraftInput{CommunityNeedJustification: &long}
	if errs := ValidatePartBDraft(in); errs["community_need_justification"] == "" {
		t.Error("expected error for justification over 3000 characters")
	}
}

func TestValidatePartBDraftBedCountBounds(t *testing.T) {
	cases := []struct {
		count int
		valid bool
	}{
		{0, false},
		{1, true},
		{200, true},
		{201, false},
	}

	for _, tc := range cases {
		in := &PartBDraftInput{ProposedBedCount: intp(tc.count)}
		errs := ValidatePartBDraft(in)
		if tc.valid && len(errs) != 0 {
			t.Errorf("bed count %d should be valid, got %v", tc.count, errs)
		}
		if !tc.valid && errs["proposed_bed_count"] == "" {
			t.Errorf("bed count %d should be rejected", tc.count)
		}
	}
}

func TestValidatePartBDraftOpenDateFormat(t *testing.T) {
	bad := strp("03/15/2027")
	if errs := ValidatePartBDraft(&PartBDraftInput{ProposedOpenDate: bad}); errs["proposed_open_date"] == "" {
		t.Error("expected error for non ISO date")
	}

	good := strp("2027-03-15")
	if errs := ValidatePartBDraft(&PartBDraftInput{ProposedOpenDate: good}); len(errs) != 0 {
		t.Errorf("expected ISO date to pass, got %v", errs)
	}
}

func TestValidatePartBDraftExpansionType(t *testing.T) {
	if errs := ValidatePartBDraft(&PartBDraftInput{ExpansionType: strp("Remodel")}); errs["expansion_type"] == "" {
		t.Error("expected error for unknown expansion type")
	}
	if errs := ValidatePartBDraft(&PartBDraftInput{ExpansionType: strp("NewShelter")}); len(errs) != 0 {
		t.Errorf("expected known expansion type to pass, got %v", errs)
	}
}

func TestValidateBudgetLines(t *testing.T) {
	lines := []BudgetLineInput{
		{Category: "Salaries", Description: "Two staff", AnnualAmount: 120000},
		{Category: "Snacks", AnnualAmount: 500},
		{Category: "Utilities", Description: strings.Repeat("x", 201), AnnualAmount: -1},
	}

	in := &PartADraftInput{BudgetLines: &lines}
	errs := ValidatePartADraft(in)

	if _, ok := errs["budget_lines[0].category"]; ok {
		t.Error("valid line should not be flagged")
	}
	if errs["budget_lines[1].category"] == "" {
		t.Error("expected error for unknown category")
	}
	if errs["budget_lines[2].description"] == "" {
		t.Error("expected error for long description")
	}
	if errs["budget_lines[2].annual_amount"] == "" {
		t.Error("expected error for negative amount")
	}
}
