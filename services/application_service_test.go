package services

import (
	"reflect"
	"strings"
	"testing"

	"shelter-grants-api/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func completePartA() *models.GrantApplication {
	return &models.GrantApplication{
		ApplicationType:    strp(models.TypePartABaseRenewal),
		ProgramName:        strp("WomensShelter"),
		ServiceDescription: strp("24/7 emergency shelter services"),
		CurrentBedCount:    intp(20),
		CurrentUnitCount:   intp(0),
	}
}

func completePartB() *models.GrantApplication {
	return &models.GrantApplication{
		ApplicationType:            strp(models.TypePartBNewOrExpansion),
		ProgramName:                strp("SecondStageShelter"),
		ServiceDescription:         strp("Transitional housing program"),
		ProposedLocation:           strp("Northern region"),
		TargetPopulation:           strp("Women and children leaving violence"),
		CommunityNeedJustification: strp(strings.Repeat("need ", 30)),
		ExpansionType:              strp("AdditionalBeds"),
		ProposedBedCount:           intp(10),
	}
}

func oneBudgetLine() []models.BudgetLineItem {
	return []models.BudgetLineItem{{Category: "Salaries", AnnualAmount: 100000}}
}

func TestValidateForSubmissionCompletePartA(t *testing.T) {
	if missing := ValidateForSubmission(completePartA(), oneBudgetLine()); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestValidateForSubmissionCompletePartB(t *testing.T) {
	if missing := ValidateForSubmission(completePartB(), oneBudgetLine()); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestValidateForSubmissionCollectsAllPartAFields(t *testing.T) {
	app := &models.GrantApplication{
		ApplicationType: strp(models.TypePartABaseRenewal),
	}

	missing := ValidateForSubmission(app, nil)
	want := []string{"program_name", "service_description", "current_bed_count", "current_unit_count", "budget_lines"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateForSubmissionPartBMissingJustificationAndBudget(t *testing.T) {
	app := completePartB()
	app.CommunityNeedJustification = nil

	missing := ValidateForSubmission(app, nil)
	want := []string{"community_need_justification", "budget_lines"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateForSubmissionWhitespaceDoesNotCount(t *testing.T) {
	app := completePartA()
	app.ProgramName = strp("   ")

	missing := ValidateForSubmission(app, oneBudgetLine())
	want := []string{"program_name"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateForSubmissionNoTypeSelected(t *testing.T) {
	app := &models.GrantApplication{
		ProgramName:        strp("WomensShelter"),
		ServiceDescription: strp("Emergency shelter"),
	}

	missing := ValidateForSubmission(app, oneBudgetLine())
	want := []string{"application_type"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateForSubmissionAlwaysRequiresBudgetLine(t *testing.T) {
	missing := ValidateForSubmission(completePartA(), []models.BudgetLineItem{})

	if !reflect.DeepEqual(missing, []string{"budget_lines"}) {
		t.Errorf("missing = %v, want [budget_lines]", missing)
	}
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	err := &ValidationError{MissingFields: []string{"program_name", "budget_lines"}}
	msg := err.Error()

	if !strings.Contains(msg, "program_name") || !strings.Contains(msg, "budget_lines") {
		t.Errorf("message %q should name every missing field", msg)
	}
}

func TestNextReferenceNumber(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{"first of year", "WSP-2026-", "", "WSP-2026-0001"},
		{"increments", "WSP-2026-", "WSP-2026-0041", "WSP-2026-0042"},
		{"keeps padding", "WSP-2026-", "WSP-2026-0009", "WSP-2026-0010"},
		{"grows past padding", "WSP-2026-", "WSP-2026-9999", "WSP-2026-10000"},
		{"unparseable restarts", "WSP-2026-", "WSP-2026-draft", "WSP-2026-0001"},
		{"new year restarts", "WSP-2027-", "", "WSP-2027-0001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextReferenceNumber(tc.prefix, tc.last); got != tc.want {
				t.Errorf("nextReferenceNumber(%q, %q) = %q, want %q", tc.prefix, tc.last, got, tc.want)
			}
		})
	}
}
