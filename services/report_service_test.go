package services

import (
	"strings"
	"testing"
)

func TestCsvNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{125000, "125000"},
		{1234.5, "1234.50"},
		{99.99, "99.99"},
	}

	for _, tc := range cases {
		if got := csvNumber(tc.in); got != tc.want {
			t.Errorf("csvNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRegionalReportCSV(t *testing.T) {
	report := &RegionalReport{
		TotalApplications:     3,
		TotalFundingRequested: 450000,
		Zones: []RegionalReportRow{
			{ZoneCode: "NORTH", ZoneName: "Northern", Count: 2, TotalRequested: 300000,
				ApprovedCount: 1, DeclinedCount: 1, ApprovalRate: 50, AvgRequestAmount: 150000},
			{ZoneCode: "SOUTH", ZoneName: "Southern", Count: 1, TotalRequested: 150000},
		},
	}

	csv := RegionalReportCSV(report)
	lines := strings.Split(csv, "\n")

	if lines[0] != "Regional Funding Distribution Report" {
		t.Errorf("unexpected title line %q", lines[0])
	}
	if lines[1] != "Total Applications,3" {
		t.Errorf("unexpected totals line %q", lines[1])
	}
	if !strings.Contains(csv, `"Northern",2,300000,1,1,50,150000`) {
		t.Errorf("missing Northern row in:\n%s", csv)
	}
	if !strings.Contains(csv, `"Southern",1,150000,0,0,0,0`) {
		t.Errorf("missing Southern row in:\n%s", csv)
	}
}

func TestFiscalYearReportCSV(t *testing.T) {
	report := &FiscalYearReport{
		TotalApplications:     2,
		TotalFundingRequested: 200000,
		FiscalYears: []FiscalYearReportRow{
			{FiscalYearCode: "2026-27", Count: 2, TotalRequested: 200000,
				ApprovedCount: 1, DeclinedCount: 0, ApprovalRate: 100, TotalApprovedFunding: 80000},
		},
	}

	csv := FiscalYearReportCSV(report)
	if !strings.Contains(csv, "Fiscal Year Summary Report") {
		t.Error("missing report title")
	}
	if !strings.Contains(csv, "2026-27,2,200000,1,0,100,80000") {
		t.Errorf("missing fiscal year row in:\n%s", csv)
	}
}

func TestCostPressureReportCSV(t *testing.T) {
	report := &CostPressureReport{
		TotalApplications:     1,
		TotalFundingRequested: 500000,
		ByType: []TypeBreakdownRow{
			{ApplicationType: "PART_A_BASE_RENEWAL", Count: 1, TotalRequested: 500000},
		},
		CostPressure: []CostPressureRow{
			{FiscalYearCode: "2026-27", ZoneCode: "NORTH", ApplicationType: "PART_A_BASE_RENEWAL",
				TotalRequested: 500000, AllocatedAmount: 400000, Pressure: 100000},
		},
	}

	csv := CostPressureReportCSV(report)
	if !strings.Contains(csv, "Cost Pressure Report") {
		t.Error("missing report title")
	}
	if !strings.Contains(csv, "PART_A_BASE_RENEWAL,1,500000") {
		t.Errorf("missing type row in:\n%s", csv)
	}
	if !strings.Contains(csv, "2026-27,NORTH,PART_A_BASE_RENEWAL,500000,400000,100000") {
		t.Errorf("missing pressure row in:\n%s", csv)
	}
}
