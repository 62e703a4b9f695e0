package services

import (
	"fmt"
	"math"
	"strings"

	"shelter-grants-api/config"

	"gorm.io/gorm"
)

// ReportFilters narrows report queries. Zero values mean no filter. Draft
// applications are always excluded from reporting.
type ReportFilters struct {
	ApplicationType string
	Zone            string
	DateFrom        string
	DateTo          string
}

func reportBaseQuery(filters ReportFilters) *gorm.DB {
	q := config.DB.Table("grant_applications a").
		Joins("JOIN organizations o ON o.organization_id = a.organization_id").
		Where("a.status_code <> ?", "Draft").
		Where("a.delete_at IS NULL")

	if filters.ApplicationType != "" {
		q = q.Where("a.application_type = ?", filters.ApplicationType)
	}
	if filters.Zone != "" {
		q = q.Where("o.zone_code = ?", filters.Zone)
	}
	if filters.DateFrom != "" {
		q = q.Where("a.submitted_at >= ?", filters.DateFrom)
	}
	if filters.DateTo != "" {
		q = q.Where("a.submitted_at <= ?", filters.DateTo)
	}
	return q
}

type TypeBreakdownRow struct {
	ApplicationType string  `json:"application_type"`
	Count           int     `json:"count"`
	TotalRequested  float64 `json:"total_requested"`
}

type ZoneBreakdownRow struct {
	ZoneCode       string  `json:"zone_code"`
	ZoneName       string  `json:"zone_name"`
	Count          int     `json:"count"`
	TotalRequested float64 `json:"total_requested"`
}

type FiscalYearBreakdownRow struct {
	FiscalYearCode string  `json:"fiscal_year_code"`
	Count          int     `json:"count"`
	TotalRequested float64 `json:"total_requested"`
}

type CostPressureRow struct {
	FiscalYearCode  string  `json:"fiscal_year_code"`
	ZoneCode        string  `json:"zone_code"`
	ApplicationType string  `json:"application_type"`
	TotalRequested  float64 `json:"total_requested"`
	AllocatedAmount float64 `json:"allocated_amount"`
	Pressure        float64 `json:"pressure"`
}

// CostPressureReport compares requested funding against allocated budget
// envelopes per fiscal year, zone and application type.
type CostPressureReport struct {
	TotalApplications     int                      `json:"total_applications"`
	TotalFundingRequested float64                  `json:"total_funding_requested"`
	ByType                []TypeBreakdownRow       `json:"by_type"`
	ByZone                []ZoneBreakdownRow       `json:"by_zone"`
	ByFiscalYear          []FiscalYearBreakdownRow `json:"by_fiscal_year"`
	CostPressure          []CostPressureRow        `json:"cost_pressure"`
}

// GenerateCostPressureReport builds the cost pressure report. Draft
// applications never count toward any aggregate.
func GenerateCostPressureReport(filters ReportFilters) (*CostPressureReport, error) {
	report := &CostPressureReport{}

	if err := reportBaseQuery(filters).
		Select("a.application_type, COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested").
		Group("a.application_type").
		Order("a.application_type").
		Scan(&report.ByType).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}

	if err := reportBaseQuery(filters).
		Joins("LEFT JOIN zones z ON z.code = o.zone_code").
		Select("COALESCE(o.zone_code, 'Unknown') AS zone_code, COALESCE(z.name, 'Unknown') AS zone_name, COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested").
		Group("o.zone_code, z.name").
		Order("z.name").
		Scan(&report.ByZone).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by zone: %w", err)
	}

	if err := reportBaseQuery(filters).
		Select("COALESCE(a.fiscal_year_code, 'N/A') AS fiscal_year_code, COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested").
		Group("a.fiscal_year_code").
		Order("a.fiscal_year_code").
		Scan(&report.ByFiscalYear).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by fiscal year: %w", err)
	}

	if err := reportBaseQuery(filters).
		Joins("LEFT JOIN budget_allocations ba ON ba.fiscal_year_code = a.fiscal_year_code AND ba.zone_code = o.zone_code AND ba.application_type = a.application_type").
		Where("a.fiscal_year_code IS NOT NULL").
		Select("a.fiscal_year_code, COALESCE(o.zone_code, 'Unknown') AS zone_code, a.application_type, " +
			"COALESCE(SUM(a.total_funding_requested), 0) AS total_requested, " +
			"COALESCE(ba.allocated_amount, 0) AS allocated_amount, " +
			"COALESCE(SUM(a.total_funding_requested), 0) - COALESCE(ba.allocated_amount, 0) AS pressure").
		Group("a.fiscal_year_code, o.zone_code, a.application_type, ba.allocated_amount").
		Order("a.fiscal_year_code, o.zone_code, a.application_type").
		Scan(&report.CostPressure).Error; err != nil {
		return nil, fmt.Errorf("failed to compute cost pressure: %w", err)
	}

	for _, row := range report.ByType {
		report.TotalApplications += row.Count
		report.TotalFundingRequested += row.TotalRequested
	}

	return report, nil
}

type RegionalReportRow struct {
	ZoneCode         string  `json:"zone_code"`
	ZoneName         string  `json:"zone_name"`
	Count            int     `json:"count"`
	TotalRequested   float64 `json:"total_requested"`
	ApprovedCount    int     `json:"approved_count"`
	DeclinedCount    int     `json:"declined_count"`
	ApprovalRate     int     `json:"approval_rate"`
	AvgRequestAmount float64 `json:"avg_request_amount"`
}

type RegionalReport struct {
	TotalApplications     int                 `json:"total_applications"`
	TotalFundingRequested float64             `json:"total_funding_requested"`
	Zones                 []RegionalReportRow `json:"zones"`
}

// GenerateRegionalReport summarizes funding distribution per zone with
// approval rates over decided applications.
func GenerateRegionalReport(filters ReportFilters) (*RegionalReport, error) {
	report := &RegionalReport{}

	if err := reportBaseQuery(filters).
		Joins("LEFT JOIN zones z ON z.code = o.zone_code").
		Select("COALESCE(o.zone_code, 'Unknown') AS zone_code, COALESCE(z.name, 'Unknown') AS zone_name, " +
			"COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested, " +
			"SUM(CASE WHEN a.status_code = 'Approved' THEN 1 ELSE 0 END) AS approved_count, " +
			"SUM(CASE WHEN a.status_code = 'Declined' THEN 1 ELSE 0 END) AS declined_count").
		Group("o.zone_code, z.name").
		Order("z.name").
		Scan(&report.Zones).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate regional report: %w", err)
	}

	for i := range report.Zones {
		row := &report.Zones[i]
		if decided := row.ApprovedCount + row.DeclinedCount; decided > 0 {
			row.ApprovalRate = int(math.Round(float64(row.ApprovedCount) / float64(decided) * 100))
		}
		if row.Count > 0 {
			row.AvgRequestAmount = math.Round(row.TotalRequested / float64(row.Count))
		}
		report.TotalApplications += row.Count
		report.TotalFundingRequested += row.TotalRequested
	}

	return report, nil
}

type FiscalYearReportRow struct {
	FiscalYearCode       string  `json:"fiscal_year_code"`
	Count                int     `json:"count"`
	TotalRequested       float64 `json:"total_requested"`
	ApprovedCount        int     `json:"approved_count"`
	DeclinedCount        int     `json:"declined_count"`
	ApprovalRate         int     `json:"approval_rate"`
	TotalApprovedFunding float64 `json:"total_approved_funding"`
}

type FiscalYearReport struct {
	TotalApplications     int                   `json:"total_applications"`
	TotalFundingRequested float64               `json:"total_funding_requested"`
	FiscalYears           []FiscalYearReportRow `json:"fiscal_years"`
}

// GenerateFiscalYearReport summarizes applications and approved funding per
// fiscal year.
func GenerateFiscalYearReport(filters ReportFilters) (*FiscalYearReport, error) {
	report := &FiscalYearReport{}

	if err := reportBaseQuery(filters).
		Select("COALESCE(a.fiscal_year_code, 'N/A') AS fiscal_year_code, COUNT(*) AS count, " +
			"COALESCE(SUM(a.total_funding_requested), 0) AS total_requested, " +
			"SUM(CASE WHEN a.status_code = 'Approved' THEN 1 ELSE 0 END) AS approved_count, " +
			"SUM(CASE WHEN a.status_code = 'Declined' THEN 1 ELSE 0 END) AS declined_count, " +
			"COALESCE(SUM(CASE WHEN a.status_code = 'Approved' THEN a.total_funding_requested ELSE 0 END), 0) AS total_approved_funding").
		Group("a.fiscal_year_code").
		Order("a.fiscal_year_code").
		Scan(&report.FiscalYears).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate fiscal year report: %w", err)
	}

	for i := range report.FiscalYears {
		row := &report.FiscalYears[i]
		if decided := row.ApprovedCount + row.DeclinedCount; decided > 0 {
			row.ApprovalRate = int(math.Round(float64(row.ApprovedCount) / float64(decided) * 100))
		}
		report.TotalApplications += row.Count
		report.TotalFundingRequested += row.TotalRequested
	}

	return report, nil
}

// DashboardData is the reviewer analytics payload.
type DashboardData struct {
	Summary struct {
		TotalApplications     int              `json:"total_applications"`
		TotalFundingRequested float64          `json:"total_funding_requested"`
		ApplicationsByStatus  []StatusCountRow `json:"applications_by_status"`
		AverageRequestAmount  float64          `json:"average_request_amount"`
	} `json:"summary"`
	StatusDistribution   []StatusCountRow         `json:"status_distribution"`
	RegionalDistribution []ZoneBreakdownRow       `json:"regional_distribution"`
	FiscalYearTrends     []FiscalYearBreakdownRow `json:"fiscal_year_trends"`
	KPIs                 struct {
		AvgProcessingDays    *float64 `json:"avg_processing_days"`
		ApprovalRate         int      `json:"approval_rate"`
		TotalApprovedFunding float64  `json:"total_approved_funding"`
	} `json:"kpis"`
}

type StatusCountRow struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// GenerateDashboardData builds the reviewer dashboard aggregates. Draft
// applications are excluded throughout.
func GenerateDashboardData() (*DashboardData, error) {
	data := &DashboardData{}
	none := ReportFilters{}

	if err := reportBaseQuery(none).
		Select("a.status_code AS status, COUNT(*) AS count").
		Group("a.status_code").
		Order("a.status_code").
		Scan(&data.StatusDistribution).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate status distribution: %w", err)
	}

	if err := reportBaseQuery(none).
		Joins("LEFT JOIN zones z ON z.code = o.zone_code").
		Select("COALESCE(o.zone_code, 'Unknown') AS zone_code, COALESCE(z.name, 'Unknown') AS zone_name, COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested").
		Group("o.zone_code, z.name").
		Order("z.name").
		Scan(&data.RegionalDistribution).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate regional distribution: %w", err)
	}

	if err := reportBaseQuery(none).
		Select("COALESCE(a.fiscal_year_code, 'N/A') AS fiscal_year_code, COUNT(*) AS count, COALESCE(SUM(a.total_funding_requested), 0) AS total_requested").
		Group("a.fiscal_year_code").
		Order("a.fiscal_year_code").
		Scan(&data.FiscalYearTrends).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate fiscal year trends: %w", err)
	}

	var kpi struct {
		ApprovedCount        int
		DecidedCount         int
		TotalApprovedFunding float64
	}
	if err := reportBaseQuery(none).
		Select("SUM(CASE WHEN a.status_code = 'Approved' THEN 1 ELSE 0 END) AS approved_count, " +
			"SUM(CASE WHEN a.status_code IN ('Approved', 'Declined') THEN 1 ELSE 0 END) AS decided_count, " +
			"COALESCE(SUM(CASE WHEN a.status_code = 'Approved' THEN a.total_funding_requested ELSE 0 END), 0) AS total_approved_funding").
		Scan(&kpi).Error; err != nil {
		return nil, fmt.Errorf("failed to compute KPIs: %w", err)
	}

	var avgDays *float64
	var processing struct{ AvgDays *float64 }
	if err := config.DB.Table("grant_applications a").
		Joins("JOIN status_history sh ON sh.application_id = a.application_id AND sh.to_status IN ('Approved', 'Declined')").
		Where("a.submitted_at IS NOT NULL").
		Select("AVG(TIMESTAMPDIFF(SECOND, a.submitted_at, sh.changed_at)) / 86400 AS avg_days").
		Scan(&processing).Error; err != nil {
		return nil, fmt.Errorf("failed to compute processing time: %w", err)
	}
	if processing.AvgDays != nil {
		rounded := math.Round(*processing.AvgDays*10) / 10
		avgDays = &rounded
	}

	for _, row := range data.StatusDistribution {
		data.Summary.TotalApplications += row.Count
	}
	for _, row := range data.FiscalYearTrends {
		data.Summary.TotalFundingRequested += row.TotalRequested
	}
	data.Summary.ApplicationsByStatus = data.StatusDistribution
	if data.Summary.TotalApplications > 0 {
		data.Summary.AverageRequestAmount = data.Summary.TotalFundingRequested / float64(data.Summary.TotalApplications)
	}

	data.KPIs.AvgProcessingDays = avgDays
	if kpi.DecidedCount > 0 {
		data.KPIs.ApprovalRate = int(math.Round(float64(kpi.ApprovedCount) / float64(kpi.DecidedCount) * 100))
	}
	data.KPIs.TotalApprovedFunding = kpi.TotalApprovedFunding

	return data, nil
}

// --- CSV rendering ---

func csvNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// CostPressureReportCSV renders the cost pressure report as CSV.
func CostPressureReportCSV(report *CostPressureReport) string {
	var lines []string
	lines = append(lines,
		"Cost Pressure Report",
		fmt.Sprintf("Total Applications,%d", report.TotalApplications),
		fmt.Sprintf("Total Funding Requested,%s", csvNumber(report.TotalFundingRequested)),
		"",
		"Application Type,Count,Total Requested")
	for _, row := range report.ByType {
		lines = append(lines, fmt.Sprintf("%s,%d,%s", row.ApplicationType, row.Count, csvNumber(row.TotalRequested)))
	}
	lines = append(lines, "", "Zone,Count,Total Requested")
	for _, row := range report.ByZone {
		lines = append(lines, fmt.Sprintf("%q,%d,%s", row.ZoneName, row.Count, csvNumber(row.TotalRequested)))
	}
	lines = append(lines, "", "Fiscal Year,Count,Total Requested")
	for _, row := range report.ByFiscalYear {
		lines = append(lines, fmt.Sprintf("%s,%d,%s", row.FiscalYearCode, row.Count, csvNumber(row.TotalRequested)))
	}
	lines = append(lines, "", "Fiscal Year,Zone,Application Type,Total Requested,Allocated,Pressure")
	for _, row := range report.CostPressure {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s,%s",
			row.FiscalYearCode, row.ZoneCode, row.ApplicationType,
			csvNumber(row.TotalRequested), csvNumber(row.AllocatedAmount), csvNumber(row.Pressure)))
	}
	return strings.Join(lines, "\n")
}

// RegionalReportCSV renders the regional distribution report as CSV.
func RegionalReportCSV(report *RegionalReport) string {
	var lines []string
	lines = append(lines,
		"Regional Funding Distribution Report",
		fmt.Sprintf("Total Applications,%d", report.TotalApplications),
		fmt.Sprintf("Total Funding Requested,%s", csvNumber(report.TotalFundingRequested)),
		"",
		"Zone,Count,Total Requested,Approved,Declined,Approval Rate (%),Avg Request Amount")
	for _, row := range report.Zones {
		lines = append(lines, fmt.Sprintf("%q,%d,%s,%d,%d,%d,%s",
			row.ZoneName, row.Count, csvNumber(row.TotalRequested),
			row.ApprovedCount, row.DeclinedCount, row.ApprovalRate, csvNumber(row.AvgRequestAmount)))
	}
	return strings.Join(lines, "\n")
}

// FiscalYearReportCSV renders the fiscal year summary report as CSV.
func FiscalYearReportCSV(report *FiscalYearReport) string {
	var lines []string
	lines = append(lines,
		"Fiscal Year Summary Report",
		fmt.Sprintf("Total Applications,%d", report.TotalApplications),
		fmt.Sprintf("Total Funding Requested,%s", csvNumber(report.TotalFundingRequested)),
		"",
		"Fiscal Year,Count,Total Requested,Approved,Declined,Approval Rate (%),Approved Funding")
	for _, row := range report.FiscalYears {
		lines = append(lines, fmt.Sprintf("%s,%d,%s,%d,%d,%d,%s",
			row.FiscalYearCode, row.Count, csvNumber(row.TotalRequested),
			row.ApprovedCount, row.DeclinedCount, row.ApprovalRate, csvNumber(row.TotalApprovedFunding)))
	}
	return strings.Join(lines, "\n")
}
