package controllers

import (
	"net/http"

	"shelter-grants-api/services"

	"github.com/gin-gonic/gin"
)

func reportFilters(c *gin.Context) services.ReportFilters {
	return services.ReportFilters{
		ApplicationType: c.Query("application_type"),
		Zone:            c.Query("zone"),
		DateFrom:        c.Query("date_from"),
		DateTo:          c.Query("date_to"),
	}
}

func writeCSV(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

// GetCostPressureReport returns requested funding measured against budget
// allocations.
func GetCostPressureReport(c *gin.Context) {
	report, err := services.GenerateCostPressureReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetCostPressureReportCSV returns the cost pressure report as a CSV
// download.
func GetCostPressureReportCSV(c *gin.Context) {
	report, err := services.GenerateCostPressureReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	writeCSV(c, "cost-pressure-report.csv", services.CostPressureReportCSV(report))
}

// GetRegionalReport returns per-zone funding distribution.
func GetRegionalReport(c *gin.Context) {
	report, err := services.GenerateRegionalReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetRegionalReportCSV returns the regional report as a CSV download.
func GetRegionalReportCSV(c *gin.Context) {
	report, err := services.GenerateRegionalReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	writeCSV(c, "regional-report.csv", services.RegionalReportCSV(report))
}

// GetFiscalYearReport returns per-fiscal-year application summaries.
func GetFiscalYearReport(c *gin.Context) {
	report, err := services.GenerateFiscalYearReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetFiscalYearReportCSV returns the fiscal year report as a CSV download.
func GetFiscalYearReportCSV(c *gin.Context) {
	report, err := services.GenerateFiscalYearReport(reportFilters(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	writeCSV(c, "fiscal-year-report.csv", services.FiscalYearReportCSV(report))
}

// GetDashboard returns the reviewer analytics dashboard payload.
func GetDashboard(c *gin.Context) {
	data, err := services.GenerateDashboardData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": data})
}
