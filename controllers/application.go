package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"
	"shelter-grants-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return v, true
}

// requireOrganization resolves the caller's organization id or writes the
// error response.
func requireOrganization(c *gin.Context) (int, bool) {
	principal, _ := middleware.CurrentPrincipal(c)
	if principal.OrganizationID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "An organization must be registered before working with applications"})
		return 0, false
	}
	return *principal.OrganizationID, true
}

// findOwnedApplication loads an application scoped to the caller's
// organization. A miss and a foreign application look identical to the
// caller.
func findOwnedApplication(c *gin.Context, applicationID, organizationID int) (*models.GrantApplication, bool) {
	var application models.GrantApplication
	if err := config.DB.
		Where("application_id = ? AND organization_id = ? AND delete_at IS NULL", applicationID, organizationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return nil, false
	}
	return &application, true
}

// CreateApplication starts a new Draft application for the caller's
// organization.
func CreateApplication(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}

	application, err := services.CreateDraftApplication(organizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"application": application,
		"message":     "Application created successfully",
	})
}

// GetApplications lists the caller's organization's applications, newest
// first.
func GetApplications(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}

	var applications []models.GrantApplication
	if err := config.DB.
		Where("organization_id = ? AND delete_at IS NULL", organizationID).
		Order("create_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns one application with its budget lines.
func GetApplication(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := config.DB.
		Preload("BudgetLines", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, line_item_id") }).
		Where("application_id = ? AND organization_id = ? AND delete_at IS NULL", applicationID, organizationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

type SetApplicationTypeRequest struct {
	ApplicationType string `json:"application_type" binding:"required"`
}

// SetApplicationType selects Part A or Part B on a Draft application.
// Switching the type clears the other part's fields so stale answers cannot
// ride along into submission.
func SetApplicationType(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req SetApplicationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid := false
	for _, t := range models.ValidApplicationTypes {
		if req.ApplicationType == t {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application type"})
		return
	}

	application, ok := findOwnedApplication(c, applicationID, organizationID)
	if !ok {
		return
	}
	if !application.IsDraft() {
		c.JSON(http.StatusConflict, gin.H{"error": "Only Draft applications can be edited"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"application_type": req.ApplicationType,
		"update_at":        now,
	}
	if req.ApplicationType == models.TypePartABaseRenewal {
		for _, col := range []string{
			"proposed_location", "target_population", "community_need_justification",
			"existing_resources_description", "dv_data_reference", "expansion_type",
			"proposed_bed_count", "proposed_open_date", "has_federal_funding",
			"federal_agency_name", "federal_funding_amount", "federal_funding_expiry_date",
		} {
			updates[col] = nil
		}
	} else {
		updates["current_bed_count"] = nil
		updates["current_unit_count"] = nil
	}

	if err := config.DB.Model(&models.GrantApplication{}).
		Where("application_id = ?", applicationID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	config.DB.First(application, applicationID)
	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"message":     "Application type updated",
	})
}

// SaveDraft applies a partial form save to a Draft application. Absent
// fields keep their stored values; a budget_lines array replaces the stored
// set wholesale and the requested total is recomputed, all in one
// transaction.
func SaveDraft(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	application, ok := findOwnedApplication(c, applicationID, organizationID)
	if !ok {
		return
	}
	if !application.IsDraft() {
		c.JSON(http.StatusConflict, gin.H{"error": "Only Draft applications can be edited"})
		return
	}
	if application.ApplicationType == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select an application type before saving form data"})
		return
	}

	updates := map[string]interface{}{}
	var budgetLines *[]services.BudgetLineInput

	switch *application.ApplicationType {
	case models.TypePartABaseRenewal:
		var in services.PartADraftInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errs := services.ValidatePartADraft(&in); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
			return
		}
		applyIfSet(updates, "program_name", in.ProgramName)
		applyIfSet(updates, "service_description", in.ServiceDescription)
		applyIfSet(updates, "current_bed_count", in.CurrentBedCount)
		applyIfSet(updates, "current_unit_count", in.CurrentUnitCount)
		budgetLines = in.BudgetLines

	case models.TypePartBNewOrExpansion:
		var in services.PartBDraftInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errs := services.ValidatePartBDraft(&in); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
			return
		}
		applyIfSet(updates, "program_name", in.ProgramName)
		applyIfSet(updates, "service_description", in.ServiceDescription)
		applyIfSet(updates, "proposed_location", in.ProposedLocation)
		applyIfSet(updates, "target_population", in.TargetPopulation)
		applyIfSet(updates, "community_need_justification", in.CommunityNeedJustification)
		applyIfSet(updates, "existing_resources_description", in.ExistingResourcesDescription)
		applyIfSet(updates, "dv_data_reference", in.DVDataReference)
		applyIfSet(updates, "expansion_type", in.ExpansionType)
		applyIfSet(updates, "proposed_bed_count", in.ProposedBedCount)
		applyIfSet(updates, "proposed_open_date", in.ProposedOpenDate)
		applyIfSet(updates, "has_federal_funding", in.HasFederalFunding)
		applyIfSet(updates, "federal_agency_name", in.FederalAgencyName)
		applyIfSet(updates, "federal_funding_amount", in.FederalFundingAmount)
		budgetLines = in.BudgetLines
	}

	now := time.Now()
	updates["update_at"] = now

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GrantApplication{}).
			Where("application_id = ?", applicationID).
			Updates(updates).Error; err != nil {
			return err
		}

		if budgetLines != nil {
			if err := tx.Where("application_id = ?", applicationID).
				Delete(&models.BudgetLineItem{}).Error; err != nil {
				return err
			}

			total := 0.0
			for i, line := range *budgetLines {
				item := models.BudgetLineItem{
					ApplicationID: applicationID,
					Category:      line.Category,
					AnnualAmount:  line.AnnualAmount,
					SortOrder:     i,
					CreateAt:      now,
				}
				if line.Description != "" {
					desc := line.Description
					item.Description = &desc
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				total += line.AnnualAmount
			}

			if err := tx.Model(&models.GrantApplication{}).
				Where("application_id = ?", applicationID).
				Update("total_funding_requested", total).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save application"})
		return
	}

	config.DB.
		Preload("BudgetLines", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, line_item_id") }).
		First(application, applicationID)
	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"message":     "Draft saved",
	})
}

func applyIfSet(updates map[string]interface{}, column string, value interface{}) {
	switch v := value.(type) {
	case *string:
		if v != nil {
			updates[column] = *v
		}
	case *int:
		if v != nil {
			updates[column] = *v
		}
	case *float64:
		if v != nil {
			updates[column] = *v
		}
	case *bool:
		if v != nil {
			updates[column] = *v
		}
	}
}

type SubmitApplicationRequest struct {
	DeclarationAccepted bool `json:"declaration_accepted"`
}

// SubmitApplication moves a Draft through the submission gate. The
// declaration must be accepted and every required field present; failures
// come back as the full missing-field list.
func SubmitApplication(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.DeclarationAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The declaration must be accepted before submission"})
		return
	}

	application, err := services.SubmitApplication(applicationID, organizationID, principal.UserID)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Application is incomplete",
				"missing_fields": validationErr.MissingFields,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"message":     fmt.Sprintf("Application %s submitted successfully", application.ReferenceNumber),
	})
}

// GetApplicationHistory returns the status audit trail, oldest first.
func GetApplicationHistory(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if _, ok := findOwnedApplication(c, applicationID, organizationID); !ok {
		return
	}

	var history []models.StatusHistoryEntry
	if err := config.DB.
		Where("application_id = ?", applicationID).
		Order("changed_at ASC, history_id ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
