package controllers

import (
	"net/http"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"
	"shelter-grants-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrganizationRequest struct {
	LegalName                 string  `json:"legal_name"`
	OrganizationType          string  `json:"organization_type"`
	SocietyRegistrationNumber *string `json:"society_registration_number"`
	ZoneCode                  *string `json:"zone_code"`

	ServiceAddressStreet     string `json:"service_address_street"`
	ServiceAddressCity       string `json:"service_address_city"`
	ServiceAddressProvince   string `json:"service_address_province"`
	ServiceAddressPostalCode string `json:"service_address_postal_code"`

	MailingAddressStreet     string `json:"mailing_address_street"`
	MailingAddressCity       string `json:"mailing_address_city"`
	MailingAddressProvince   string `json:"mailing_address_province"`
	MailingAddressPostalCode string `json:"mailing_address_postal_code"`

	PrimaryContactName  string `json:"primary_contact_name"`
	PrimaryContactEmail string `json:"primary_contact_email"`
	PrimaryContactPhone string `json:"primary_contact_phone"`
}

// validateOrganization collects every problem with the registration payload,
// keyed by field name.
func validateOrganization(req *OrganizationRequest) map[string]string {
	errs := make(map[string]string)

	if req.LegalName == "" {
		errs["legal_name"] = "Legal name is required"
	} else if len(req.LegalName) > 200 {
		errs["legal_name"] = "Legal name must be 200 characters or less"
	}

	typeOK := false
	for _, t := range models.ValidOrganizationTypes {
		if req.OrganizationType == t {
			typeOK = true
			break
		}
	}
	if !typeOK {
		errs["organization_type"] = "Invalid organization type"
	}

	if req.ServiceAddressStreet == "" {
		errs["service_address_street"] = "Service address street is required"
	}
	if req.ServiceAddressCity == "" {
		errs["service_address_city"] = "Service address city is required"
	}
	if req.ServiceAddressProvince == "" {
		errs["service_address_province"] = "Service address province is required"
	}
	if !utils.ValidatePostalCode(req.ServiceAddressPostalCode) {
		errs["service_address_postal_code"] = "Service address postal code must be a valid postal code (A1A 1A1)"
	}

	if req.MailingAddressStreet == "" {
		errs["mailing_address_street"] = "Mailing address street is required"
	}
	if req.MailingAddressCity == "" {
		errs["mailing_address_city"] = "Mailing address city is required"
	}
	if req.MailingAddressProvince == "" {
		errs["mailing_address_province"] = "Mailing address province is required"
	}
	if !utils.ValidatePostalCode(req.MailingAddressPostalCode) {
		errs["mailing_address_postal_code"] = "Mailing address postal code must be a valid postal code (A1A 1A1)"
	}

	if req.PrimaryContactName == "" {
		errs["primary_contact_name"] = "Primary contact name is required"
	}
	if !utils.ValidateEmail(req.PrimaryContactEmail) {
		errs["primary_contact_email"] = "Primary contact email must be a valid email address"
	}
	if !utils.ValidatePhone(req.PrimaryContactPhone) {
		errs["primary_contact_phone"] = "Primary contact phone must be a valid phone number"
	}

	if req.ZoneCode != nil && *req.ZoneCode != "" {
		var zone models.Zone
		if err := config.DB.Where("code = ?", *req.ZoneCode).First(&zone).Error; err != nil {
			errs["zone_code"] = "Unknown zone"
		}
	}

	return errs
}

// RegisterOrganization creates the organization profile for the current
// applicant account. One organization per account.
func RegisterOrganization(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	if principal.OrganizationID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An organization is already registered for this account"})
		return
	}

	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validateOrganization(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
		return
	}

	now := time.Now()
	organization := models.Organization{
		ExternalAccountID:         principal.Email,
		LegalName:                 utils.SanitizeInput(req.LegalName),
		OrganizationType:          req.OrganizationType,
		SocietyRegistrationNumber: req.SocietyRegistrationNumber,
		ZoneCode:                  req.ZoneCode,
		ServiceAddressStreet:      utils.SanitizeInput(req.ServiceAddressStreet),
		ServiceAddressCity:        utils.SanitizeInput(req.ServiceAddressCity),
		ServiceAddressProvince:    utils.SanitizeInput(req.ServiceAddressProvince),
		ServiceAddressPostalCode:  utils.SanitizeInput(req.ServiceAddressPostalCode),
		MailingAddressStreet:      utils.SanitizeInput(req.MailingAddressStreet),
		MailingAddressCity:        utils.SanitizeInput(req.MailingAddressCity),
		MailingAddressProvince:    utils.SanitizeInput(req.MailingAddressProvince),
		MailingAddressPostalCode:  utils.SanitizeInput(req.MailingAddressPostalCode),
		PrimaryContactName:        utils.SanitizeInput(req.PrimaryContactName),
		PrimaryContactEmail:       req.PrimaryContactEmail,
		PrimaryContactPhone:       req.PrimaryContactPhone,
		CreateAt:                  &now,
		UpdateAt:                  &now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&organization).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("user_id = ?", principal.UserID).
			Updates(map[string]interface{}{
				"organization_id": organization.OrganizationID,
				"update_at":       now,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register organization"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"organization": organization,
		"message":      "Organization registered successfully",
	})
}

// GetMyOrganization returns the organization linked to the current account.
func GetMyOrganization(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	if principal.OrganizationID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No organization registered for this account"})
		return
	}

	var organization models.Organization
	if err := config.DB.Where("organization_id = ? AND delete_at IS NULL", *principal.OrganizationID).
		First(&organization).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No organization registered for this account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": organization})
}

// UpdateMyOrganization replaces the editable profile fields of the current
// organization. Same validation contract as registration.
func UpdateMyOrganization(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	if principal.OrganizationID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No organization registered for this account"})
		return
	}

	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validateOrganization(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
		return
	}

	var organization models.Organization
	if err := config.DB.Where("organization_id = ? AND delete_at IS NULL", *principal.OrganizationID).
		First(&organization).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No organization registered for this account"})
		return
	}

	now := time.Now()
	organization.LegalName = utils.SanitizeInput(req.LegalName)
	organization.OrganizationType = req.OrganizationType
	organization.SocietyRegistrationNumber = req.SocietyRegistrationNumber
	organization.ZoneCode = req.ZoneCode
	organization.ServiceAddressStreet = utils.SanitizeInput(req.ServiceAddressStreet)
	organization.ServiceAddressCity = utils.SanitizeInput(req.ServiceAddressCity)
	organization.ServiceAddressProvince = utils.SanitizeInput(req.ServiceAddressProvince)
	organization.ServiceAddressPostalCode = utils.SanitizeInput(req.ServiceAddressPostalCode)
	organization.MailingAddressStreet = utils.SanitizeInput(req.MailingAddressStreet)
	organization.MailingAddressCity = utils.SanitizeInput(req.MailingAddressCity)
	organization.MailingAddressProvince = utils.SanitizeInput(req.MailingAddressProvince)
	organization.MailingAddressPostalCode = utils.SanitizeInput(req.MailingAddressPostalCode)
	organization.PrimaryContactName = utils.SanitizeInput(req.PrimaryContactName)
	organization.PrimaryContactEmail = req.PrimaryContactEmail
	organization.PrimaryContactPhone = req.PrimaryContactPhone
	organization.UpdateAt = &now

	if err := config.DB.Save(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization": organization,
		"message":      "Organization updated successfully",
	})
}
