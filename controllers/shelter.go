package controllers

import (
	"net/http"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/models"

	"github.com/gin-gonic/gin"
)

// GetPublicShelters lists active funded shelters for the public directory.
// Funding amounts are stripped; they are reviewer-only data.
func GetPublicShelters(c *gin.Context) {
	query := config.DB.Preload("Zone").Preload("ServiceType").
		Where("is_active = ?", true)

	if zone := c.Query("zone"); zone != "" {
		query = query.Where("zone_code = ?", zone)
	}
	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type_code = ?", serviceType)
	}

	var shelters []models.FundedShelter
	if err := query.Order("shelter_name").Find(&shelters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shelters"})
		return
	}

	for i := range shelters {
		shelters[i].FundingAmount = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"shelters": shelters,
		"total":    len(shelters),
	})
}

// GetZones lists funding zones in display order.
func GetZones(c *gin.Context) {
	var zones []models.Zone
	if err := config.DB.Order("sort_order, code").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

// GetServiceTypes lists shelter service type lookups.
func GetServiceTypes(c *gin.Context) {
	var types []models.ServiceType
	if err := config.DB.Order("code").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_types": types})
}

type ShelterRequest struct {
	ShelterName     string   `json:"shelter_name" binding:"required"`
	City            string   `json:"city" binding:"required"`
	ZoneCode        string   `json:"zone_code" binding:"required"`
	ServiceTypeCode string   `json:"service_type_code" binding:"required"`
	BedCount        *int     `json:"bed_count"`
	UnitCount       *int     `json:"unit_count"`
	FundingAmount   *float64 `json:"funding_amount"`
	IsActive        *bool    `json:"is_active"`
}

func validateShelterLookups(c *gin.Context, req *ShelterRequest) bool {
	var zone models.Zone
	if err := config.DB.Where("code = ?", req.ZoneCode).First(&zone).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown zone"})
		return false
	}
	var serviceType models.ServiceType
	if err := config.DB.Where("code = ?", req.ServiceTypeCode).First(&serviceType).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
		return false
	}
	return true
}

// AdminGetShelters lists all shelters, funding amounts included.
func AdminGetShelters(c *gin.Context) {
	var shelters []models.FundedShelter
	if err := config.DB.Preload("Zone").Preload("ServiceType").
		Order("shelter_name").Find(&shelters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shelters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shelters": shelters,
		"total":    len(shelters),
	})
}

// AdminCreateShelter adds a funded shelter to the directory.
func AdminCreateShelter(c *gin.Context) {
	var req ShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validateShelterLookups(c, &req) {
		return
	}

	now := time.Now()
	shelter := models.FundedShelter{
		ShelterName:     req.ShelterName,
		City:            req.City,
		ZoneCode:        req.ZoneCode,
		ServiceTypeCode: req.ServiceTypeCode,
		BedCount:        req.BedCount,
		UnitCount:       req.UnitCount,
		FundingAmount:   req.FundingAmount,
		IsActive:        true,
		CreateAt:        &now,
		UpdateAt:        &now,
	}
	if req.IsActive != nil {
		shelter.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&shelter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shelter"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"shelter": shelter,
		"message": "Shelter created successfully",
	})
}

// AdminUpdateShelter replaces a shelter's directory entry.
func AdminUpdateShelter(c *gin.Context) {
	shelterID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var shelter models.FundedShelter
	if err := config.DB.Where("shelter_id = ?", shelterID).First(&shelter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelter not found"})
		return
	}

	var req ShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validateShelterLookups(c, &req) {
		return
	}

	now := time.Now()
	shelter.ShelterName = req.ShelterName
	shelter.City = req.City
	shelter.ZoneCode = req.ZoneCode
	shelter.ServiceTypeCode = req.ServiceTypeCode
	shelter.BedCount = req.BedCount
	shelter.UnitCount = req.UnitCount
	shelter.FundingAmount = req.FundingAmount
	if req.IsActive != nil {
		shelter.IsActive = *req.IsActive
	}
	shelter.UpdateAt = &now

	if err := config.DB.Save(&shelter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shelter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shelter": shelter,
		"message": "Shelter updated successfully",
	})
}

// AdminDeleteShelter removes a shelter from the directory.
func AdminDeleteShelter(c *gin.Context) {
	shelterID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("shelter_id = ?", shelterID).Delete(&models.FundedShelter{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shelter"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelter not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shelter deleted successfully"})
}
