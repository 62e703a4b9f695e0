package controllers

import (
	"net/http"

	"shelter-grants-api/config"
	"shelter-grants-api/models"

	"github.com/gin-gonic/gin"
)

// GetFAQs lists active FAQ entries, optionally filtered by category.
func GetFAQs(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var faqs []models.FAQ
	if err := query.Order("category, sort_order, faq_id").Find(&faqs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"faqs":  faqs,
		"total": len(faqs),
	})
}
