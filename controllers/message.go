package controllers

import (
	"net/http"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"
	"shelter-grants-api/utils"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	Subject *string `json:"subject"`
	Body    string  `json:"body" binding:"required"`
}

const maxMessageBodyLength = 5000

// GetMessages returns the message thread for an owned application, oldest
// first. Reviewer messages are marked read on fetch.
func GetMessages(c *gin.Context) {
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

	var messages []models.Message
	if err := config.DB.
		Where("application_id = ?", applicationID).
		Order("sent_at ASC, message_id ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	config.DB.Model(&models.Message{}).
		Where("application_id = ? AND sender_role = ? AND is_read = ?", applicationID, models.RoleReviewer, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// SendMessage posts an applicant message on a submitted application. Draft
// applications have no thread.
func SendMessage(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
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
	if application.IsDraft() {
		c.JSON(http.StatusConflict, gin.H{"error": "Messages are only available after submission"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Body) > maxMessageBodyLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must be 5,000 characters or less"})
		return
	}

	message := models.Message{
		ApplicationID: applicationID,
		SenderUserID:  principal.UserID,
		SenderRole:    models.RoleApplicant,
		Subject:       req.Subject,
		Body:          utils.SanitizeInput(req.Body),
		SentAt:        time.Now(),
	}
	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message_entry": message,
		"message":       "Message sent",
	})
}
