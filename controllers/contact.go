package controllers

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"os"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/models"
	"shelter-grants-api/utils"

	"github.com/gin-gonic/gin"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContactInquiry stores a public contact-form message and forwards it
// to the program inbox when SMTP is configured. Storage is the source of
// truth; mail delivery is best effort.
func SubmitContactInquiry(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email address is required"})
		return
	}
	if len(req.Message) > 5000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must be 5,000 characters or less"})
		return
	}

	clientIP := c.ClientIP()
	inquiry := models.ContactInquiry{
		SenderName:  utils.SanitizeInput(req.Name),
		SenderEmail: req.Email,
		Subject:     utils.SanitizeInput(req.Subject),
		Message:     utils.SanitizeInput(req.Message),
		IPAddress:   &clientIP,
		CreatedAt:   time.Now(),
	}

	if err := config.DB.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	if inbox := os.Getenv("CONTACT_INBOX"); inbox != "" {
		body := fmt.Sprintf("<p><strong>From:</strong> %s (%s)</p><p>%s</p>",
			html.EscapeString(inquiry.SenderName),
			html.EscapeString(inquiry.SenderEmail),
			html.EscapeString(inquiry.Message))
		if err := config.SendMail([]string{inbox}, "Contact inquiry: "+inquiry.Subject, body); err != nil {
			log.Printf("Warning: failed to forward contact inquiry %d: %v", inquiry.InquiryID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for contacting us. We will respond within 5 business days."})
}
