package controllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"
	"shelter-grants-api/services"
	"shelter-grants-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// adminApplicationQuery scopes reviewer queries: Drafts are invisible to
// reviewers until submitted.
func adminApplicationQuery() *gorm.DB {
	return config.DB.Model(&models.GrantApplication{}).
		Where("status_code <> ? AND delete_at IS NULL", models.StatusDraft)
}

// AdminGetApplications lists submitted applications for triage, with
// optional status, type, zone and search filters.
func AdminGetApplications(c *gin.Context) {
	query := adminApplicationQuery().Preload("Organization")

	if status := c.Query("status"); status != "" {
		if !models.ApplicationStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		query = query.Where("status_code = ?", status)
	}
	if appType := c.Query("application_type"); appType != "" {
		query = query.Where("application_type = ?", appType)
	}
	if zone := c.Query("zone"); zone != "" {
		query = query.Joins("JOIN organizations o ON o.organization_id = grant_applications.organization_id").
			Where("o.zone_code = ?", zone)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"reference_number LIKE ? OR organization_id IN (SELECT organization_id FROM organizations WHERE legal_name LIKE ?)",
			like, like)
	}

	var applications []models.GrantApplication
	if err := query.Order("submitted_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// AdminGetApplication returns the full review view of one application.
func AdminGetApplication(c *gin.Context) {
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Preload("Organization").
		Preload("BudgetLines", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, line_item_id") }).
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var documents []models.ApplicationDocument
	config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID).
		Order("uploaded_at ASC").
		Find(&documents)

	c.JSON(http.StatusOK, gin.H{
		"application":         application,
		"documents":           documents,
		"allowed_transitions": services.AllowedTransitions(application.StatusCode),
	})
}

type UpdateStatusRequest struct {
	NewStatus string  `json:"new_status" binding:"required"`
	Note      *string `json:"note"`
}

// AdminUpdateStatus applies a reviewer status transition. Illegal moves come
// back as a conflict carrying the legal next statuses.
func AdminUpdateStatus(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requested := models.ApplicationStatus(req.NewStatus)
	if !requested.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	application, err := services.UpdateStatus(applicationID, requested, principal.UserID, req.Note)
	if err != nil {
		var transitionErr *services.TransitionError
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":             transitionErr.Error(),
				"valid_transitions": transitionErr.Allowed,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"message":     "Status updated successfully",
	})
}

// AdminGetHistory returns the audit trail for any submitted application.
func AdminGetHistory(c *gin.Context) {
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
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

// AdminGetMessages returns an application's thread and marks applicant
// messages read.
func AdminGetMessages(c *gin.Context) {
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
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
		Where("application_id = ? AND sender_role = ? AND is_read = ?", applicationID, models.RoleApplicant, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// AdminSendMessage posts a reviewer message to the applicant.
func AdminSendMessage(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
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
		SenderRole:    models.RoleReviewer,
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

type AddNoteRequest struct {
	NoteText string `json:"note_text" binding:"required"`
}

// AdminGetNotes lists reviewer-only notes on an application.
func AdminGetNotes(c *gin.Context) {
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var notes []models.InternalNote
	if err := config.DB.
		Where("application_id = ?", applicationID).
		Order("created_at ASC, note_id ASC").
		Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// AdminAddNote records a reviewer-only note. Notes never reach applicants.
func AdminAddNote(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	applicationID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var application models.GrantApplication
	if err := adminApplicationQuery().
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.NoteText) > maxMessageBodyLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note must be 5,000 characters or less"})
		return
	}

	note := models.InternalNote{
		ApplicationID: applicationID,
		AuthorUserID:  principal.UserID,
		NoteText:      utils.SanitizeInput(req.NoteText),
		CreatedAt:     time.Now(),
	}
	if err := config.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"note":    note,
		"message": "Note added",
	})
}

// AdminDownloadDocument streams any submitted application's document to a
// reviewer.
func AdminDownloadDocument(c *gin.Context) {
	documentID, ok := paramInt(c, "document_id")
	if !ok {
		return
	}

	var document models.ApplicationDocument
	if err := config.DB.
		Joins("JOIN grant_applications a ON a.application_id = application_documents.application_id").
		Where("application_documents.document_id = ? AND application_documents.delete_at IS NULL", documentID).
		Where("a.status_code <> ? AND a.delete_at IS NULL", models.StatusDraft).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if _, err := os.Stat(document.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(document.StoredPath, document.FileName)
}
