package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shelter-grants-api/config"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxDocumentSize      = int64(25 * 1024 * 1024)  // per file
	maxCumulativeStorage = int64(100 * 1024 * 1024) // per application
)

// allowedDocumentTypes maps accepted extensions to the MIME type recorded
// for the stored file.
var allowedDocumentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func uploadBasePath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// UploadDocument attaches a supporting file to an application. Applicants
// may upload while the application is editable (Draft) or when more
// information was requested.
func UploadDocument(c *gin.Context) {
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
	if application.StatusCode != models.StatusDraft && application.StatusCode != models.StatusMoreInfoRequired {
		c.JSON(http.StatusConflict, gin.H{"error": "Documents can only be uploaded while the application is editable or more information was requested"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds the 25MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimeType, allowed := allowedDocumentTypes[ext]
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed. Accepted types: PDF, JPEG, PNG, DOCX"})
		return
	}

	var usedBytes int64
	config.DB.Model(&models.ApplicationDocument{}).
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		Select("COALESCE(SUM(file_size_bytes), 0)").
		Scan(&usedBytes)
	if usedBytes+file.Size > maxCumulativeStorage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total document storage for this application exceeds the 100MB limit"})
		return
	}

	documentTypeCode := c.PostForm("document_type_code")
	if documentTypeCode != "" {
		var docType models.DocumentType
		if err := config.DB.Where("code = ?", documentTypeCode).First(&docType).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document type"})
			return
		}
	}

	appFolder := filepath.Join(uploadBasePath(), "applications", application.ReferenceNumber)
	if err := os.MkdirAll(appFolder, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	// Stored name never derives from the client filename.
	storedName := uuid.New().String() + ext
	fullPath := filepath.Join(appFolder, storedName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	document := models.ApplicationDocument{
		ApplicationID: applicationID,
		UploadedBy:    principal.UserID,
		FileName:      filepath.Base(file.Filename),
		FileType:      mimeType,
		FileSizeBytes: file.Size,
		StoredPath:    fullPath,
		UploadedAt:    time.Now(),
	}
	if documentTypeCode != "" {
		document.DocumentTypeCode = &documentTypeCode
	}

	if err := config.DB.Create(&document).Error; err != nil {
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"document": document,
		"message":  "Document uploaded successfully",
	})
}

// GetDocuments lists the documents attached to an owned application.
func GetDocuments(c *gin.Context) {
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

	var documents []models.ApplicationDocument
	if err := config.DB.
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		Order("uploaded_at ASC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadDocument streams a stored document back to the owning applicant.
func DownloadDocument(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	documentID, ok := paramInt(c, "document_id")
	if !ok {
		return
	}

	var document models.ApplicationDocument
	if err := config.DB.
		Joins("JOIN grant_applications a ON a.application_id = application_documents.application_id").
		Where("application_documents.document_id = ? AND application_documents.delete_at IS NULL", documentID).
		Where("a.organization_id = ? AND a.delete_at IS NULL", organizationID).
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

// DeleteDocument removes a document from a Draft application. Soft delete;
// the stored file is removed from disk.
func DeleteDocument(c *gin.Context) {
	organizationID, ok := requireOrganization(c)
	if !ok {
		return
	}
	documentID, ok := paramInt(c, "document_id")
	if !ok {
		return
	}

	var document models.ApplicationDocument
	if err := config.DB.
		Preload("Application").
		Joins("JOIN grant_applications a ON a.application_id = application_documents.application_id").
		Where("application_documents.document_id = ? AND application_documents.delete_at IS NULL", documentID).
		Where("a.organization_id = ? AND a.delete_at IS NULL", organizationID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if document.Application.StatusCode != models.StatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Documents can only be removed from Draft applications"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.ApplicationDocument{}).
		Where("document_id = ?", documentID).
		Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	os.Remove(document.StoredPath)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// GetDocumentTypes lists the configured document type lookups.
func GetDocumentTypes(c *gin.Context) {
	var types []models.DocumentType
	if err := config.DB.Order("document_order").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document_types": types})
}
