package controller

import (
	"net/http"

	"github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/carhive/carhive-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// Presign issues a short-lived S3 PUT URL for a listing image. The client
// uploads directly to S3 and stores the returned file URL on the listing.
// POST /api/v1/upload/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "filename, content_type, folder and size are required")
		return
	}

	if !storage.ValidFolder(req.Folder) {
		errors.BadRequest(c, errors.ValidationInvalidInput, "folder must be cars, parts or companies")
		return
	}
	if err := ctrl.storage.ValidateFileSize(req.Size); err != nil {
		errors.BadRequest(c, errors.UploadInvalidFileType, err.Error())
		return
	}

	upload, err := ctrl.storage.PresignUpload(req.Filename, req.ContentType, req.Folder)
	if err != nil {
		log.Warn("Presign rejected", map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"error":        err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.UploadInvalidFileType, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload": upload})
}
