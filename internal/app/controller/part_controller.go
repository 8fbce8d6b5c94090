package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PartController struct {
	partService service.PartService
}

func NewPartController(partService service.PartService) *PartController {
	return &PartController{partService: partService}
}

type PartRequest struct {
	Name             string  `json:"name" binding:"required"`
	Category         string  `json:"category" binding:"required"`
	Price            float64 `json:"price" binding:"required,gt=0"`
	Stock            int     `json:"stock" binding:"gte=0"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"image_url"`
	CompatibleCarIDs []uint  `json:"compatible_car_ids"`
}

// List serves the public part catalog
// GET /api/v1/parts?search=&category=&company_id=
func (ctrl *PartController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.PartFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid company_id parameter")
			return
		}
		companyID := uint(id)
		filter.CompanyID = &companyID
	}

	parts, err := ctrl.partService.ListPublic(filter)
	if err != nil {
		log.Error("Failed to list parts", err, nil)
		apperrors.InternalError(c, "Failed to list parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// Get returns one part with its compatibility list
// GET /api/v1/parts/:id
func (ctrl *PartController) Get(c *gin.Context) {
	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	part, err := ctrl.partService.GetPart(partID)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			apperrors.NotFound(c, apperrors.PartNotFound, "Part not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch part")
		return
	}

	c.JSON(http.StatusOK, gin.H{"part": part})
}

// ListMine returns the acting company's part listings
// GET /api/v1/company/parts
func (ctrl *PartController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	parts, err := ctrl.partService.ListCompanyParts(userID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
			return
		}
		log.Error("Failed to list company parts", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// Create lists a new part for the acting company
// POST /api/v1/company/parts
func (ctrl *PartController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid part data")
		return
	}

	part, err := ctrl.partService.CreatePart(userID, service.PartInput{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Stock:            req.Stock,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		CompatibleCarIDs: req.CompatibleCarIDs,
	})
	if err != nil {
		log.Warn("Part creation failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		ctrl.respondPartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"part": part})
}

// Update edits one of the acting company's part listings
// PUT /api/v1/company/parts/:id
func (ctrl *PartController) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid part data")
		return
	}

	part, err := ctrl.partService.UpdatePart(userID, partID, service.PartInput{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Stock:            req.Stock,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		CompatibleCarIDs: req.CompatibleCarIDs,
	})
	if err != nil {
		ctrl.respondPartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"part": part})
}

// Delete removes one of the acting company's part listings
// DELETE /api/v1/company/parts/:id
func (ctrl *PartController) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.partService.DeletePart(userID, partID); err != nil {
		ctrl.respondPartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part deleted"})
}

func (ctrl *PartController) respondPartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPartNotFound):
		apperrors.NotFound(c, apperrors.PartNotFound, "Part not found")
	case errors.Is(err, service.ErrCarNotFound):
		apperrors.BadRequest(c, apperrors.CarNotFound, "Compatible car not found")
	case errors.Is(err, service.ErrCompanyNotFound):
		apperrors.NotFound(c, apperrors.CompanyNotFound, "Company profile not found")
	case errors.Is(err, service.ErrNotOwner):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzNotOwner, "Part belongs to another company")
	default:
		apperrors.InternalError(c, "Part operation failed")
	}
}
