package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexmatch-backend/models"
	"lexmatch-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles HTTP requests for cases
type CaseHandler struct {
	caseService *service.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// CreateCaseRequest represents the request body for creating a case
type CreateCaseRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Role        string `json:"role"`
	CaseType    string `json:"case_type"`
}

// CreateCase handles POST /api/cases
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	result, err := h.caseService.CreateCase(c.Request.Context(), service.CreateCaseRequest{
		UserID:      userID,
		Description: req.Description,
		Role:        req.Role,
		CaseType:    req.CaseType,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyDescription) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DESCRIPTION",
					"message": "Description too short",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Case,
	})
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	result, err := h.caseService.GetCase(c.Request.Context(), service.GetCaseRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Case,
	})
}

// UpdateCaseRequest represents the request body for updating a case
type UpdateCaseRequest struct {
	Status   string `json:"status"`
	CaseType string `json:"case_type"`
}

// UpdateCase handles PUT /api/cases/:id
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	getResult, err := h.caseService.GetCase(c.Request.Context(), service.GetCaseRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	legalCase := getResult.Case

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if req.Status != "" {
		legalCase.Status = models.CaseStatus(req.Status)
	}
	if req.CaseType != "" {
		legalCase.CaseType = req.CaseType
	}

	result, err := h.caseService.UpdateCase(c.Request.Context(), service.UpdateCaseRequest{Case: legalCase})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Case,
	})
}

// ListCases handles GET /api/cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	userIDStr := c.Query("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid or missing user_id",
			},
		})
		return
	}

	var status *models.CaseStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.CaseStatus(statusStr)
		status = &s
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	result, err := h.caseService.ListCases(c.Request.Context(), service.ListCasesRequest{
		UserID: userID,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Cases,
	})
}
