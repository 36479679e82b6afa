package handlers

import (
	"errors"
	"net/http"

	"lexmatch-backend/models"
	"lexmatch-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MatchHandler handles HTTP requests for case analysis and lawyer matching
type MatchHandler struct {
	analyzerService *service.AnalyzerService
	matchService    *service.MatchService
	caseService     *service.CaseService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(analyzerService *service.AnalyzerService, matchService *service.MatchService, caseService *service.CaseService) *MatchHandler {
	return &MatchHandler{
		analyzerService: analyzerService,
		matchService:    matchService,
		caseService:     caseService,
	}
}

// AnalyzeRequest represents the request body for analyzing a complaint
type AnalyzeRequest struct {
	Description string `json:"description" binding:"required"`
	Role        string `json:"role"`
	CaseType    string `json:"case_type"`
}

// AnalyzeCase handles POST /api/analyze
func (h *MatchHandler) AnalyzeCase(c *gin.Context) {
	var req AnalyzeRequest
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

	result, err := h.analyzerService.Analyze(c.Request.Context(), service.AnalyzeCaseRequest{
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
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"analysis":        result.Analysis,
			"suggested_areas": result.SuggestedAreas,
		},
	})
}

// MatchRequest represents the request body for matching lawyers
type MatchRequest struct {
	Sections     []models.LegalSection `json:"sections" binding:"required"`
	CaseType     string                `json:"case_type"`
	UserLocation string                `json:"user_location"`
	Limit        int                   `json:"limit"`
	MinScore     int                   `json:"min_score"`
}

// MatchLawyers handles POST /api/matches
func (h *MatchHandler) MatchLawyers(c *gin.Context) {
	var req MatchRequest
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

	result, err := h.matchService.MatchLawyers(c.Request.Context(), service.MatchLawyersRequest{
		Sections:     req.Sections,
		CaseType:     req.CaseType,
		UserLocation: req.UserLocation,
		Limit:        req.Limit,
		MinScore:     req.MinScore,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MATCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Lawyers,
	})
}

// MatchCase handles GET /api/cases/:id/matches
func (h *MatchHandler) MatchCase(c *gin.Context) {
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

	caseResult, err := h.caseService.GetCase(c.Request.Context(), service.GetCaseRequest{ID: id})
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

	var sections []models.LegalSection
	caseType := caseResult.Case.CaseType
	if caseResult.Case.Analysis != nil {
		sections = caseResult.Case.Analysis.Sections
	}

	result, err := h.matchService.MatchLawyers(c.Request.Context(), service.MatchLawyersRequest{
		Sections:     sections,
		CaseType:     caseType,
		UserLocation: c.Query("location"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MATCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Lawyers,
	})
}
