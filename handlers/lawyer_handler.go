package handlers

import (
	"net/http"

	"lexmatch-backend/models"
	"lexmatch-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LawyerHandler handles HTTP requests for lawyer records
type LawyerHandler struct {
	lawyerRepo *repository.LawyerRepository
}

// NewLawyerHandler creates a new lawyer handler
func NewLawyerHandler(lawyerRepo *repository.LawyerRepository) *LawyerHandler {
	return &LawyerHandler{lawyerRepo: lawyerRepo}
}

// CreateLawyerRequest represents the request body for creating a lawyer
type CreateLawyerRequest struct {
	Name            string   `json:"name" binding:"required"`
	BarNumber       string   `json:"bar_number" binding:"required"`
	YearsOfPractice int      `json:"years_of_practice"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PracticeAreas   []string `json:"practice_areas"`
	Courts          []string `json:"courts"`
	Languages       []string `json:"languages"`
	ConsultationFee string   `json:"consultation_fee"`
	FeeMin          int      `json:"fee_min"`
	FeeMax          int      `json:"fee_max"`
	Availability    string   `json:"availability"`
	Verified        bool     `json:"verified"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Rating          *float64 `json:"rating"`
	TotalCases      *int     `json:"total_cases"`
	SuccessRate     *float64 `json:"success_rate"`
}

// CreateLawyer handles POST /api/lawyers
func (h *LawyerHandler) CreateLawyer(c *gin.Context) {
	var req CreateLawyerRequest
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

	lawyer := &models.Lawyer{
		Name:            req.Name,
		BarNumber:       req.BarNumber,
		YearsOfPractice: req.YearsOfPractice,
		Location:        req.Location,
		City:            req.City,
		State:           req.State,
		PracticeAreas:   req.PracticeAreas,
		Courts:          req.Courts,
		Languages:       req.Languages,
		ConsultationFee: req.ConsultationFee,
		FeeMin:          req.FeeMin,
		FeeMax:          req.FeeMax,
		Availability:    req.Availability,
		Verified:        req.Verified,
		Active:          true,
		Email:           req.Email,
		Phone:           req.Phone,
		Rating:          req.Rating,
		TotalCases:      req.TotalCases,
		SuccessRate:     req.SuccessRate,
	}

	if err := h.lawyerRepo.Create(c.Request.Context(), lawyer); err != nil {
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
		"data":    lawyer,
	})
}

// ListLawyers handles GET /api/lawyers
func (h *LawyerHandler) ListLawyers(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	lawyers, err := h.lawyerRepo.List(c.Request.Context(), onlyActive)
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
		"data":    lawyers,
	})
}

// GetLawyer handles GET /api/lawyers/:id
func (h *LawyerHandler) GetLawyer(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid lawyer ID format",
			},
		})
		return
	}

	lawyer, err := h.lawyerRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Lawyer not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    lawyer,
	})
}

// UpdateLawyerRequest represents the request body for updating a lawyer
type UpdateLawyerRequest struct {
	Name            string   `json:"name"`
	BarNumber       string   `json:"bar_number"`
	YearsOfPractice *int     `json:"years_of_practice"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PracticeAreas   []string `json:"practice_areas"`
	Courts          []string `json:"courts"`
	Languages       []string `json:"languages"`
	ConsultationFee string   `json:"consultation_fee"`
	FeeMin          *int     `json:"fee_min"`
	FeeMax          *int     `json:"fee_max"`
	Availability    string   `json:"availability"`
	Verified        *bool    `json:"verified"`
	Active          *bool    `json:"active"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Rating          *float64 `json:"rating"`
	TotalCases      *int     `json:"total_cases"`
	SuccessRate     *float64 `json:"success_rate"`
}

// UpdateLawyer handles PUT /api/lawyers/:id
func (h *LawyerHandler) UpdateLawyer(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid lawyer ID format",
			},
		})
		return
	}

	lawyer, err := h.lawyerRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Lawyer not found",
			},
		})
		return
	}

	var req UpdateLawyerRequest
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

	if req.Name != "" {
		lawyer.Name = req.Name
	}
	if req.BarNumber != "" {
		lawyer.BarNumber = req.BarNumber
	}
	if req.YearsOfPractice != nil {
		lawyer.YearsOfPractice = *req.YearsOfPractice
	}
	if req.Location != "" {
		lawyer.Location = req.Location
	}
	if req.City != "" {
		lawyer.City = req.City
	}
	if req.State != "" {
		lawyer.State = req.State
	}
	if req.PracticeAreas != nil {
		lawyer.PracticeAreas = req.PracticeAreas
	}
	if req.Courts != nil {
		lawyer.Courts = req.Courts
	}
	if req.Languages != nil {
		lawyer.Languages = req.Languages
	}
	if req.ConsultationFee != "" {
		lawyer.ConsultationFee = req.ConsultationFee
	}
	if req.FeeMin != nil {
		lawyer.FeeMin = *req.FeeMin
	}
	if req.FeeMax != nil {
		lawyer.FeeMax = *req.FeeMax
	}
	if req.Availability != "" {
		lawyer.Availability = req.Availability
	}
	if req.Verified != nil {
		lawyer.Verified = *req.Verified
	}
	if req.Active != nil {
		lawyer.Active = *req.Active
	}
	if req.Email != "" {
		lawyer.Email = req.Email
	}
	if req.Phone != "" {
		lawyer.Phone = req.Phone
	}
	if req.Rating != nil {
		lawyer.Rating = req.Rating
	}
	if req.TotalCases != nil {
		lawyer.TotalCases = req.TotalCases
	}
	if req.SuccessRate != nil {
		lawyer.SuccessRate = req.SuccessRate
	}

	if err := h.lawyerRepo.Update(c.Request.Context(), lawyer); err != nil {
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
		"data":    lawyer,
	})
}

// DeactivateLawyer handles DELETE /api/lawyers/:id
// Lawyer records are deactivated, never hard-deleted through the API.
func (h *LawyerHandler) DeactivateLawyer(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid lawyer ID format",
			},
		})
		return
	}

	if err := h.lawyerRepo.SetActive(c.Request.Context(), id, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DEACTIVATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":     id,
			"active": false,
		},
	})
}
