package service

import (
	"context"
	"errors"

	"lexmatch-backend/models"
	"lexmatch-backend/repository"

	"github.com/google/uuid"
)

var ErrCaseNotFound = errors.New("case not found")

// CaseService handles business logic for cases
type CaseService struct {
	caseRepo *repository.CaseRepository
	analyzer *AnalyzerService
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// WithCaseRepository sets the case repository
func WithCaseRepository(repo *repository.CaseRepository) CaseServiceOption {
	return func(s *CaseService) {
		s.caseRepo = repo
	}
}

// WithAnalyzer sets the analyzer service
func WithAnalyzer(analyzer *AnalyzerService) CaseServiceOption {
	return func(s *CaseService) {
		s.analyzer = analyzer
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCaseRequest represents a request to create a case
type CreateCaseRequest struct {
	UserID      uuid.UUID
	Description string
	Role        string
	CaseType    string
}

// CreateCaseResult represents the result of creating a case
type CreateCaseResult struct {
	Case *models.Case
}

// CreateCase analyzes the description and persists the resulting case
func (s *CaseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*CreateCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}
	if s.analyzer == nil {
		return nil, errors.New("analyzer not set")
	}

	analysis, err := s.analyzer.Analyze(ctx, AnalyzeCaseRequest{
		Description: req.Description,
		Role:        req.Role,
		CaseType:    req.CaseType,
	})
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "victim"
	}

	c := &models.Case{
		UserID:      req.UserID,
		Status:      models.CaseStatusAnalyzed,
		Description: req.Description,
		Role:        role,
		CaseType:    req.CaseType,
		Analysis:    &analysis.Analysis,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &CreateCaseResult{Case: c}, nil
}

// GetCaseRequest represents a request to get a case
type GetCaseRequest struct {
	ID uuid.UUID
}

// GetCaseResult represents the result of getting a case
type GetCaseResult struct {
	Case *models.Case
}

// GetCase retrieves a case by ID
func (s *CaseService) GetCase(ctx context.Context, req GetCaseRequest) (*GetCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	c, err := s.caseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	return &GetCaseResult{Case: c}, nil
}

// UpdateCaseRequest represents a request to update a case
type UpdateCaseRequest struct {
	Case *models.Case
}

// UpdateCaseResult represents the result of updating a case
type UpdateCaseResult struct {
	Case *models.Case
}

// UpdateCase updates a case
func (s *CaseService) UpdateCase(ctx context.Context, req UpdateCaseRequest) (*UpdateCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	if err := s.caseRepo.Update(ctx, req.Case); err != nil {
		return nil, err
	}

	return &UpdateCaseResult{Case: req.Case}, nil
}

// ListCasesRequest represents a request to list cases
type ListCasesRequest struct {
	UserID uuid.UUID
	Status *models.CaseStatus
	Limit  int
	Offset int
}

// ListCasesResult represents the result of listing cases
type ListCasesResult struct {
	Cases []*models.Case
}

// ListCases lists cases for a user
func (s *CaseService) ListCases(ctx context.Context, req ListCasesRequest) (*ListCasesResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	cases, err := s.caseRepo.ListByUserID(ctx, req.UserID, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListCasesResult{Cases: cases}, nil
}
