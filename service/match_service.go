package service

import (
	"context"
	"errors"
	"sort"

	"lexmatch-backend/models"
)

// LawyerSource supplies the candidate pool for a match request
type LawyerSource interface {
	ListActive(ctx context.Context) ([]models.Lawyer, error)
}

// MatchService ranks lawyers against analyzed cases
type MatchService struct {
	lawyers LawyerSource
}

// MatchServiceOption is a functional option for MatchService
type MatchServiceOption func(*MatchService)

// MatchWithLawyerSource sets the lawyer source
func MatchWithLawyerSource(src LawyerSource) MatchServiceOption {
	return func(s *MatchService) {
		s.lawyers = src
	}
}

// NewMatchService creates a new match service
func NewMatchService(opts ...MatchServiceOption) *MatchService {
	s := &MatchService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults for a match request
const (
	DefaultMatchLimit    = 5
	DefaultMinMatchScore = 20
)

// MatchOptions tune a single ranking pass
type MatchOptions struct {
	Limit        int    // 0 means DefaultMatchLimit
	MinScore     int    // 0 means DefaultMinMatchScore, negative disables the threshold
	UserLocation string // optional, for proximity bonus
}

// RankLawyers scores every active lawyer in the pool against the case and
// returns the top matches, best first. Inactive lawyers are never scored.
// Pure and deterministic for a fixed pool ordering.
func RankLawyers(lawyers []models.Lawyer, sections []models.LegalSection, caseType string, opts MatchOptions) []models.MatchedLawyer {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinMatchScore
	} else if minScore < 0 {
		minScore = 0
	}

	matched := make([]models.MatchedLawyer, 0, len(lawyers))
	for _, lawyer := range lawyers {
		if !lawyer.Active {
			continue
		}

		score, reason, areas := ScoreLawyer(lawyer, sections, caseType, opts.UserLocation)
		if score < minScore {
			continue
		}

		matched = append(matched, models.MatchedLawyer{
			Lawyer:        lawyer,
			MatchScore:    score,
			MatchPercent:  MatchPercentage(score),
			MatchReason:   reason,
			RelevantAreas: areas,
		})
	}

	// Stable so equal-key candidates keep pool order
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if orZero(a.SuccessRate) != orZero(b.SuccessRate) {
			return orZero(a.SuccessRate) > orZero(b.SuccessRate)
		}
		if a.YearsOfPractice != b.YearsOfPractice {
			return a.YearsOfPractice > b.YearsOfPractice
		}
		if orZero(a.Rating) != orZero(b.Rating) {
			return orZero(a.Rating) > orZero(b.Rating)
		}
		return orZeroInt(a.TotalCases) > orZeroInt(b.TotalCases)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orZeroInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// MatchLawyersRequest represents a request to match lawyers to a case
type MatchLawyersRequest struct {
	Sections     []models.LegalSection
	CaseType     string
	UserLocation string
	Limit        int
	MinScore     int
}

// MatchLawyersResult represents the result of matching lawyers to a case
type MatchLawyersResult struct {
	Lawyers []models.MatchedLawyer
}

// MatchLawyers fetches the active lawyer pool and ranks it against the case.
// MinScore follows the MatchOptions convention: 0 means the default
// threshold, negative disables it.
func (s *MatchService) MatchLawyers(ctx context.Context, req MatchLawyersRequest) (*MatchLawyersResult, error) {
	if s.lawyers == nil {
		return nil, errors.New("lawyer source not set")
	}

	pool, err := s.lawyers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := RankLawyers(pool, req.Sections, req.CaseType, MatchOptions{
		Limit:        req.Limit,
		MinScore:     req.MinScore,
		UserLocation: req.UserLocation,
	})

	return &MatchLawyersResult{Lawyers: matched}, nil
}
