package models

import (
	"time"

	"github.com/google/uuid"
)

// Lawyer represents a lawyer record
type Lawyer struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	BarNumber       string    `json:"bar_number"`
	YearsOfPractice int       `json:"years_of_practice"`
	Location        string    `json:"location"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	PracticeAreas   []string  `json:"practice_areas"`
	Courts          []string  `json:"courts"`
	Languages       []string  `json:"languages"`
	ConsultationFee string    `json:"consultation_fee"`
	FeeMin          int       `json:"fee_min"`
	FeeMax          int       `json:"fee_max"`
	Availability    string    `json:"availability"`
	Verified        bool      `json:"verified"`
	Active          bool      `json:"active"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`

	// Optional quality signals; nil when the record has no history yet
	Rating      *float64 `json:"rating,omitempty"`
	TotalCases  *int     `json:"total_cases,omitempty"`
	SuccessRate *float64 `json:"success_rate,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchedLawyer is a lawyer annotated with the outcome of a match request.
// It is derived per request and never persisted.
type MatchedLawyer struct {
	Lawyer
	MatchScore    int      `json:"match_score"`
	MatchPercent  int      `json:"match_percent"`
	MatchReason   string   `json:"match_reason"`
	RelevantAreas []string `json:"relevant_areas"`
}
