package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the status of a case
type CaseStatus string

const (
	CaseStatusAnalyzed CaseStatus = "analyzed"
	CaseStatusOpen     CaseStatus = "open"
	CaseStatusClosed   CaseStatus = "closed"
)

// Severity buckets for an analyzed case
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// LegalSection is a statutory section matched to a case by the analyzer
type LegalSection struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Punishment      string   `json:"punishment,omitempty"`
	Bailable        bool     `json:"bailable"`
	Cognizable      bool     `json:"cognizable"`
	Confidence      int      `json:"confidence"` // 0-100
	IsPrimary       bool     `json:"is_primary"`
	Reasoning       string   `json:"reasoning,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// CaseAnalysis is the analyzer output attached to a case
type CaseAnalysis struct {
	Category   string         `json:"category"`
	Domain     string         `json:"domain,omitempty"` // criminal / civil
	Severity   Severity       `json:"severity"`
	Confidence int            `json:"confidence"` // 0-100, overall
	Sections   []LegalSection `json:"sections"`
}

// Value implements driver.Valuer for JSONB
func (a CaseAnalysis) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *CaseAnalysis) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Case represents a case entity
type Case struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Status      CaseStatus    `json:"status"`
	Description string        `json:"description"`
	Role        string        `json:"role"` // victim / accused / witness
	CaseType    string        `json:"case_type"`
	Analysis    *CaseAnalysis `json:"analysis"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}
