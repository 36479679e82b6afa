package service

import (
	"context"
	"testing"

	"lexmatch-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCase(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		wantCategory string
		wantSeverity models.Severity
		wantDomain   string
	}{
		{
			name:         "hacked social media account",
			description:  "Someone hacked my Instagram account and changed my password",
			wantCategory: "Cyber Crime",
			wantSeverity: models.SeverityModerate,
			wantDomain:   "criminal",
		},
		{
			name:         "digital theft classified as cyber not theft",
			description:  "Someone stole my Instagram account",
			wantCategory: "Cyber Crime",
			wantSeverity: models.SeverityModerate,
			wantDomain:   "criminal",
		},
		{
			name:         "physical theft",
			description:  "Someone stole my wallet on the bus",
			wantCategory: "Theft",
			wantSeverity: models.SeverityModerate,
			wantDomain:   "criminal",
		},
		{
			name:         "assault",
			description:  "He punched and kicked me and beat me badly",
			wantCategory: "Assault",
			wantSeverity: models.SeveritySevere,
			wantDomain:   "criminal",
		},
		{
			name:         "intimidation",
			description:  "My neighbour keeps threatening me and I live in fear",
			wantCategory: "Harassment/Intimidation",
			wantSeverity: models.SeverityModerate,
			wantDomain:   "criminal",
		},
		{
			name:         "property dispute is civil",
			description:  "Dispute over land ownership and the boundary wall",
			wantCategory: "Property Dispute",
			wantSeverity: models.SeverityMinor,
			wantDomain:   "civil",
		},
		{
			name:         "no pattern matches",
			description:  "I would like some general advice",
			wantCategory: "General/Other",
			wantSeverity: models.SeverityModerate,
			wantDomain:   "criminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, severity, domain := classifyCase(tt.description)

			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantSeverity, severity)
			assert.Equal(t, tt.wantDomain, domain)
		})
	}
}

func TestDetectAssetType(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"my instagram account password was hacked", "digital_identity"},
		{"my phone and wallet were taken", "physical_property"},
		{"they took my money and loan papers", "financial"},
		{"nothing relevant here", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectAssetType(tt.description), tt.description)
	}
}

func TestMatchSectionsIdentityTheft(t *testing.T) {
	sections := matchSections("someone hacked my instagram account and changed my password", "Cyber Crime")

	require.NotEmpty(t, sections)
	s := sections[0]
	assert.Equal(t, "IT Act 66C", s.Code)
	// 0.92 base plus the asset type boost, capped at 0.95
	assert.Equal(t, 95, s.Confidence)
	assert.Contains(t, s.MatchedKeywords, "instagram")
	assert.Contains(t, s.Reasoning, "digital_identity")
}

func TestMatchSectionsPhysicalTheft(t *testing.T) {
	sections := matchSections("theft of my phone at the market", "Theft")

	require.Len(t, sections, 1)
	assert.Equal(t, "IPC 379", sections[0].Code)
	// 0.90 base plus the physical_property asset boost
	assert.Equal(t, 95, sections[0].Confidence)
	assert.Contains(t, sections[0].MatchedKeywords, "theft")
}

func TestMatchSectionsExclusionKeywords(t *testing.T) {
	// Digital context keeps the physical theft section out even when the
	// category routing would consider it
	sections := matchSections("someone stole my wallet details through my online banking password", "Theft")

	for _, s := range sections {
		assert.NotEqual(t, "IPC 379", s.Code, "physical theft must be excluded for online incidents")
	}
}

func TestMatchSectionsNoBoostWithoutAssetMatch(t *testing.T) {
	sections := matchSections("he keeps threatening me", "Harassment/Intimidation")

	require.NotEmpty(t, sections)
	assert.Equal(t, "IPC 503", sections[0].Code)
	assert.Equal(t, 80, sections[0].Confidence, "no asset boost without a matching asset type")
}

func TestMatchSectionsUnknownCategory(t *testing.T) {
	assert.Empty(t, matchSections("anything at all", "General/Other"))
}

func TestAnalyzeRejectsEmptyDescription(t *testing.T) {
	svc := NewAnalyzerService()

	for _, desc := range []string{"", "  ", "ab", " \t a "} {
		_, err := svc.Analyze(context.Background(), AnalyzeCaseRequest{Description: desc})
		assert.ErrorIs(t, err, ErrEmptyDescription, "description %q", desc)
	}
}

func TestAnalyzeIdentityTheft(t *testing.T) {
	svc := NewAnalyzerService()

	result, err := svc.Analyze(context.Background(), AnalyzeCaseRequest{
		Description: "Someone hacked my Instagram account and changed my password",
	})

	require.NoError(t, err)
	assert.Equal(t, "Cyber Crime", result.Analysis.Category)
	assert.Equal(t, models.SeverityModerate, result.Analysis.Severity)
	assert.Equal(t, "criminal", result.Analysis.Domain)

	require.NotEmpty(t, result.Analysis.Sections)
	assert.Equal(t, "IT Act 66C", result.Analysis.Sections[0].Code)
	assert.True(t, result.Analysis.Sections[0].IsPrimary)
	assert.Equal(t, 95, result.Analysis.Confidence)

	assert.Equal(t, []string{"Cyber Crime", "IT Law", "Criminal Law"}, result.SuggestedAreas)
}

func TestAnalyzeOrdersSectionsByConfidence(t *testing.T) {
	svc := NewAnalyzerService()

	result, err := svc.Analyze(context.Background(), AnalyzeCaseRequest{
		Description: "He keeps threatening me, saying he will kill me",
	})

	require.NoError(t, err)
	sections := result.Analysis.Sections
	require.Len(t, sections, 2)

	assert.Equal(t, "IPC 503", sections[0].Code)
	assert.True(t, sections[0].IsPrimary)
	assert.Equal(t, "IPC 506", sections[1].Code)
	assert.False(t, sections[1].IsPrimary)
	assert.GreaterOrEqual(t, sections[0].Confidence, sections[1].Confidence)
}

func TestAnalyzeNoSectionMatch(t *testing.T) {
	svc := NewAnalyzerService()

	result, err := svc.Analyze(context.Background(), AnalyzeCaseRequest{
		Description: "Dispute over land ownership and the boundary wall",
	})

	require.NoError(t, err)
	assert.Equal(t, "Property Dispute", result.Analysis.Category)
	assert.Empty(t, result.Analysis.Sections)
	assert.Equal(t, 0, result.Analysis.Confidence)
	assert.Empty(t, result.SuggestedAreas)
}

func TestMergeSections(t *testing.T) {
	keyword := []models.LegalSection{
		{Code: "IT Act 66C", Confidence: 95},
	}
	ai := []models.LegalSection{
		{Code: "IT Act 66C", Confidence: 92}, // duplicate, dropped
		{Code: "IT Act 43", Confidence: 75},
	}

	merged := mergeSections(keyword, ai)

	require.Len(t, merged, 2)
	assert.Equal(t, "IT Act 66C", merged[0].Code)
	assert.Equal(t, 95, merged[0].Confidence, "keyword confidence wins on duplicates")
	assert.Equal(t, "IT Act 43", merged[1].Code)
}

func TestOverallConfidence(t *testing.T) {
	assert.Equal(t, 0, overallConfidence(nil))
	assert.Equal(t, 90, overallConfidence([]models.LegalSection{
		{Confidence: 95}, {Confidence: 85},
	}))
	assert.Equal(t, 83, overallConfidence([]models.LegalSection{
		{Confidence: 95}, {Confidence: 80}, {Confidence: 75},
	}))
}

func TestParseCodeList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "plain array",
			input: `["IT Act 66C", "IT Act 43"]`,
			want:  []string{"IT Act 66C", "IT Act 43"},
		},
		{
			name:  "json fence",
			input: "```json\n[\"IPC 379\"]\n```",
			want:  []string{"IPC 379"},
		},
		{
			name:  "bare fence",
			input: "```\n[\"IPC 420\"]\n```",
			want:  []string{"IPC 420"},
		},
		{
			name:  "surrounding prose",
			input: `The applicable sections are: ["IPC 323"] based on the complaint.`,
			want:  []string{"IPC 323"},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  []string{},
		},
		{
			name:    "no array",
			input:   "I cannot determine the sections.",
			wantErr: true,
		},
		{
			name:    "malformed array",
			input:   `["IPC 379",`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, err := parseCodeList(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestFindRule(t *testing.T) {
	rule, ok := findRule("IT Act 66C")
	require.True(t, ok)
	assert.Equal(t, "IT Act 66C", rule.code)

	_, ok = findRule("IPC 9999")
	assert.False(t, ok)
}
