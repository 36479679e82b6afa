package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"lexmatch-backend/models"

	"github.com/google/generative-ai-go/genai"
)

var (
	ErrEmptyDescription = errors.New("case description cannot be empty")
	ErrAnalysisFailed   = errors.New("failed to analyze case")
)

const (
	generationAPI  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"
	maxRetries     = 3
	initialBackoff = time.Second

	maxMatchedSections = 5
)

// crimePattern pre-classifies a complaint into a category. Patterns are
// evaluated in priority order so cyber indicators win over generic theft.
type crimePattern struct {
	name     string
	keywords []string
	category string
	severity models.Severity
	domain   string
	priority int
}

var crimePatterns = []crimePattern{
	// Cyber crimes first
	{"cyber_identity_theft", []string{"instagram", "facebook", "twitter", "snapchat", "account", "hacked", "login", "password", "otp"}, "Cyber Crime", models.SeverityModerate, "criminal", 1},
	{"cyber_fraud", []string{"online scam", "upi fraud", "phishing", "fake website", "cyber fraud"}, "Cyber Crime", models.SeveritySevere, "criminal", 1},

	{"bullying_harassment", []string{"bully", "harass", "intimidat", "threaten", "fear", "scare"}, "Harassment/Intimidation", models.SeverityModerate, "criminal", 2},
	{"racism_discrimination", []string{"racism", "racist", "caste", "casteism", "religion", "hate", "communal"}, "Hate Speech/Discrimination", models.SeveritySevere, "criminal", 2},
	{"financial_fraud", []string{"fraud money", "cheated money", "scam money", "investment", "didn't pay", "loan"}, "Financial Fraud", models.SeveritySevere, "criminal", 2},
	{"assault", []string{"hit", "punch", "kicked", "slapped", "beat", "assault", "attack", "hurt"}, "Assault", models.SeveritySevere, "criminal", 2},

	// Theft last so the cyber patterns can claim digital "theft"
	{"theft", []string{"stole", "stolen", "theft", "steal", "took", "missing phone", "pickpocket"}, "Theft", models.SeverityModerate, "criminal", 3},
	{"property", []string{"property", "land", "house", "ownership", "boundary"}, "Property Dispute", models.SeverityMinor, "civil", 3},
}

// sectionRule maps complaint keywords to a statutory section
type sectionRule struct {
	code              string
	name              string
	description       string
	punishment        string
	bailable          bool
	cognizable        bool
	confidence        float64 // 0-1
	keywords          []string
	exclusionKeywords []string
	assetType         string
}

// sectionRules groups candidate sections by rule group; categoryRuleGroups
// selects the groups to try for a classified category.
var sectionRules = map[string][]sectionRule{
	"cyber_identity_theft": {
		{
			code: "IT Act 66C", name: "Identity Theft (Punishment for Identity Theft)",
			description: "Fraudulently using electronic signature, password or unique identification of another person",
			punishment:  "Imprisonment up to 3 years and fine up to ₹1 lakh",
			bailable:    true, cognizable: true, confidence: 0.92,
			keywords:  []string{"instagram", "facebook", "twitter", "account", "hacked", "login", "password", "otp", "username", "profile"},
			assetType: "digital_identity",
		},
		{
			code: "IT Act 66D", name: "Cheating by Personation (Using Computer Resource)",
			description: "Cheating by personation using computer resource or communication device",
			punishment:  "Imprisonment up to 3 years and fine up to ₹1 lakh",
			bailable:    true, cognizable: true, confidence: 0.85,
			keywords:  []string{"impersonat", "fake post", "pretend", "posted as me", "messaging as me"},
			assetType: "digital_identity",
		},
		{
			code: "IT Act 43", name: "Penalty for Damage to Computer System",
			description: "Unauthorized access, download, extraction or damage to computer resource",
			punishment:  "Civil liability up to ₹1 crore",
			bailable:    true, cognizable: false, confidence: 0.75,
			keywords:  []string{"unauthorized access", "breach", "hacked into"},
			assetType: "digital_access",
		},
	},
	"bullying_harassment": {
		{
			code: "IPC 503", name: "Criminal Intimidation",
			description: "Threatening someone with injury to person, reputation or property",
			punishment:  "Imprisonment up to 2 years or fine or both",
			bailable:    true, cognizable: true, confidence: 0.80,
			keywords:  []string{"intimidat", "threaten", "fear", "scare"},
			assetType: "personal",
		},
		{
			code: "IPC 506", name: "Punishment for criminal intimidation",
			description: "Threat to cause death or grievous hurt",
			punishment:  "Imprisonment up to 7 years or fine or both",
			bailable:    false, cognizable: true, confidence: 0.75,
			keywords:  []string{"death threat", "kill", "murder"},
			assetType: "personal",
		},
	},
	"racism_discrimination": {
		{
			code: "IPC 153A", name: "Promoting enmity between groups",
			description: "Promoting enmity on grounds of religion, race, place of birth, residence, language etc",
			punishment:  "Imprisonment up to 3 years or fine or both",
			bailable:    false, cognizable: true, confidence: 0.85,
			keywords:  []string{"racism", "caste", "religion", "hate", "communal"},
			assetType: "social",
		},
	},
	"physical_theft": {
		{
			code: "IPC 379", name: "Theft",
			description: "Dishonestly taking movable physical property out of possession without consent",
			punishment:  "Imprisonment up to 3 years or fine or both",
			bailable:    true, cognizable: true, confidence: 0.90,
			keywords:          []string{"stole phone", "stole wallet", "stole laptop", "stole bag", "theft", "pickpocket", "stolen jewelry"},
			exclusionKeywords: []string{"instagram", "facebook", "twitter", "account", "hacked", "login", "password", "online"},
			assetType:         "physical_property",
		},
	},
	"assault": {
		{
			code: "IPC 323", name: "Voluntarily causing hurt",
			description: "Causing bodily pain, disease or infirmity",
			punishment:  "Imprisonment up to 1 year or fine up to ₹1000 or both",
			bailable:    true, cognizable: true, confidence: 0.85,
			keywords:  []string{"hit", "punch", "slap", "hurt", "beat", "kicked"},
			assetType: "physical",
		},
		{
			code: "IPC 325", name: "Voluntarily causing grievous hurt",
			description: "Causing serious injury like fracture, permanent disfiguration",
			punishment:  "Imprisonment up to 7 years and fine",
			bailable:    false, cognizable: true, confidence: 0.75,
			keywords:  []string{"serious injury", "fracture", "grievous", "broken bone"},
			assetType: "physical",
		},
	},
	"financial_fraud": {
		{
			code: "IPC 420", name: "Cheating and dishonestly inducing delivery of property",
			description: "Deceiving someone to deliver money or property through fraud",
			punishment:  "Imprisonment up to 7 years and fine",
			bailable:    false, cognizable: true, confidence: 0.85,
			keywords:          []string{"fraud money", "cheated money", "scam money", "investment fraud", "paid and didn't deliver", "fake investment"},
			exclusionKeywords: []string{"instagram", "facebook", "account", "hacked"},
			assetType:         "financial",
		},
	},
}

var categoryRuleGroups = map[string][]string{
	"Harassment/Intimidation":     {"bullying_harassment"},
	"Hate Speech/Discrimination":  {"racism_discrimination"},
	"Theft":                       {"cyber_identity_theft", "physical_theft"}, // cyber checked first
	"Cyber Crime":                 {"cyber_identity_theft"},
	"Assault":                     {"assault"},
	"Financial Fraud":             {"financial_fraud"},
}

var assetIndicators = map[string][]string{
	"digital_identity":  {"instagram", "facebook", "twitter", "snapchat", "account", "profile", "username", "login", "password", "otp", "hacked"},
	"digital_data":      {"data", "files", "documents", "photos", "videos"},
	"physical_property": {"phone", "wallet", "laptop", "bag", "watch", "jewelry", "car", "bike"},
	"financial":         {"money", "rupees", "₹", "payment", "paid", "invest", "loan", "bank"},
}

// AnalyzerService turns a complaint description into an analyzed case:
// a category, matched statutory sections with confidence, and a severity.
type AnalyzerService struct {
	geminiClient *genai.Client
}

// AnalyzerServiceOption is a functional option for AnalyzerService
type AnalyzerServiceOption func(*AnalyzerService)

// AnalyzerWithGeminiClient sets the Gemini client. Without one the analyzer
// runs the deterministic keyword pass only.
func AnalyzerWithGeminiClient(client *genai.Client) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.geminiClient = client
	}
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(opts ...AnalyzerServiceOption) *AnalyzerService {
	s := &AnalyzerService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeCaseRequest represents a request to analyze a case description
type AnalyzeCaseRequest struct {
	Description string
	Role        string
	CaseType    string
}

// AnalyzeCaseResult represents the result of analyzing a case
type AnalyzeCaseResult struct {
	Analysis       models.CaseAnalysis
	SuggestedAreas []string
}

// Analyze classifies the description and matches statutory sections to it.
// The deterministic keyword pass always runs; when a Gemini client is
// configured its suggestions are merged in, but an AI failure only logs.
func (s *AnalyzerService) Analyze(ctx context.Context, req AnalyzeCaseRequest) (*AnalyzeCaseResult, error) {
	description := strings.TrimSpace(req.Description)
	if len(description) < 3 {
		return nil, ErrEmptyDescription
	}

	category, severity, domain := classifyCase(description)
	sections := matchSections(description, category)

	if s.geminiClient != nil {
		aiSections, err := s.aiSections(ctx, description)
		if err != nil {
			log.Printf("AI section pass failed, using keyword results only: %v", err)
		} else {
			sections = mergeSections(sections, aiSections)
		}
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Confidence > sections[j].Confidence
	})
	if len(sections) > maxMatchedSections {
		sections = sections[:maxMatchedSections]
	}
	if len(sections) > 0 {
		sections[0].IsPrimary = true
	}

	return &AnalyzeCaseResult{
		Analysis: models.CaseAnalysis{
			Category:   category,
			Domain:     domain,
			Severity:   severity,
			Confidence: overallConfidence(sections),
			Sections:   sections,
		},
		SuggestedAreas: PracticeAreaSuggestions(sections),
	}, nil
}

// classifyCase picks the best-priority matching crime pattern
func classifyCase(description string) (category string, severity models.Severity, domain string) {
	descLower := strings.ToLower(description)

	var best *crimePattern
	bestHits := 0
	for i := range crimePatterns {
		p := &crimePatterns[i]
		hits := 0
		for _, kw := range p.keywords {
			if strings.Contains(descLower, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		if best == nil || p.priority < best.priority || (p.priority == best.priority && hits > bestHits) {
			best = p
			bestHits = hits
		}
	}

	if best == nil {
		return "General/Other", models.SeverityModerate, "criminal"
	}
	return best.category, best.severity, best.domain
}

// detectAssetType finds the asset type with the most indicator hits
func detectAssetType(descLower string) string {
	bestType := "unknown"
	bestScore := 0
	// deterministic iteration over a fixed ordering
	for _, assetType := range []string{"digital_identity", "digital_data", "physical_property", "financial"} {
		score := 0
		for _, indicator := range assetIndicators[assetType] {
			if strings.Contains(descLower, indicator) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestType = assetType
		}
	}
	return bestType
}

// matchSections runs the per-category section rules against the description
func matchSections(description, category string) []models.LegalSection {
	descLower := strings.ToLower(description)
	assetType := detectAssetType(descLower)

	groups := categoryRuleGroups[category]
	if len(groups) == 0 {
		return nil
	}

	// Digital context promotes cyber sections to the front of the queue
	if assetType == "digital_identity" {
		reordered := []string{"cyber_identity_theft"}
		for _, g := range groups {
			if g != "cyber_identity_theft" {
				reordered = append(reordered, g)
			}
		}
		groups = reordered
	}

	var sections []models.LegalSection
	for _, group := range groups {
		for _, rule := range sectionRules[group] {
			if matchesExclusion(descLower, rule.exclusionKeywords) {
				continue
			}

			matched := matchedKeywords(descLower, rule.keywords)
			if len(matched) == 0 {
				continue
			}

			confidence := rule.confidence
			if assetType == rule.assetType {
				confidence = math.Min(0.95, confidence+0.05)
			}

			top := matched
			if len(top) > 3 {
				top = top[:3]
			}

			sections = append(sections, models.LegalSection{
				Code:            rule.code,
				Name:            rule.name,
				Description:     rule.description,
				Punishment:      rule.punishment,
				Bailable:        rule.bailable,
				Cognizable:      rule.cognizable,
				Confidence:      int(math.Round(confidence * 100)),
				Reasoning:       fmt.Sprintf("Matched %s context with keywords: %s", assetType, strings.Join(top, ", ")),
				MatchedKeywords: capKeywords(matched, 5),
			})
		}
	}

	return sections
}

func matchesExclusion(descLower string, exclusions []string) bool {
	for _, kw := range exclusions {
		if strings.Contains(descLower, kw) {
			return true
		}
	}
	return false
}

func matchedKeywords(descLower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(descLower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func capKeywords(kws []string, n int) []string {
	if len(kws) > n {
		return kws[:n]
	}
	return kws
}

// overallConfidence averages the section confidences (0 when none matched)
func overallConfidence(sections []models.LegalSection) int {
	if len(sections) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sections {
		sum += s.Confidence
	}
	return int(math.Round(float64(sum) / float64(len(sections))))
}

// mergeSections folds AI-suggested sections into the keyword results without
// duplicating codes. Keyword results keep their confidence; AI-only sections
// come in with the confidence the rule table assigns.
func mergeSections(keyword, ai []models.LegalSection) []models.LegalSection {
	seen := make(map[string]bool, len(keyword))
	for _, s := range keyword {
		seen[s.Code] = true
	}
	merged := keyword
	for _, s := range ai {
		if !seen[s.Code] {
			seen[s.Code] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// findRule locates a section rule by code across all groups
func findRule(code string) (sectionRule, bool) {
	for _, rules := range sectionRules {
		for _, rule := range rules {
			if rule.code == code {
				return rule, true
			}
		}
	}
	return sectionRule{}, false
}

// aiSections asks Gemini for applicable section codes and validates them
// against the rule table. Unknown codes are discarded.
func (s *AnalyzerService) aiSections(ctx context.Context, description string) ([]models.LegalSection, error) {
	knownCodes := make([]string, 0, 16)
	for _, rules := range sectionRules {
		for _, rule := range rules {
			knownCodes = append(knownCodes, rule.code)
		}
	}
	sort.Strings(knownCodes)

	prompt := fmt.Sprintf(`You are a legal assistant for Indian criminal law.
Given a complaint, pick the applicable statutory sections.

Complaint: %q

Respond with ONLY a JSON array of section codes chosen from this list:
%s

Example response: ["IT Act 66C", "IT Act 43"]`, description, strings.Join(knownCodes, ", "))

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		text, err := callGenerationAPI(ctx, prompt, 0.1)
		if err != nil {
			lastErr = err
			continue
		}

		codes, err := parseCodeList(text)
		if err != nil {
			lastErr = err
			continue
		}

		var sections []models.LegalSection
		for _, code := range codes {
			rule, ok := findRule(code)
			if !ok {
				log.Printf("AI suggested unknown section %q, discarding", code)
				continue
			}
			sections = append(sections, models.LegalSection{
				Code:        rule.code,
				Name:        rule.name,
				Description: rule.description,
				Punishment:  rule.punishment,
				Bailable:    rule.bailable,
				Cognizable:  rule.cognizable,
				Confidence:  int(math.Round(rule.confidence * 100)),
				Reasoning:   "Suggested by AI analysis",
			})
		}
		return sections, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, lastErr)
}

// parseCodeList extracts a JSON string array from a model response,
// tolerating markdown code fences
func parseCodeList(text string) ([]string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var codes []string
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &codes); err != nil {
		return nil, fmt.Errorf("failed to decode section codes: %w", err)
	}
	return codes, nil
}

func callGenerationAPI(ctx context.Context, prompt string, temperature float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generationAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("Gemini API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		Error struct {
			Code    int    `json:"code,omitempty"`
			Message string `json:"message,omitempty"`
		} `json:"error,omitempty"`
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		log.Printf("Failed to decode response. Body: %s", string(bodyBytes))
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error.Message != "" {
		return "", fmt.Errorf("API error: %s (code: %d)", apiResp.Error.Message, apiResp.Error.Code)
	}

	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var responseText strings.Builder
	for _, candidate := range apiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			responseText.WriteString(part.Text)
		}
	}

	result := responseText.String()
	if result == "" {
		return "", fmt.Errorf("API returned empty content")
	}

	return result, nil
}
