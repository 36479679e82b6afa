package service

import (
	"fmt"
	"math"
	"strings"

	"lexmatch-backend/models"
)

// practiceAreaMapping maps statutory section codes to the practice areas
// relevant to them. Codes absent from the map contribute nothing to a score.
var practiceAreaMapping = map[string][]string{
	// Cyber Crime & IT Act
	"IPC 66":     {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66A":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66B":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66C":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66D":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66E":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IPC 66F":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 43":  {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 65":  {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 66C": {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 66D": {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 66E": {"Cyber Crime", "IT Law", "Criminal Law"},
	"IT Act 67":  {"Cyber Crime", "IT Law", "Criminal Law"},

	// Theft & Property Crimes
	"IPC 378": {"Criminal Law", "Property Law", "Theft"},
	"IPC 379": {"Criminal Law", "Property Law", "Theft"},
	"IPC 380": {"Criminal Law", "Property Law", "Theft"},
	"IPC 381": {"Criminal Law", "Property Law", "Theft"},
	"IPC 382": {"Criminal Law", "Property Law", "Theft"},
	"IPC 403": {"Criminal Law", "Property Law", "Theft"},
	"IPC 404": {"Criminal Law", "Property Law", "Theft"},
	"IPC 405": {"Criminal Law", "Property Law", "Criminal Breach of Trust"},
	"IPC 406": {"Criminal Law", "Property Law", "Criminal Breach of Trust"},
	"IPC 407": {"Criminal Law", "Property Law", "Criminal Breach of Trust"},
	"IPC 408": {"Criminal Law", "Property Law", "Criminal Breach of Trust"},
	"IPC 409": {"Criminal Law", "Property Law", "Criminal Breach of Trust"},

	// Robbery & Dacoity
	"IPC 390": {"Criminal Law", "Robbery", "Serious Offenses"},
	"IPC 392": {"Criminal Law", "Robbery", "Serious Offenses"},
	"IPC 393": {"Criminal Law", "Robbery", "Serious Offenses"},
	"IPC 394": {"Criminal Law", "Robbery", "Serious Offenses"},
	"IPC 395": {"Criminal Law", "Robbery", "Serious Offenses"},
	"IPC 396": {"Criminal Law", "Robbery", "Murder", "Serious Offenses"},

	// Cheating & Fraud
	"IPC 415": {"Criminal Law", "Fraud", "Economic Offenses"},
	"IPC 416": {"Criminal Law", "Fraud", "Economic Offenses"},
	"IPC 417": {"Criminal Law", "Fraud", "Economic Offenses"},
	"IPC 418": {"Criminal Law", "Fraud", "Economic Offenses"},
	"IPC 419": {"Criminal Law", "Fraud", "Economic Offenses"},
	"IPC 420": {"Criminal Law", "Fraud", "Economic Offenses", "IPC 420"},

	// Extortion & Threats
	"IPC 383": {"Criminal Law", "Extortion"},
	"IPC 384": {"Criminal Law", "Extortion"},
	"IPC 385": {"Criminal Law", "Extortion"},
	"IPC 386": {"Criminal Law", "Extortion"},
	"IPC 387": {"Criminal Law", "Extortion"},
	"IPC 503": {"Criminal Law", "Intimidation"},
	"IPC 504": {"Criminal Law", "Intimidation"},
	"IPC 505": {"Criminal Law", "Intimidation"},
	"IPC 506": {"Criminal Law", "Intimidation"},
	"IPC 507": {"Criminal Law", "Intimidation"},

	// Assault & Violence
	"IPC 319":  {"Criminal Law", "Assault", "Violence"},
	"IPC 320":  {"Criminal Law", "Assault", "Violence"},
	"IPC 321":  {"Criminal Law", "Assault", "Violence"},
	"IPC 322":  {"Criminal Law", "Assault", "Violence"},
	"IPC 323":  {"Criminal Law", "Assault", "Violence", "IPC 323-326"},
	"IPC 324":  {"Criminal Law", "Assault", "Violence", "IPC 323-326"},
	"IPC 325":  {"Criminal Law", "Assault", "Violence", "IPC 323-326"},
	"IPC 326":  {"Criminal Law", "Assault", "Violence", "IPC 323-326"},
	"IPC 326A": {"Criminal Law", "Assault", "Acid Attack", "Women Rights"},
	"IPC 326B": {"Criminal Law", "Assault", "Acid Attack", "Women Rights"},

	// Murder & Culpable Homicide
	"IPC 299":  {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 300":  {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 302":  {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 304":  {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 304A": {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 304B": {"Criminal Law", "Murder", "Dowry Death", "Women Rights"},
	"IPC 305":  {"Criminal Law", "Murder", "Serious Offenses"},
	"IPC 306":  {"Criminal Law", "Abetment of Suicide", "Serious Offenses"},
	"IPC 307":  {"Criminal Law", "Attempted Murder", "Serious Offenses"},
	"IPC 308":  {"Criminal Law", "Attempted Murder", "Serious Offenses"},

	// Domestic Violence & Women
	"IPC 498":  {"Domestic Violence", "Family Law", "Criminal Law"},
	"IPC 498A": {"Domestic Violence", "Family Law", "Women Rights", "Criminal Law"},
	"IPC 113A": {"Domestic Violence", "Family Law", "Women Rights"},
	"IPC 113B": {"Domestic Violence", "Family Law", "Women Rights"},

	// Sexual Offenses
	"IPC 354":  {"Criminal Law", "Sexual Offenses", "Women Rights"},
	"IPC 354A": {"Criminal Law", "Sexual Offenses", "Women Rights"},
	"IPC 354B": {"Criminal Law", "Sexual Offenses", "Women Rights"},
	"IPC 354C": {"Criminal Law", "Sexual Offenses", "Women Rights"},
	"IPC 354D": {"Criminal Law", "Sexual Offenses", "Stalking", "Women Rights"},
	"IPC 375":  {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 376":  {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 376A": {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 376B": {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 376C": {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 376D": {"Criminal Law", "Sexual Offenses", "Rape", "Women Rights"},
	"IPC 509":  {"Criminal Law", "Sexual Offenses", "Women Rights"},

	// Kidnapping & Abduction
	"IPC 363":  {"Criminal Law", "Kidnapping"},
	"IPC 364":  {"Criminal Law", "Kidnapping"},
	"IPC 364A": {"Criminal Law", "Kidnapping", "Serious Offenses"},
	"IPC 365":  {"Criminal Law", "Kidnapping"},
	"IPC 366":  {"Criminal Law", "Kidnapping"},
	"IPC 367":  {"Criminal Law", "Kidnapping"},
	"IPC 368":  {"Criminal Law", "Kidnapping"},

	// Defamation
	"IPC 499": {"Criminal Law", "Defamation", "Civil Rights"},
	"IPC 500": {"Criminal Law", "Defamation", "Civil Rights"},
	"IPC 501": {"Criminal Law", "Defamation", "Civil Rights"},

	// Hate Speech & Communal
	"IPC 153A": {"Criminal Law", "Hate Speech", "Constitutional Law"},
	"IPC 153B": {"Criminal Law", "Hate Speech", "Constitutional Law"},
	"IPC 295":  {"Criminal Law", "Religious Offenses", "Constitutional Law"},
	"IPC 295A": {"Criminal Law", "Religious Offenses", "Constitutional Law"},
	"IPC 296":  {"Criminal Law", "Religious Offenses"},
	"IPC 298":  {"Criminal Law", "Religious Offenses"},

	// Corruption & Bribery
	"IPC 161":  {"Criminal Law", "Corruption", "Public Law"},
	"IPC 162":  {"Criminal Law", "Corruption", "Public Law"},
	"IPC 163":  {"Criminal Law", "Corruption", "Public Law"},
	"IPC 164":  {"Criminal Law", "Corruption", "Public Law"},
	"IPC 165":  {"Criminal Law", "Corruption", "Public Law"},
	"IPC 171":  {"Criminal Law", "Election Offenses", "Public Law"},
	"IPC 171A": {"Criminal Law", "Election Offenses", "Public Law"},
	"IPC 171B": {"Criminal Law", "Election Offenses", "Public Law"},

	// Forgery
	"IPC 463": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 464": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 465": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 466": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 467": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 468": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 469": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 470": {"Criminal Law", "Forgery", "Fraud"},
	"IPC 471": {"Criminal Law", "Forgery", "Fraud"},

	// Counterfeiting
	"IPC 489A": {"Criminal Law", "Counterfeiting", "Economic Offenses"},
	"IPC 489B": {"Criminal Law", "Counterfeiting", "Economic Offenses"},
	"IPC 489C": {"Criminal Law", "Counterfeiting", "Economic Offenses"},
	"IPC 489D": {"Criminal Law", "Counterfeiting", "Economic Offenses"},
}

// caseTypeMapping maps case types (lowercased) to relevant practice areas
var caseTypeMapping = map[string][]string{
	"cyber":    {"Cyber Crime", "IT Law", "Criminal Law"},
	"theft":    {"Criminal Law", "Property Law", "Theft"},
	"fraud":    {"Criminal Law", "Fraud", "Consumer Protection"},
	"criminal": {"Criminal Law", "General Practice"},
	"civil":    {"Civil Law", "General Practice"},
	"family":   {"Family Law", "Divorce", "Matrimonial"},
	"property": {"Property Law", "Real Estate", "Civil Law"},
	"business": {"Corporate Law", "Business Law", "Commercial"},
	"labor":    {"Labor Law", "Employment Law"},
	"consumer": {"Consumer Protection", "Consumer Law"},
}

// Scoring point values. All bonuses are additive; nothing ever subtracts.
const (
	pointsPrimarySection   = 60
	pointsSecondarySection = 35
	pointsCaseTypeMatch    = 15
	pointsSameCity         = 25
	pointsSameState        = 10
	pointsVerified         = 12
)

// scoreTier is one row of a highest-first bonus table: the first tier whose
// threshold the value meets wins, all lower tiers are skipped.
type scoreTier struct {
	min    float64
	points int
}

var (
	depthTiers = []struct {
		minMatches int
		points     int
		reason     string
	}{
		{3, 20, "Deep expertise in this area"},
		{2, 10, ""},
	}

	experienceTiers = []struct {
		minYears   int
		points     int
		withReason bool
	}{
		{20, 20, true},
		{15, 17, true},
		{10, 15, true},
		{5, 10, false},
	}

	ratingTiers      = []scoreTier{{4.8, 15}, {4.5, 12}, {4.0, 7}}
	successRateTiers = []scoreTier{{90, 15}, {85, 12}, {80, 10}}
	caseVolumeTiers  = []scoreTier{{500, 10}, {300, 5}}
)

// tierPoints returns the points of the first tier the value satisfies, else 0
func tierPoints(value float64, tiers []scoreTier) int {
	for _, t := range tiers {
		if value >= t.min {
			return t.points
		}
	}
	return 0
}

// containsFold reports whether s contains substr, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// hasPracticeArea reports whether any of the lawyer's practice areas
// contains the given area, ignoring case. Substring containment is
// deliberately loose; see the matching notes in DESIGN.md.
func hasPracticeArea(practiceAreas []string, area string) bool {
	for _, pa := range practiceAreas {
		if containsFold(pa, area) {
			return true
		}
	}
	return false
}

// ScoreLawyer computes the match score between a lawyer and a case defined by
// its matched sections, optional case type, and optional user location. It
// returns the score, a human-readable reason, and the practice areas that
// contributed. Pure: no I/O, no mutation of inputs, total over its inputs.
func ScoreLawyer(lawyer models.Lawyer, sections []models.LegalSection, caseType, userLocation string) (int, string, []string) {
	score := 0
	matchedAreas := make([]string, 0)
	seenAreas := make(map[string]bool)
	reasons := make([]string, 0)
	specialtyMatches := 0

	recordArea := func(area string) {
		if !seenAreas[area] {
			seenAreas[area] = true
			matchedAreas = append(matchedAreas, area)
		}
	}

	// Practice areas against sections (most important signal)
	for _, section := range sections {
		for _, area := range practiceAreaMapping[section.Code] {
			if !hasPracticeArea(lawyer.PracticeAreas, area) {
				continue
			}
			recordArea(area)
			specialtyMatches++

			if section.IsPrimary {
				score += pointsPrimarySection
			} else {
				score += pointsSecondarySection
			}
		}
	}

	// Depth of expertise: multiple specialty matches
	for _, t := range depthTiers {
		if specialtyMatches >= t.minMatches {
			score += t.points
			if t.reason != "" {
				reasons = append(reasons, t.reason)
			}
			break
		}
	}

	// Practice areas against the case type
	if caseType != "" {
		for _, area := range caseTypeMapping[strings.ToLower(caseType)] {
			if hasPracticeArea(lawyer.PracticeAreas, area) {
				recordArea(area)
				score += pointsCaseTypeMatch
			}
		}
	}

	// Location proximity: city first, state only as a fallback
	if userLocation != "" {
		switch {
		case lawyer.City != "" && (containsFold(lawyer.City, userLocation) || containsFold(userLocation, lawyer.City)):
			score += pointsSameCity
			reasons = append(reasons, "Local lawyer")
		case lawyer.State != "" && (containsFold(lawyer.State, userLocation) || containsFold(userLocation, lawyer.State)):
			score += pointsSameState
			reasons = append(reasons, "In your state")
		}
	}

	if lawyer.Verified {
		score += pointsVerified
	}

	// Experience tiers, highest first
	for _, t := range experienceTiers {
		if lawyer.YearsOfPractice >= t.minYears {
			score += t.points
			if t.withReason {
				reasons = append(reasons, fmt.Sprintf("%d+ years experience", lawyer.YearsOfPractice))
			}
			break
		}
	}

	if lawyer.Rating != nil {
		score += tierPoints(*lawyer.Rating, ratingTiers)
	}
	if lawyer.SuccessRate != nil {
		score += tierPoints(*lawyer.SuccessRate, successRateTiers)
	}
	if lawyer.TotalCases != nil {
		score += tierPoints(float64(*lawyer.TotalCases), caseVolumeTiers)
	}

	// Assemble the reason string
	if len(matchedAreas) > 0 {
		topAreas := matchedAreas
		if len(topAreas) > 3 {
			topAreas = topAreas[:3]
		}
		reasons = append([]string{"Specializes in " + strings.Join(topAreas, ", ")}, reasons...)
	}
	if lawyer.Verified {
		reasons = append(reasons, "Verified")
	}

	reason := "General practice lawyer"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, " • ")
	}

	return score, reason, matchedAreas
}

// maxRealisticScore is a heuristic ceiling for percentage display: roughly one
// primary section match plus a case type match plus every bonus.
const maxRealisticScore = 150

// MatchPercentage converts a raw match score to a 0-100 display percentage
func MatchPercentage(score int) int {
	pct := int(math.Round(float64(score) / maxRealisticScore * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// PracticeAreaSuggestions returns the practice areas relevant to the given
// sections, deduplicated in first-seen order
func PracticeAreaSuggestions(sections []models.LegalSection) []string {
	areas := make([]string, 0)
	seen := make(map[string]bool)

	for _, section := range sections {
		for _, area := range practiceAreaMapping[section.Code] {
			if !seen[area] {
				seen[area] = true
				areas = append(areas, area)
			}
		}
	}

	return areas
}
