// Package refdata holds the static reference tables shared by all pipeline
// stages: coping strategies, the resource directory, follow-up schedules, and
// the emergency keyword lists. Everything here is loaded once and read-only.
package refdata

import (
	"strings"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

// emergencyIndicators are phrases that always trigger emergency routing,
// matched as case-insensitive substrings.
var emergencyIndicators = []string{
	"suicidal",
	"suicide",
	"kill myself",
	"take my life",
	"self-harm",
	"hurt myself",
	"cutting",
	"overdose",
	"poison",
	"noose",
	"gun",
	"going to die",
	"want to die",
	"don't want to live",
}

// planningCues are words that, combined with a high or emergency crisis
// level, indicate active planning and trigger emergency routing.
var planningCues = []string{
	"plan", "ready", "decided", "going to", "when", "where", "how",
}

// needKeywords maps each need category to the words that signal it.
var needKeywords = map[domain.NeedCategory][]string{
	domain.NeedTherapy:     {"therapist", "counseling", "talk"},
	domain.NeedMedication:  {"medication", "pills", "treatment"},
	domain.NeedPeerSupport: {"group", "others", "community", "support"},
	domain.NeedCrisis:      {"emergency", "danger", "harm", "suicidal"},
}

// needOrder keeps extraction output deterministic.
var needOrder = []domain.NeedCategory{
	domain.NeedTherapy,
	domain.NeedMedication,
	domain.NeedPeerSupport,
	domain.NeedCrisis,
}

// KeywordDetector implements domain.EmergencyDetector by substring matching
// against the fixed indicator and planning-cue lists. First match wins.
type KeywordDetector struct{}

func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{}
}

func (d *KeywordDetector) Detect(message string, level domain.CrisisLevel) bool {
	lower := strings.ToLower(message)

	for _, indicator := range emergencyIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	if level.Escalated() {
		for _, cue := range planningCues {
			if strings.Contains(lower, cue) {
				return true
			}
		}
	}

	return false
}

// ExtractNeeds scans the concatenated user text for need keywords and returns
// every matching category, or {general_support} when nothing matches.
func ExtractNeeds(userText string) []domain.NeedCategory {
	lower := strings.ToLower(userText)

	var needs []domain.NeedCategory
	for _, category := range needOrder {
		for _, keyword := range needKeywords[category] {
			if strings.Contains(lower, keyword) {
				needs = append(needs, category)
				break
			}
		}
	}

	if len(needs) == 0 {
		return []domain.NeedCategory{domain.NeedGeneralSupport}
	}
	return needs
}
