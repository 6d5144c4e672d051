package refdata

import "github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"

// CopingStrategy is one technique the de-escalation stage can recommend.
type CopingStrategy struct {
	Key         string
	Name        string
	Description string
	Steps       []string
}

var copingStrategies = map[string]CopingStrategy{
	"grounding": {
		Key:         "grounding",
		Name:        "Grounding Techniques (5-4-3-2-1 Method)",
		Description: "Engage your senses to bring yourself to the present moment",
		Steps: []string{
			"Notice 5 things you can see",
			"Notice 4 things you can touch",
			"Notice 3 things you can hear",
			"Notice 2 things you can smell",
			"Notice 1 thing you can taste",
		},
	},
	"breathing": {
		Key:         "breathing",
		Name:        "Box Breathing Technique",
		Description: "Calm your nervous system with controlled breathing",
		Steps: []string{
			"Inhale for 4 counts",
			"Hold for 4 counts",
			"Exhale for 4 counts",
			"Hold for 4 counts",
			"Repeat 5-10 times",
		},
	},
	"muscle_relaxation": {
		Key:         "muscle_relaxation",
		Name:        "Progressive Muscle Relaxation",
		Description: "Reduce physical tension through systematic muscle relaxation",
		Steps: []string{
			"Tense your toes for 5 seconds, then release",
			"Tense your legs for 5 seconds, then release",
			"Tense your abdomen for 5 seconds, then release",
			"Tense your chest for 5 seconds, then release",
			"Continue up through arms, shoulders, and face",
		},
	},
	"positive_affirmations": {
		Key:         "positive_affirmations",
		Name:        "Positive Affirmations",
		Description: "Build resilience through positive self-talk",
		Steps: []string{
			"This feeling is temporary and will pass",
			"I have survived difficult moments before",
			"I am stronger than I think",
			"I deserve support and compassion",
			"I am taking positive steps toward healing",
		},
	},
	"distraction": {
		Key:         "distraction",
		Name:        "Healthy Distraction Techniques",
		Description: "Redirect attention to safe, engaging activities",
		Steps: []string{
			"Listen to calming music or nature sounds",
			"Watch a favorite movie or show",
			"Read a book or article",
			"Go for a walk in nature",
			"Practice a hobby or creative activity",
		},
	},
}

// StrategiesForLevel returns the three techniques recommended for a crisis
// level. High and emergency share the medium set.
func StrategiesForLevel(level domain.CrisisLevel) []CopingStrategy {
	var keys []string
	switch level {
	case domain.LevelLow:
		keys = []string{"breathing", "distraction", "positive_affirmations"}
	default:
		keys = []string{"grounding", "breathing", "muscle_relaxation"}
	}

	strategies := make([]CopingStrategy, 0, len(keys))
	for _, k := range keys {
		strategies = append(strategies, copingStrategies[k])
	}
	return strategies
}
