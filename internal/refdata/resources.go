package refdata

import "github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"

var hotlines = []domain.Hotline{
	{
		Name:      "National Suicide Prevention Lifeline",
		Contact:   "988",
		Country:   "USA",
		Available: "24/7",
	},
	{
		Name:      "Crisis Text Line",
		Contact:   "Text HOME to 741741",
		Country:   "USA",
		Available: "24/7",
	},
	{
		Name:      "iCall",
		Contact:   "9152987821",
		Country:   "India",
		Available: "24/7",
	},
}

var therapy = domain.Therapy{
	Types: []string{
		"Cognitive Behavioral Therapy (CBT)",
		"Dialectical Behavior Therapy (DBT)",
		"Psychodynamic Therapy",
		"Acceptance and Commitment Therapy (ACT)",
	},
	DeliveryMethods: []string{
		"In-person",
		"Telehealth",
		"Group therapy",
		"Individual therapy",
	},
}

var supportGroups = []string{
	"Alcoholics Anonymous (AA)",
	"Narcotics Anonymous (NA)",
	"Depression and Bipolar Support Alliance (DBSA)",
	"NAMI Support Groups",
	"Grief Support Groups",
	"Anxiety Support Groups",
}

var apps = []domain.App{
	{Name: "Headspace", Kind: "Meditation & mindfulness"},
	{Name: "Calm", Kind: "Meditation & sleep"},
	{Name: "Talkspace", Kind: "Online therapy"},
	{Name: "BetterHelp", Kind: "Online counseling"},
	{Name: "Insight Timer", Kind: "Free meditation"},
}

// ResourcesForLevel assembles the resource bundle for a crisis level and the
// identified needs. Hotlines for high/emergency, therapy for medium/high,
// support groups and apps for low; need categories add their sections on top.
func ResourcesForLevel(level domain.CrisisLevel, needs []domain.NeedCategory) domain.ResourceBundle {
	var bundle domain.ResourceBundle

	switch level {
	case domain.LevelEmergency:
		bundle.Immediate = true
		bundle.Hotlines = hotlines
	case domain.LevelHigh:
		bundle.Hotlines = hotlines
		t := therapy
		bundle.Therapy = &t
	case domain.LevelMedium:
		t := therapy
		bundle.Therapy = &t
		bundle.SupportGroups = supportGroups
	default:
		bundle.Apps = apps
		bundle.SupportGroups = supportGroups
	}

	for _, need := range needs {
		switch need {
		case domain.NeedPeerSupport:
			bundle.SupportGroups = supportGroups
		case domain.NeedTherapy:
			if bundle.Therapy == nil {
				t := therapy
				bundle.Therapy = &t
			}
		}
	}

	return bundle
}
