package refdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

func TestExtractNeeds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.NeedCategory
	}{
		{
			name: "therapist and support group",
			text: "I want to talk to a therapist in a support group",
			want: []domain.NeedCategory{domain.NeedTherapy, domain.NeedPeerSupport},
		},
		{
			name: "no keywords defaults to general support",
			text: "I had a rough day at work",
			want: []domain.NeedCategory{domain.NeedGeneralSupport},
		},
		{
			name: "medication",
			text: "I stopped taking my pills last week",
			want: []domain.NeedCategory{domain.NeedMedication},
		},
		{
			name: "case insensitive",
			text: "Is there an EMERGENCY number?",
			want: []domain.NeedCategory{domain.NeedCrisis},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNeeds(tt.text))
		})
	}
}

func TestKeywordDetector(t *testing.T) {
	d := NewKeywordDetector()

	tests := []struct {
		name    string
		message string
		level   domain.CrisisLevel
		want    bool
	}{
		{"explicit phrase at low level", "I want to kill myself", domain.LevelLow, true},
		{"explicit phrase mixed case", "I've been feeling SUICIDAL", domain.LevelMedium, true},
		{"planning cue at high level", "I have a plan for tonight", domain.LevelHigh, true},
		{"planning cue at emergency level", "I already decided", domain.LevelEmergency, true},
		{"planning cue at medium level is not enough", "I have a plan to see friends", domain.LevelMedium, false},
		{"high level without any cue", "everything feels heavy", domain.LevelHigh, false},
		{"benign message", "I feel a bit stressed about exams", domain.LevelLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.message, tt.level))
		})
	}
}

func TestFollowupScheduleFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("emergency", func(t *testing.T) {
		got := FollowupScheduleFor(domain.LevelEmergency, now)
		require.Len(t, got, 4)
		assert.Equal(t, now, got[domain.HorizonImmediate])
		assert.Equal(t, now.AddDate(0, 0, 1), got[domain.HorizonShortTerm])
		assert.Equal(t, now.AddDate(0, 0, 3), got[domain.HorizonWeekOne])
		assert.Equal(t, now.AddDate(0, 0, 7), got[domain.HorizonWeekTwo])
	})

	t.Run("high", func(t *testing.T) {
		got := FollowupScheduleFor(domain.LevelHigh, now)
		require.Len(t, got, 3)
		assert.Equal(t, now.AddDate(0, 0, 1), got[domain.HorizonShortTerm])
		assert.Equal(t, now.AddDate(0, 0, 3), got[domain.HorizonWeekOne])
		assert.Equal(t, now.AddDate(0, 0, 7), got[domain.HorizonWeekTwo])
	})

	t.Run("low", func(t *testing.T) {
		got := FollowupScheduleFor(domain.LevelLow, now)
		require.Len(t, got, 2)
		assert.Equal(t, now.AddDate(0, 0, 7), got[domain.HorizonWeekOne])
		assert.Equal(t, now.AddDate(0, 0, 14), got[domain.HorizonMonth])
	})

	t.Run("timestamps strictly increase for emergency", func(t *testing.T) {
		got := FollowupScheduleFor(domain.LevelEmergency, now)
		order := []domain.Horizon{
			domain.HorizonImmediate,
			domain.HorizonShortTerm,
			domain.HorizonWeekOne,
			domain.HorizonWeekTwo,
		}
		for i := 1; i < len(order); i++ {
			assert.True(t, got[order[i]].After(got[order[i-1]]))
		}
	})
}

func TestStrategiesForLevel(t *testing.T) {
	low := StrategiesForLevel(domain.LevelLow)
	require.Len(t, low, 3)
	assert.Equal(t, "breathing", low[0].Key)
	assert.Equal(t, "distraction", low[1].Key)
	assert.Equal(t, "positive_affirmations", low[2].Key)

	// High and medium share the same set.
	high := StrategiesForLevel(domain.LevelHigh)
	medium := StrategiesForLevel(domain.LevelMedium)
	assert.Equal(t, medium, high)
	assert.Equal(t, "grounding", high[0].Key)
}

func TestResourcesForLevel(t *testing.T) {
	t.Run("emergency gets hotlines immediately", func(t *testing.T) {
		got := ResourcesForLevel(domain.LevelEmergency, nil)
		assert.True(t, got.Immediate)
		assert.NotEmpty(t, got.Hotlines)
	})

	t.Run("high gets hotlines and therapy", func(t *testing.T) {
		got := ResourcesForLevel(domain.LevelHigh, nil)
		assert.NotEmpty(t, got.Hotlines)
		assert.NotNil(t, got.Therapy)
	})

	t.Run("low gets apps and support groups", func(t *testing.T) {
		got := ResourcesForLevel(domain.LevelLow, nil)
		assert.NotEmpty(t, got.Apps)
		assert.NotEmpty(t, got.SupportGroups)
		assert.Nil(t, got.Therapy)
	})

	t.Run("therapy need adds therapy section", func(t *testing.T) {
		got := ResourcesForLevel(domain.LevelLow, []domain.NeedCategory{domain.NeedTherapy})
		assert.NotNil(t, got.Therapy)
	})
}

func TestActionsForLevel(t *testing.T) {
	assert.NotEmpty(t, ActionsForLevel(domain.LevelHigh))
	// Unlisted levels fall back to the low checklist.
	assert.Equal(t, ActionsForLevel(domain.LevelLow), ActionsForLevel(domain.LevelUnknown))
}
