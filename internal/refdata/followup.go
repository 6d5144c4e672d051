package refdata

import (
	"time"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

type followupOffset struct {
	Horizon domain.Horizon
	Days    int
}

// followupPlans holds the severity-keyed horizon/offset sets. Emergency is
// checked on at {0,1,3,7} days, high at {1,3,7}, everything else at {7,14}.
var followupPlans = map[domain.CrisisLevel][]followupOffset{
	domain.LevelEmergency: {
		{domain.HorizonImmediate, 0},
		{domain.HorizonShortTerm, 1},
		{domain.HorizonWeekOne, 3},
		{domain.HorizonWeekTwo, 7},
	},
	domain.LevelHigh: {
		{domain.HorizonShortTerm, 1},
		{domain.HorizonWeekOne, 3},
		{domain.HorizonWeekTwo, 7},
	},
}

var defaultFollowupPlan = []followupOffset{
	{domain.HorizonWeekOne, 7},
	{domain.HorizonMonth, 14},
}

// FollowupScheduleFor computes absolute check-in times for a crisis level by
// adding the severity-keyed day offsets to now.
func FollowupScheduleFor(level domain.CrisisLevel, now time.Time) domain.FollowupSchedule {
	offsets, ok := followupPlans[level]
	if !ok {
		offsets = defaultFollowupPlan
	}

	schedule := make(domain.FollowupSchedule, len(offsets))
	for _, o := range offsets {
		schedule[o.Horizon] = now.AddDate(0, 0, o.Days)
	}
	return schedule
}

// RecoveryPlanComponents is the static taxonomy attached to every plan.
func RecoveryPlanComponents() map[string]string {
	return map[string]string{
		"triggers":             "Identify personal warning signs and triggers",
		"coping_skills":        "Develop and practice healthy coping mechanisms",
		"support_system":       "Build and maintain support network",
		"professional_help":    "Schedule regular therapy/counseling",
		"lifestyle":            "Maintain healthy habits (sleep, exercise, nutrition)",
		"emergency_protocol":   "Clear plan for crisis situations",
		"medication_adherence": "Take medications as prescribed",
		"self_monitoring":      "Regular check-ins on mental health status",
	}
}
