package refdata

import "github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"

// EmergencyResponse is the static safety script sent when an emergency is
// detected. It is never model-generated.
const EmergencyResponse = `I hear that you're going through something very serious right now. Your safety is the top priority.

PLEASE REACH OUT FOR IMMEDIATE HELP:

CALL OR TEXT 988 (Suicide & Crisis Lifeline)
   Available 24/7 - Free and confidential
   Crisis Counselors available right now

CALL 911
   If you're in immediate danger
   Operator will send help to your location

GO TO NEAREST EMERGENCY ROOM
   Tell staff you're having a mental health crisis
   They will provide immediate care

YOU ARE NOT ALONE. Help is available RIGHT NOW.
Your life has value. This is temporary. Help works.

If you reach out to one of these services:
- They understand what you're experiencing
- They are trained to help
- They have resources that can help immediately
- It's confidential and free

Please take action now. You deserve support.`

// FallbackEmergencyMessage is returned when safety routing itself fails.
// Failure defaults to the most escalated outcome.
const FallbackEmergencyMessage = "When in doubt, reach out to emergency services. Call or text 988, or call 911 if you are in immediate danger."

// ImmediateActions is the fixed checklist attached to every emergency routing.
func ImmediateActions() []string {
	return []string{
		"CALL 988 or 911 immediately",
		"Tell someone you trust right now",
		"Go to nearest emergency room if safe to do so",
		"Remove access to means of self-harm",
	}
}

var actionsByLevel = map[domain.CrisisLevel][]string{
	domain.LevelLow: {
		"Engage in coping strategies",
		"Practice self-care activities",
		"Reach out to trusted friend or family",
		"Schedule therapy if needed",
	},
	domain.LevelMedium: {
		"Contact mental health professional",
		"Reach out to support network",
		"Use crisis resources",
		"Develop safety plan",
	},
	domain.LevelHigh: {
		"CONTACT 988 OR CRISIS HOTLINE",
		"Reach out to mental health professional immediately",
		"Tell someone you trust about your feelings",
		"Consider emergency services if thoughts worsen",
	},
}

// ActionsForLevel returns the recommended action checklist for a level,
// defaulting to the low set for anything unlisted.
func ActionsForLevel(level domain.CrisisLevel) []string {
	if actions, ok := actionsByLevel[level]; ok {
		return actions
	}
	return actionsByLevel[domain.LevelLow]
}

// DeescalationFallback is the static de-escalation script used when the model
// call fails, selected solely by whether the level is escalated.
func DeescalationFallback(level domain.CrisisLevel) string {
	if level.Escalated() {
		return `I understand you're in crisis. Please reach out immediately:
- Call 988 (Suicide & Crisis Lifeline) in the US
- Call 911 if you're in immediate danger
- Go to your nearest emergency room
Your life matters. Help is available right now.`
	}
	return `I'm here to help you through this. Let's try a simple breathing exercise:
1. Breathe in slowly for 4 counts
2. Hold for 4 counts
3. Exhale for 4 counts
4. Hold for 4 counts
Repeat this 5-10 times. You're doing well by reaching out.`
}

// ResourceFallback is the static resource script used when the model call
// fails, selected by severity.
func ResourceFallback(level domain.CrisisLevel) string {
	if level.Escalated() {
		return `Immediate resources available:

National Suicide Prevention Lifeline: 988 (call or text)
Crisis Text Line: Text HOME to 741741

If you're in immediate danger:
- Call 911 (emergency)
- Go to nearest emergency room
- Tell someone you trust right now`
	}
	return `Resources for ongoing support:

Therapy and Counseling:
- BetterHelp: Online counseling platform
- Talkspace: Therapy via app
- SAMHSA National Helpline: 1-800-662-4357 (free, confidential)

Support Groups:
- NAMI: https://www.nami.org/support-groups
- DBSA: https://www.dbsalliance.org/

Mindfulness and Wellness:
- Headspace or Calm for meditation
- Insight Timer for free meditation
- Your local community mental health center`
}

// RecoveryPlanFallback is the static plan body used when the model call fails.
const RecoveryPlanFallback = `Basic Recovery Plan:

1. IMMEDIATE (Today):
- Reach out to someone you trust
- Practice one coping technique from your toolkit
- Ensure your safety

2. DAILY:
- Morning: Set one manageable goal
- Afternoon: Check in with your support system
- Evening: Practice self-care (sleep, hygiene)

3. WEEKLY:
- Attend therapy/counseling session
- Practice all coping strategies at least once
- Reflect on what's working

4. RESOURCES:
- National Suicide Prevention Lifeline: 988
- Crisis Text Line: Text HOME to 741741
- Emergency: 911 or go to nearest ER

Remember: Recovery isn't linear. Small steps matter. You deserve support.`
