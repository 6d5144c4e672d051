package memory_test

import (
	"testing"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/memory"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

func TestCreateSessionIdempotent(t *testing.T) {
	store := memory.NewSessionStore()

	if _, err := store.CreateSession("user-1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.AppendMessage("user-1", domain.RoleUser, "first message"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	// Creating again must not clear previously appended messages.
	if _, err := store.CreateSession("user-1"); err != nil {
		t.Fatalf("second CreateSession failed: %v", err)
	}

	msgs, err := store.GetRecentMessages("user-1", 10)
	if err != nil {
		t.Fatalf("GetRecentMessages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message after re-create, got %d", len(msgs))
	}
	if msgs[0].Text != "first message" {
		t.Fatalf("unexpected message text: %q", msgs[0].Text)
	}
}

func TestLazyCreationOnFirstUse(t *testing.T) {
	store := memory.NewSessionStore()

	// No explicit creation: every operation works on an unknown id.
	if err := store.AppendMessage("fresh", domain.RoleUser, "hello"); err != nil {
		t.Fatalf("AppendMessage on unknown id failed: %v", err)
	}
	if err := store.SetCrisisLevel("fresh", domain.LevelMedium); err != nil {
		t.Fatalf("SetCrisisLevel on unknown id failed: %v", err)
	}

	sctx, err := store.GetContext("fresh")
	if err != nil {
		t.Fatalf("GetContext failed: %v", err)
	}
	if sctx.CrisisLevel != domain.LevelMedium {
		t.Fatalf("expected level medium, got %s", sctx.CrisisLevel)
	}

	// Readers on a brand new id return empty values, not errors.
	msgs, err := store.GetRecentMessages("never-seen", 5)
	if err != nil {
		t.Fatalf("GetRecentMessages on unknown id failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
	plan, err := store.GetRecoveryPlan("never-seen-either")
	if err != nil {
		t.Fatalf("GetRecoveryPlan on unknown id failed: %v", err)
	}
	if plan != nil {
		t.Fatalf("expected nil plan for fresh session")
	}
}

func TestGetRecentMessagesOrderAndLimit(t *testing.T) {
	store := memory.NewSessionStore()

	texts := []string{"one", "two", "three", "four"}
	for _, text := range texts {
		if err := store.AppendMessage("s", domain.RoleUser, text); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	msgs, err := store.GetRecentMessages("s", 2)
	if err != nil {
		t.Fatalf("GetRecentMessages failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "three" || msgs[1].Text != "four" {
		t.Fatalf("expected chronological tail [three four], got [%s %s]", msgs[0].Text, msgs[1].Text)
	}
}

func TestAttachRecoveryPlanReplaces(t *testing.T) {
	store := memory.NewSessionStore()

	first := &domain.RecoveryPlan{Body: "old plan"}
	second := &domain.RecoveryPlan{Body: "new plan"}

	if err := store.AttachRecoveryPlan("s", first); err != nil {
		t.Fatalf("AttachRecoveryPlan failed: %v", err)
	}
	if err := store.AttachRecoveryPlan("s", second); err != nil {
		t.Fatalf("second AttachRecoveryPlan failed: %v", err)
	}

	plan, err := store.GetRecoveryPlan("s")
	if err != nil {
		t.Fatalf("GetRecoveryPlan failed: %v", err)
	}
	if plan == nil || plan.Body != "new plan" {
		t.Fatalf("expected current plan to be the replacement")
	}
}

func TestMarkInterventionUsedDeduplicates(t *testing.T) {
	store := memory.NewSessionStore()

	for i := 0; i < 3; i++ {
		if err := store.MarkInterventionUsed("s", "deescalation"); err != nil {
			t.Fatalf("MarkInterventionUsed failed: %v", err)
		}
	}

	sctx, err := store.GetContext("s")
	if err != nil {
		t.Fatalf("GetContext failed: %v", err)
	}
	if len(sctx.InterventionsUsed) != 1 {
		t.Fatalf("expected 1 intervention, got %d", len(sctx.InterventionsUsed))
	}
}

func TestAppendEmergencyFlagMarksFollowup(t *testing.T) {
	store := memory.NewSessionStore()

	if err := store.AppendEmergencyFlag("s", domain.EmergencyFlag{Message: "trigger"}); err != nil {
		t.Fatalf("AppendEmergencyFlag failed: %v", err)
	}

	sess, err := store.GetSession("s")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(sess.EmergencyFlags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(sess.EmergencyFlags))
	}
	if !sess.FollowupNeeded {
		t.Fatalf("expected follow-up needed after emergency flag")
	}
}
