package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

var testTime = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

func TestNewFlowStartsAtClassAdvisor(t *testing.T) {
	var f Flow
	if got := f.CurrentStep(); got != StepClassAdvisor {
		t.Fatalf("expected initial step class_advisor, got %s", got)
	}
}

func TestDecideAdvancesInOrder(t *testing.T) {
	var f Flow
	steps := []struct {
		role Role
		next Step
	}{
		{RoleClassAdvisor, StepMentor},
		{RoleMentor, StepHOD},
		{RoleHOD, StepCoordinator},
		{RoleCoordinator, StepCompleted},
	}

	for _, s := range steps {
		var err error
		var next Step
		f, next, err = Decide(f, s.role, true, testTime)
		if err != nil {
			t.Fatalf("decide %s: unexpected error %v", s.role, err)
		}
		if next != s.next {
			t.Fatalf("decide %s: expected step %s, got %s", s.role, s.next, next)
		}
		d := f.Get(s.role)
		if d == nil || !d.Approved || !d.Timestamp.Equal(testTime) {
			t.Fatalf("decide %s: slot not recorded correctly: %+v", s.role, d)
		}
	}
}

func TestDecideOutOfTurn(t *testing.T) {
	var f Flow
	for _, role := range []Role{RoleMentor, RoleHOD, RoleCoordinator} {
		if _, _, err := Decide(f, role, true, testTime); !errors.Is(err, apperrors.ErrOutOfTurn) {
			t.Fatalf("expected ErrOutOfTurn for %s, got %v", role, err)
		}
	}
	// a decided step may not act again
	f, _, _ = Decide(f, RoleClassAdvisor, true, testTime)
	if _, _, err := Decide(f, RoleClassAdvisor, true, testTime); !errors.Is(err, apperrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on replay, got %v", err)
	}
	if _, _, err := Decide(f, "registrar", true, testTime); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn for role outside the chain, got %v", err)
	}
}

func TestRejectionHaltsChain(t *testing.T) {
	var f Flow
	f, _, _ = Decide(f, RoleClassAdvisor, true, testTime)
	f, step, err := Decide(f, RoleMentor, false, testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step != StepRejected {
		t.Fatalf("expected rejected, got %s", step)
	}
	if f.HOD != nil || f.Coordinator != nil {
		t.Fatalf("expected later slots to remain unset after rejection")
	}
	// later roles cannot act after rejection: their slot was never decided,
	// so it is out of turn rather than a replay
	if _, _, err := Decide(f, RoleHOD, true, testTime); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn after rejection, got %v", err)
	}
	// the role that already acted gets the replay error
	if _, _, err := Decide(f, RoleMentor, false, testTime); !errors.Is(err, apperrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on replay after rejection, got %v", err)
	}
}

func TestCompletedIsFinal(t *testing.T) {
	var f Flow
	for _, role := range Chain {
		f, _, _ = Decide(f, role, true, testTime)
	}
	if got := f.CurrentStep(); got != StepCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
	if _, _, err := Decide(f, RoleHOD, true, testTime); !errors.Is(err, apperrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on fifth decision, got %v", err)
	}
}

func TestStepDomain(t *testing.T) {
	// every reachable step stays within the closed step set
	valid := map[Step]bool{
		StepClassAdvisor: true, StepMentor: true, StepHOD: true,
		StepCoordinator: true, StepCompleted: true, StepRejected: true,
	}

	var f Flow
	if !valid[f.CurrentStep()] {
		t.Fatalf("initial step %s outside domain", f.CurrentStep())
	}
	for _, role := range Chain {
		f, _, _ = Decide(f, role, true, testTime)
		if !valid[f.CurrentStep()] {
			t.Fatalf("step %s outside domain", f.CurrentStep())
		}
	}
}

func TestEarliestRole(t *testing.T) {
	if got := EarliestRole([]Role{RoleHOD, RoleMentor}); got != RoleMentor {
		t.Fatalf("expected mentor, got %s", got)
	}
	if got := EarliestRole([]Role{"registrar"}); got != "" {
		t.Fatalf("expected no chain role, got %s", got)
	}
	if got := EarliestRole(nil); got != "" {
		t.Fatalf("expected no chain role for empty set, got %s", got)
	}
}

func TestVisibleTo(t *testing.T) {
	var fresh Flow

	afterAdvisor, _, _ := Decide(Flow{}, RoleClassAdvisor, true, testTime)
	rejectedAtMentor, _, _ := Decide(afterAdvisor, RoleMentor, false, testTime)

	cases := []struct {
		name   string
		flow   Flow
		roles  []Role
		expect bool
	}{
		{"advisor sees fresh OD", fresh, []Role{RoleClassAdvisor}, true},
		{"mentor does not see fresh OD", fresh, []Role{RoleMentor}, false},
		{"mentor sees OD at its turn", afterAdvisor, []Role{RoleMentor}, true},
		{"advisor keeps history after acting", afterAdvisor, []Role{RoleClassAdvisor}, true},
		{"hod does not see OD rejected before its turn", rejectedAtMentor, []Role{RoleHOD}, false},
		{"mentor keeps rejected OD in history", rejectedAtMentor, []Role{RoleMentor}, true},
		{"multi-role uses earliest position", afterAdvisor, []Role{RoleHOD, RoleClassAdvisor}, true},
		{"no chain roles sees nothing", afterAdvisor, []Role{}, false},
	}

	for _, tc := range cases {
		if got := VisibleTo(&tc.flow, tc.roles); got != tc.expect {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expect, got)
		}
	}
}
