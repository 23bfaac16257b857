// Package approval implements the OD request approval chain: a fixed sequence
// of faculty roles that must each approve in order, with a single rejection
// halting the chain permanently.
package approval

import (
	"time"

	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

// Role is a faculty capability that grants the right to decide at the
// matching chain position.
type Role string

const (
	RoleClassAdvisor Role = "class_advisor"
	RoleMentor       Role = "mentor"
	RoleHOD          Role = "hod"
	RoleCoordinator  Role = "internship_coordinator"
)

// Chain is the fixed decision order. Position in this slice is the role's rank.
var Chain = []Role{RoleClassAdvisor, RoleMentor, RoleHOD, RoleCoordinator}

// rank maps each role to its chain position for before/after checks.
var rank = map[Role]int{
	RoleClassAdvisor: 0,
	RoleMentor:       1,
	RoleHOD:          2,
	RoleCoordinator:  3,
}

// Rank returns the chain position of the role, or -1 if the role is not part
// of the chain.
func (r Role) Rank() int {
	if i, ok := rank[r]; ok {
		return i
	}
	return -1
}

// IsValid reports whether the role is one of the four chain roles.
func (r Role) IsValid() bool {
	return r.Rank() >= 0
}

// slotKeys maps each role to its JSON key inside the serialized flow.
var slotKeys = map[Role]string{
	RoleClassAdvisor: "classAdvisor",
	RoleMentor:       "mentor",
	RoleHOD:          "hod",
	RoleCoordinator:  "internshipCoordinator",
}

// SlotKey returns the JSON key of the role's decision slot, or "" for roles
// outside the chain. Used by storage queries that filter on the flow column.
func (r Role) SlotKey() string {
	return slotKeys[r]
}

// Step is the derived position of an OD request in its lifecycle: one of the
// four pending roles, or a terminal state.
type Step string

const (
	StepClassAdvisor Step = Step(RoleClassAdvisor)
	StepMentor       Step = Step(RoleMentor)
	StepHOD          Step = Step(RoleHOD)
	StepCoordinator  Step = Step(RoleCoordinator)
	StepCompleted    Step = "completed"
	StepRejected     Step = "rejected"
)

// IsTerminal reports whether no further decisions are permitted.
func (s Step) IsTerminal() bool {
	return s == StepCompleted || s == StepRejected
}

// Decision records a single role's verdict.
type Decision struct {
	Approved  bool      `json:"approved"`
	Timestamp time.Time `json:"timestamp"`
}

// Flow holds the per-role decision slots. A nil slot means the role has not
// acted yet. Slots are only ever filled front to back.
type Flow struct {
	ClassAdvisor *Decision `json:"classAdvisor,omitempty"`
	Mentor       *Decision `json:"mentor,omitempty"`
	HOD          *Decision `json:"hod,omitempty"`
	Coordinator  *Decision `json:"internshipCoordinator,omitempty"`
}

// Get returns the decision slot for a role, or nil if unset or unknown.
func (f *Flow) Get(role Role) *Decision {
	switch role {
	case RoleClassAdvisor:
		return f.ClassAdvisor
	case RoleMentor:
		return f.Mentor
	case RoleHOD:
		return f.HOD
	case RoleCoordinator:
		return f.Coordinator
	}
	return nil
}

func (f *Flow) set(role Role, d *Decision) {
	switch role {
	case RoleClassAdvisor:
		f.ClassAdvisor = d
	case RoleMentor:
		f.Mentor = d
	case RoleHOD:
		f.HOD = d
	case RoleCoordinator:
		f.Coordinator = d
	}
}

// CurrentStep derives the chain position: the first unset slot in order, or a
// terminal state. A rejected slot always wins, because slots after a rejection
// are never filled.
func (f *Flow) CurrentStep() Step {
	for _, role := range Chain {
		d := f.Get(role)
		if d == nil {
			return Step(role)
		}
		if !d.Approved {
			return StepRejected
		}
	}
	return StepCompleted
}

// Decide applies a role's verdict to the flow and returns the updated flow
// with its new derived step. Each role acts exactly once: a role whose slot
// is already decided gets ErrAlreadyFinalized (covers every replay against a
// completed chain), any other role acting out of sequence gets ErrOutOfTurn.
//
// The caller's capability check (does this user hold the role) belongs to the
// authorization layer; Decide only enforces chain order and finality.
func Decide(f Flow, role Role, approved bool, now time.Time) (Flow, Step, error) {
	current := f.CurrentStep()
	if !role.IsValid() {
		return f, current, apperrors.ErrOutOfTurn
	}
	if f.Get(role) != nil {
		return f, current, apperrors.ErrAlreadyFinalized
	}
	if current.IsTerminal() || Step(role) != current {
		return f, current, apperrors.ErrOutOfTurn
	}

	f.set(role, &Decision{Approved: approved, Timestamp: now})
	return f, f.CurrentStep(), nil
}

// EarliestRole returns the lowest-ranked chain role held by the given
// capability set, or "" if none of them is part of the chain.
func EarliestRole(roles []Role) Role {
	best := -1
	var earliest Role
	for _, r := range roles {
		if i := r.Rank(); i >= 0 && (best == -1 || i < best) {
			best = i
			earliest = r
		}
	}
	return earliest
}

// VisibleTo reports whether an OD with the given flow should appear in the
// queue of a faculty user holding the given capability set. The OD is visible
// once it is the user's turn, or once the slot of the user's earliest-held
// role has been decided. Because slots fill strictly front to back, the second
// condition also covers every chain state past the user's position.
func VisibleTo(f *Flow, roles []Role) bool {
	current := f.CurrentStep()
	for _, r := range roles {
		if r.IsValid() && Step(r) == current {
			return true
		}
	}
	earliest := EarliestRole(roles)
	if earliest == "" {
		return false
	}
	return f.Get(earliest) != nil
}
