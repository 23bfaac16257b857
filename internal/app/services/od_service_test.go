package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

// fakeInternshipStore is an in-memory InternshipStore
type fakeInternshipStore struct {
	internships map[int64]*models.Internship
}

func (f *fakeInternshipStore) Create(ctx context.Context, in *models.Internship) (int64, error) {
	id := int64(len(f.internships) + 1)
	in.ID = id
	f.internships[id] = in
	return id, nil
}

func (f *fakeInternshipStore) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	in, ok := f.internships[id]
	if !ok {
		return nil, apperrors.ErrInternshipNotFound
	}
	cp := *in
	return &cp, nil
}

func (f *fakeInternshipStore) GetAll(ctx context.Context, studentID *int64, status *string, page, pageSize int) ([]models.Internship, int64, error) {
	return nil, 0, nil
}

func (f *fakeInternshipStore) UpdateStatus(ctx context.Context, id int64, status models.InternshipStatus) error {
	in, ok := f.internships[id]
	if !ok {
		return apperrors.ErrInternshipNotFound
	}
	in.Status = status
	return nil
}

func (f *fakeInternshipStore) SetCompletionCertificate(ctx context.Context, id int64, path string) error {
	return nil
}

func (f *fakeInternshipStore) GetStats(ctx context.Context) (*dto.InternshipStatsResponse, error) {
	return &dto.InternshipStatsResponse{}, nil
}

// fakeODStore is an in-memory ODStore with the same conditional-update
// contract as the pgx repository
type fakeODStore struct {
	ods    map[int64]*models.OD
	nextID int64
}

func newFakeODStore() *fakeODStore {
	return &fakeODStore{ods: map[int64]*models.OD{}}
}

func (f *fakeODStore) Create(ctx context.Context, od *models.OD) (int64, error) {
	f.nextID++
	cp := *od
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.ods[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeODStore) GetByID(ctx context.Context, id int64) (*models.OD, error) {
	od, ok := f.ods[id]
	if !ok {
		return nil, apperrors.ErrODNotFound
	}
	cp := *od
	return &cp, nil
}

func (f *fakeODStore) ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.OD, int64, error) {
	var out []models.OD
	for _, od := range f.ods {
		if od.StudentID == studentID {
			out = append(out, *od)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeODStore) ListVisibleToFaculty(ctx context.Context, roles []approval.Role, page, pageSize int) ([]models.OD, int64, error) {
	var out []models.OD
	for _, od := range f.ods {
		if approval.VisibleTo(&od.Flow, roles) {
			out = append(out, *od)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeODStore) UpdateFlow(ctx context.Context, id int64, expectedStep approval.Step, flow approval.Flow, newStep approval.Step) (bool, error) {
	od, ok := f.ods[id]
	if !ok {
		return false, nil
	}
	if od.CurrentStep != expectedStep {
		return false, nil
	}
	od.Flow = flow
	od.CurrentStep = newStep
	return true, nil
}

func (f *fakeODStore) GetStats(ctx context.Context) (*dto.ODStatsResponse, error) {
	return &dto.ODStatsResponse{}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func facultyWith(id int64, roles ...approval.Role) *models.User {
	return &models.User{ID: id, Role: models.RoleFaculty, FacultyRoles: roles}
}

func newTestEnv() (*fakeODStore, *fakeInternshipStore, ODService, *models.User) {
	odStore := newFakeODStore()
	internshipStore := &fakeInternshipStore{internships: map[int64]*models.Internship{
		1: {
			ID:             1,
			StudentID:      10,
			StartDate:      date(2024, 1, 1),
			CompletionDate: date(2024, 3, 1),
			Status:         models.InternshipApproved,
		},
	}}
	svc := NewODService(odStore, internshipStore)
	student := &models.User{ID: 10, Role: models.RoleStudent}
	return odStore, internshipStore, svc, student
}

func mustCreateOD(t *testing.T, svc ODService, student *models.User) *models.OD {
	t.Helper()
	od, err := svc.CreateOD(context.Background(), student, &dto.CreateODRequest{
		InternshipID: 1,
		StartDate:    "2024-01-10",
		EndDate:      "2024-01-15",
		Purpose:      "attending project review at the company site",
	})
	if err != nil {
		t.Fatalf("unexpected error creating OD: %v", err)
	}
	return od
}

func TestCreateODStartsAtClassAdvisor(t *testing.T) {
	_, _, svc, student := newTestEnv()

	od := mustCreateOD(t, svc, student)
	if od.CurrentStep != approval.StepClassAdvisor {
		t.Fatalf("expected initial step class_advisor, got %s", od.CurrentStep)
	}
	if od.Flow.ClassAdvisor != nil {
		t.Fatalf("expected all slots unset on creation")
	}
}

func TestCreateODGate(t *testing.T) {
	_, internshipStore, svc, student := newTestEnv()
	internshipStore.internships[2] = &models.Internship{
		ID: 2, StudentID: 99,
		StartDate: date(2024, 1, 1), CompletionDate: date(2024, 3, 1),
		Status: models.InternshipApproved,
	}
	internshipStore.internships[3] = &models.Internship{
		ID: 3, StudentID: 10,
		StartDate: date(2024, 1, 1), CompletionDate: date(2024, 3, 1),
		Status: models.InternshipPending,
	}

	cases := []struct {
		name    string
		req     dto.CreateODRequest
		wantErr error
	}{
		{
			"internship owned by someone else",
			dto.CreateODRequest{InternshipID: 2, StartDate: "2024-01-10", EndDate: "2024-01-15", Purpose: "site visit for review"},
			apperrors.ErrNotOwner,
		},
		{
			"internship not yet approved",
			dto.CreateODRequest{InternshipID: 3, StartDate: "2024-01-10", EndDate: "2024-01-15", Purpose: "site visit for review"},
			apperrors.ErrInternshipNotApproved,
		},
		{
			"interval before internship window",
			dto.CreateODRequest{InternshipID: 1, StartDate: "2023-12-20", EndDate: "2024-01-05", Purpose: "site visit for review"},
			apperrors.ErrDateOutOfRange,
		},
		{
			"interval past internship window",
			dto.CreateODRequest{InternshipID: 1, StartDate: "2024-02-25", EndDate: "2024-03-05", Purpose: "site visit for review"},
			apperrors.ErrDateOutOfRange,
		},
		{
			"unknown internship",
			dto.CreateODRequest{InternshipID: 42, StartDate: "2024-01-10", EndDate: "2024-01-15", Purpose: "site visit for review"},
			apperrors.ErrInternshipNotFound,
		},
	}

	for _, tc := range cases {
		if _, err := svc.CreateOD(context.Background(), student, &tc.req); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	// reversed interval is a plain validation failure
	_, err := svc.CreateOD(context.Background(), student, &dto.CreateODRequest{
		InternshipID: 1, StartDate: "2024-01-15", EndDate: "2024-01-10", Purpose: "site visit for review",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure for reversed interval, got %v", err)
	}
}

func TestDecideFullChain(t *testing.T) {
	_, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	steps := []struct {
		caller *models.User
		next   approval.Step
	}{
		{facultyWith(21, approval.RoleClassAdvisor), approval.StepMentor},
		{facultyWith(22, approval.RoleMentor), approval.StepHOD},
		{facultyWith(23, approval.RoleHOD), approval.StepCoordinator},
		{facultyWith(24, approval.RoleCoordinator), approval.StepCompleted},
	}

	for _, s := range steps {
		updated, err := svc.Decide(ctx, s.caller, od.ID, true)
		if err != nil {
			t.Fatalf("unexpected error at %s: %v", s.next, err)
		}
		if updated.CurrentStep != s.next {
			t.Fatalf("expected step %s, got %s", s.next, updated.CurrentStep)
		}
	}

	// a fifth decision replays an already-decided slot
	if _, err := svc.Decide(ctx, facultyWith(23, approval.RoleHOD), od.ID, true); !errors.Is(err, apperrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on fifth decision, got %v", err)
	}
}

func TestDecideRejectionHaltsChain(t *testing.T) {
	odStore, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	if _, err := svc.Decide(ctx, facultyWith(21, approval.RoleClassAdvisor), od.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := svc.Decide(ctx, facultyWith(22, approval.RoleMentor), od.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentStep != approval.StepRejected {
		t.Fatalf("expected rejected, got %s", updated.CurrentStep)
	}

	// hod never got a turn, so this is out of order rather than a replay
	if _, err := svc.Decide(ctx, facultyWith(23, approval.RoleHOD), od.ID, true); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn after rejection, got %v", err)
	}

	stored, _ := odStore.GetByID(ctx, od.ID)
	if stored.Flow.HOD != nil || stored.Flow.Coordinator != nil {
		t.Fatalf("expected later slots to remain unset after rejection")
	}
}

func TestDecidePreconditions(t *testing.T) {
	_, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	// chain role acting before its turn
	if _, err := svc.Decide(ctx, facultyWith(22, approval.RoleMentor), od.ID, true); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn for mentor acting first, got %v", err)
	}

	// faculty without chain capabilities
	if _, err := svc.Decide(ctx, facultyWith(30), od.ID, true); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for faculty without roles, got %v", err)
	}

	// students never decide
	if _, err := svc.Decide(ctx, student, od.ID, true); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for student, got %v", err)
	}
}

func TestDecideConcurrentConflict(t *testing.T) {
	odStore, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	// another decision lands between our read and write: move the stored
	// record past class_advisor while the service has the stale view
	stale, _ := odStore.GetByID(ctx, od.ID)
	flow, step, err := approval.Decide(stale.Flow, approval.RoleClassAdvisor, false, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// caller read the OD before the concurrent write; the conditional update
	// must refuse the second write
	advisor := facultyWith(21, approval.RoleClassAdvisor)
	if ok, _ := odStore.UpdateFlow(ctx, od.ID, approval.StepClassAdvisor, flow, step); !ok {
		t.Fatalf("setup write failed")
	}
	if _, err := svc.Decide(ctx, advisor, od.ID, true); !errors.Is(err, apperrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized after concurrent rejection, got %v", err)
	}
}

func TestListODsVisibility(t *testing.T) {
	_, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	advisor := facultyWith(21, approval.RoleClassAdvisor)
	mentor := facultyWith(22, approval.RoleMentor)

	// fresh OD: advisor's turn, mentor's queue still empty
	ods, _, err := svc.ListODs(ctx, advisor, 1, 10)
	if err != nil || len(ods) != 1 {
		t.Fatalf("expected advisor to see 1 OD, got %d (err %v)", len(ods), err)
	}
	ods, _, _ = svc.ListODs(ctx, mentor, 1, 10)
	if len(ods) != 0 {
		t.Fatalf("expected mentor to see nothing before its turn, got %d", len(ods))
	}

	// after the advisor approves, both see it: mentor as current, advisor as history
	if _, err := svc.Decide(ctx, advisor, od.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ods, _, _ = svc.ListODs(ctx, mentor, 1, 10)
	if len(ods) != 1 {
		t.Fatalf("expected mentor to see 1 OD at its turn, got %d", len(ods))
	}
	ods, _, _ = svc.ListODs(ctx, advisor, 1, 10)
	if len(ods) != 1 {
		t.Fatalf("expected advisor to keep history, got %d", len(ods))
	}

	// students see their own requests only
	ods, _, _ = svc.ListODs(ctx, student, 1, 10)
	if len(ods) != 1 {
		t.Fatalf("expected student to see own OD, got %d", len(ods))
	}
	other := &models.User{ID: 77, Role: models.RoleStudent}
	ods, _, _ = svc.ListODs(ctx, other, 1, 10)
	if len(ods) != 0 {
		t.Fatalf("expected other student to see nothing, got %d", len(ods))
	}

	// faculty without chain capabilities has an empty queue
	ods, _, _ = svc.ListODs(ctx, facultyWith(30), 1, 10)
	if len(ods) != 0 {
		t.Fatalf("expected faculty without roles to see nothing, got %d", len(ods))
	}
}

func TestGetODByIDOwnership(t *testing.T) {
	_, _, svc, student := newTestEnv()
	od := mustCreateOD(t, svc, student)
	ctx := context.Background()

	if _, err := svc.GetODByID(ctx, student, od.ID); err != nil {
		t.Fatalf("owner should read own OD: %v", err)
	}
	other := &models.User{ID: 77, Role: models.RoleStudent}
	if _, err := svc.GetODByID(ctx, other, od.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for other student, got %v", err)
	}
	if _, err := svc.GetODByID(ctx, facultyWith(21, approval.RoleClassAdvisor), od.ID); err != nil {
		t.Fatalf("faculty should read OD: %v", err)
	}
}
