package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvindh/interntrack/internal/app/approval"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	"github.com/arvindh/interntrack/internal/pkg/dberrors"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
)

// ODRepository handles database operations for OD requests
type ODRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewODRepository creates a new ODRepository
func NewODRepository(db *pgxpool.Pool) *ODRepository {
	return &ODRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var odColumns = []string{
	"id", "student_id", "internship_id", "start_date", "end_date", "purpose",
	"approval_flow", "current_step", "created_at", "updated_at",
}

func scanOD(row pgx.Row, extra ...interface{}) (*models.OD, error) {
	var od models.OD
	dest := []interface{}{
		&od.ID, &od.StudentID, &od.InternshipID, &od.StartDate, &od.EndDate, &od.Purpose,
		&od.Flow, &od.CurrentStep, &od.CreatedAt, &od.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &od, nil
}

// Create inserts a new OD request at the start of the approval chain
func (r *ODRepository) Create(ctx context.Context, od *models.OD) (int64, error) {
	sql, args, err := r.sb.Insert("ods").
		Columns("student_id", "internship_id", "start_date", "end_date", "purpose", "approval_flow", "current_step").
		Values(od.StudentID, od.InternshipID, od.StartDate, od.EndDate, od.Purpose, od.Flow, od.CurrentStep).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		// internship may have been deleted between the gate check and the insert
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrInternshipNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// GetByID retrieves an OD request by ID
func (r *ODRepository) GetByID(ctx context.Context, id int64) (*models.OD, error) {
	sql, args, err := r.sb.Select(odColumns...).
		From("ods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	od, err := scanOD(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrODNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return od, nil
}

// ListByStudent retrieves a student's OD requests, newest first
func (r *ODRepository) ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.OD, int64, error) {
	query := r.sb.Select(odColumns...).
		Column("COUNT(*) OVER()").
		From("ods").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC")

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return r.list(ctx, query.Limit(uint64(limit)).Offset(offset))
}

// ListVisibleToFaculty retrieves the OD queue for a faculty capability set:
// every OD whose current step matches one of the held roles, plus every OD
// whose slot for the earliest held role has already been decided (history).
// Slots fill strictly front to back, so the second condition also covers
// chain states past the caller's position.
func (r *ODRepository) ListVisibleToFaculty(ctx context.Context, roles []approval.Role, page, pageSize int) ([]models.OD, int64, error) {
	steps := make([]string, 0, len(roles))
	for _, role := range roles {
		if role.IsValid() {
			steps = append(steps, string(role))
		}
	}
	earliest := approval.EarliestRole(roles)
	if len(steps) == 0 || earliest == "" {
		return nil, 0, nil
	}

	query := r.sb.Select(odColumns...).
		Column("COUNT(*) OVER()").
		From("ods").
		Where(squirrel.Or{
			squirrel.Expr("current_step = ANY(?)", steps),
			squirrel.Expr("jsonb_exists(approval_flow, ?)", earliest.SlotKey()),
		}).
		OrderBy("created_at DESC")

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return r.list(ctx, query.Limit(uint64(limit)).Offset(offset))
}

func (r *ODRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.OD, int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var ods []models.OD
	var total int64
	for rows.Next() {
		od, err := scanOD(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		ods = append(ods, *od)
	}

	return ods, total, nil
}

// UpdateFlow persists a decision with a conditional update: the row is only
// written if its current step still matches what the decision was computed
// against. Zero rows affected means a concurrent decision won; the caller
// re-reads and reports the conflict.
func (r *ODRepository) UpdateFlow(ctx context.Context, id int64, expectedStep approval.Step, flow approval.Flow, newStep approval.Step) (bool, error) {
	sql, args, err := r.sb.Update("ods").
		Set("approval_flow", flow).
		Set("current_step", newStep).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "current_step": expectedStep}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetStats aggregates OD requests for the faculty dashboard
func (r *ODRepository) GetStats(ctx context.Context) (*dto.ODStatsResponse, error) {
	stats := &dto.ODStatsResponse{ByStep: map[string]int64{}}

	summarySQL := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE current_step = 'completed'),
		       COUNT(*) FILTER (WHERE current_step NOT IN ('completed', 'rejected')),
		       COUNT(*) FILTER (WHERE current_step = 'rejected'),
		       COALESCE(AVG(end_date - start_date + 1), 0)
		FROM ods`
	err := r.db.QueryRow(ctx, summarySQL).Scan(
		&stats.TotalODs,
		&stats.CompletedODs,
		&stats.PendingODs,
		&stats.RejectedODs,
		&stats.AverageDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating ODs: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT current_step, COUNT(*) FROM ods GROUP BY current_step`)
	if err != nil {
		return nil, fmt.Errorf("error aggregating OD steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step string
		var count int64
		if err := rows.Scan(&step, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stats.ByStep[step] = count
	}

	return stats, nil
}
