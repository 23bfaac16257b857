package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

// InternshipRepository handles database operations for internships
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var internshipColumns = []string{
	"id", "student_id", "organisation_name", "organisation_address_website", "nature_of_work",
	"reporting_name", "reporting_designation", "reporting_email", "reporting_mobile",
	"start_date", "completion_date", "mode", "stipend", "stipend_amount", "remarks",
	"offer_letter", "completion_certificate", "status", "created_at", "updated_at",
}

func scanInternship(row pgx.Row, extra ...interface{}) (*models.Internship, error) {
	var in models.Internship
	dest := []interface{}{
		&in.ID, &in.StudentID, &in.OrganisationName, &in.OrganisationAddressWebsite, &in.NatureOfWork,
		&in.ReportingAuthority.Name, &in.ReportingAuthority.Designation, &in.ReportingAuthority.Email, &in.ReportingAuthority.Mobile,
		&in.StartDate, &in.CompletionDate, &in.Mode, &in.Stipend, &in.StipendAmount, &in.Remarks,
		&in.OfferLetter, &in.CompletionCertificate, &in.Status, &in.CreatedAt, &in.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &in, nil
}

// Create inserts a new internship and returns its ID
func (r *InternshipRepository) Create(ctx context.Context, in *models.Internship) (int64, error) {
	sql, args, err := r.sb.Insert("internships").
		Columns("student_id", "organisation_name", "organisation_address_website", "nature_of_work",
			"reporting_name", "reporting_designation", "reporting_email", "reporting_mobile",
			"start_date", "completion_date", "mode", "stipend", "stipend_amount", "remarks",
			"offer_letter", "status").
		Values(in.StudentID, in.OrganisationName, in.OrganisationAddressWebsite, in.NatureOfWork,
			in.ReportingAuthority.Name, in.ReportingAuthority.Designation, in.ReportingAuthority.Email, in.ReportingAuthority.Mobile,
			in.StartDate, in.CompletionDate, in.Mode, in.Stipend, in.StipendAmount, in.Remarks,
			in.OfferLetter, in.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// GetByID retrieves an internship by ID
func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	query := r.sb.Select(internshipColumns...).
		From("internships").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	in, err := scanInternship(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return in, nil
}

// GetAll retrieves internships with optional student/status filters, newest first
func (r *InternshipRepository) GetAll(ctx context.Context, studentID *int64, status *string, page, pageSize int) ([]models.Internship, int64, error) {
	query := r.sb.Select(internshipColumns...).
		Column("COUNT(*) OVER()").
		From("internships").
		OrderBy("created_at DESC")

	if studentID != nil {
		query = query.Where(squirrel.Eq{"student_id": *studentID})
	}
	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query = query.Limit(uint64(limit)).Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var internships []models.Internship
	var total int64
	for rows.Next() {
		in, err := scanInternship(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		internships = append(internships, *in)
	}

	return internships, total, nil
}

// UpdateStatus transitions an internship's review state
func (r *InternshipRepository) UpdateStatus(ctx context.Context, id int64, status models.InternshipStatus) error {
	sql, args, err := r.sb.Update("internships").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// SetCompletionCertificate attaches the certificate path to an internship
func (r *InternshipRepository) SetCompletionCertificate(ctx context.Context, id int64, path string) error {
	sql, args, err := r.sb.Update("internships").
		Set("completion_certificate", path).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// GetStats aggregates internship counts for the faculty dashboard
func (r *InternshipRepository) GetStats(ctx context.Context) (*dto.InternshipStatsResponse, error) {
	stats := &dto.InternshipStatsResponse{ByMode: map[string]int64{}}

	summarySQL := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'approved'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'rejected'),
		       COALESCE(AVG(stipend_amount) FILTER (WHERE stipend = 'Yes'), 0)
		FROM internships`
	err := r.db.QueryRow(ctx, summarySQL).Scan(
		&stats.TotalInternships,
		&stats.ApprovedInternships,
		&stats.PendingInternships,
		&stats.RejectedInternships,
		&stats.AverageStipend,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating internships: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT mode, COUNT(*) FROM internships GROUP BY mode`)
	if err != nil {
		return nil, fmt.Errorf("error aggregating internship modes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var count int64
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stats.ByMode[mode] = count
	}

	return stats, nil
}
