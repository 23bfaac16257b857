package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new announcement and returns its ID
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("faculty_id", "content").
		Values(a.FacultyID, a.Content).
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

// GetByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select("id", "faculty_id", "content", "created_at").
		From("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var a models.Announcement
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.FacultyID, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &a, nil
}

// GetAll retrieves announcements with their authors, newest first
func (r *AnnouncementRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	sql, args, err := r.sb.Select("a.id", "a.faculty_id", "a.content", "a.created_at",
		"u.name", "u.email", "u.department").
		Column("COUNT(*) OVER()").
		From("announcements a").
		Join("users u ON u.id = a.faculty_id").
		OrderBy("a.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	var total int64
	for rows.Next() {
		var a models.Announcement
		var faculty models.User
		err := rows.Scan(&a.ID, &a.FacultyID, &a.Content, &a.CreatedAt,
			&faculty.Name, &faculty.Email, &faculty.Department, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		faculty.ID = a.FacultyID
		a.Faculty = &faculty
		announcements = append(announcements, a)
	}

	return announcements, total, nil
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
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
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
