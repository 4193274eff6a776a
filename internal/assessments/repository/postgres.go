package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recruitbase/assessment-api/internal/assessments/domain"
)

// AssessmentRepository provides persistence operations for assessments
// on top of postgres. It owns id generation (serial column) and all I/O;
// callers see only domain values and domain.ErrNotFound.
type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const assessmentColumns = `id, title, description, location, status, recruiter_id, department_id, budget, closing_date, created_date, updated_date`

// GetByID loads one assessment or returns domain.ErrNotFound.
func (r *AssessmentRepository) GetByID(ctx context.Context, id int) (*domain.Assessment, error) {
	const q = `
SELECT ` + assessmentColumns + `
FROM assessments
WHERE id = $1;
`
	a, err := scanAssessment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

// GetPaged runs the filter against the table: every present filter field
// becomes one AND clause, the unpaged count is taken first, then one page
// is selected newest-first (created_date, id descending).
func (r *AssessmentRepository) GetPaged(ctx context.Context, f domain.Filter) (domain.PagedResult[domain.Assessment], error) {
	var zero domain.PagedResult[domain.Assessment]

	where, args := buildWhere(f)

	var total int
	countQ := `SELECT COUNT(*) FROM assessments` + where + `;`
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return zero, fmt.Errorf("count assessments: %w", err)
	}

	// where may hold ILIKE '%' literals, so it stays out of the format string.
	pageQ := `SELECT ` + assessmentColumns + ` FROM assessments` + where +
		fmt.Sprintf(` ORDER BY created_date DESC, id DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, pageQ, append(args, f.PageSize, (f.PageNumber-1)*f.PageSize)...)
	if err != nil {
		return zero, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Assessment, 0, f.PageSize)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return zero, fmt.Errorf("scan assessment: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("iterate assessments: %w", err)
	}

	return domain.NewPagedResult(items, total, f.PageNumber, f.PageSize), nil
}

// Create inserts a new assessment and returns it with the generated id.
func (r *AssessmentRepository) Create(ctx context.Context, a domain.Assessment) (*domain.Assessment, error) {
	const q = `
INSERT INTO assessments (title, description, location, status, recruiter_id, department_id, budget, closing_date, created_date, updated_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + assessmentColumns + `;
`
	created, err := scanAssessment(r.db.QueryRowContext(ctx, q,
		a.Title, a.Description, a.Location, a.Status, a.RecruiterID, a.DepartmentID,
		a.Budget, a.ClosingDate, a.CreatedDate, a.UpdatedDate))
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable column of an existing row. A missing id
// yields domain.ErrNotFound.
func (r *AssessmentRepository) Update(ctx context.Context, a domain.Assessment) (*domain.Assessment, error) {
	const q = `
UPDATE assessments
SET title = $2, description = $3, location = $4, status = $5, recruiter_id = $6,
    department_id = $7, budget = $8, closing_date = $9, updated_date = $10
WHERE id = $1
RETURNING ` + assessmentColumns + `;
`
	updated, err := scanAssessment(r.db.QueryRowContext(ctx, q,
		a.ID, a.Title, a.Description, a.Location, a.Status, a.RecruiterID,
		a.DepartmentID, a.Budget, a.ClosingDate, a.UpdatedDate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update assessment: %w", err)
	}
	return updated, nil
}

// Delete removes a row and reports whether it existed.
func (r *AssessmentRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1;`, id)
	if err != nil {
		return false, fmt.Errorf("delete assessment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete assessment: %w", err)
	}
	return rowsAffected > 0, nil
}

// Exists reports whether an assessment with the given id is stored.
func (r *AssessmentRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM assessments WHERE id = $1);`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("assessment exists: %w", err)
	}
	return exists, nil
}

// CloseExpired moves every open assessment whose closing date has passed to
// Closed and returns how many rows changed.
func (r *AssessmentRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `
UPDATE assessments
SET status = $1, updated_date = $2
WHERE status = $3 AND closing_date IS NOT NULL AND closing_date < $2;
`
	result, err := r.db.ExecContext(ctx, q, domain.StatusClosed, now, domain.StatusOpen)
	if err != nil {
		return 0, fmt.Errorf("close expired assessments: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("close expired assessments: %w", err)
	}
	return n, nil
}

// buildWhere turns the present filter fields into a WHERE clause and its
// positional args. Substring matches use ILIKE, ranges are inclusive.
func buildWhere(f domain.Filter) (string, []any) {
	conds := make([]string, 0, 9)
	args := make([]any, 0, 9)

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Title != "" {
		add(`title ILIKE '%%' || $%d || '%%'`, f.Title)
	}
	if f.Location != "" {
		add(`location ILIKE '%%' || $%d || '%%'`, f.Location)
	}
	if f.Status != nil {
		add(`status = $%d`, *f.Status)
	}
	if f.RecruiterID != nil {
		add(`recruiter_id = $%d`, *f.RecruiterID)
	}
	if f.DepartmentID != nil {
		add(`department_id = $%d`, *f.DepartmentID)
	}
	if f.MinBudget != nil {
		add(`budget >= $%d`, *f.MinBudget)
	}
	if f.MaxBudget != nil {
		add(`budget <= $%d`, *f.MaxBudget)
	}
	if f.ClosingDateFrom != nil {
		add(`closing_date >= $%d`, *f.ClosingDateFrom)
	}
	if f.ClosingDateTo != nil {
		add(`closing_date <= $%d`, *f.ClosingDateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*domain.Assessment, error) {
	var a domain.Assessment
	var closing sql.NullTime
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Location, &a.Status,
		&a.RecruiterID, &a.DepartmentID, &a.Budget, &closing, &a.CreatedDate, &a.UpdatedDate)
	if err != nil {
		return nil, err
	}
	if closing.Valid {
		t := closing.Time
		a.ClosingDate = &t
	}
	return &a, nil
}
