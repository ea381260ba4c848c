package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/shopspring/decimal"
)

// Budgets are stored as integer cents so SUM stays exact.
const sqliteProjectColumns = `id, project_type, client_name, email, COALESCE(company, ''), COALESCE(phone, ''),
	project_title, project_description, budget_cents, timeline, COALESCE(reference_links, ''),
	COALESCE(heard_from, ''), COALESCE(additional_notes, ''), COALESCE(attached_files, ''),
	status, COALESCE(notes, ''), created_at, updated_at, submitted_at`

// SQLiteProjectRepository is the SQLite implementation of ProjectSubmissionRepository.
type SQLiteProjectRepository struct {
	db *sql.DB
}

func NewSQLiteProjectRepository(db *sql.DB) *SQLiteProjectRepository {
	return &SQLiteProjectRepository{db: db}
}

var _ ProjectSubmissionRepository = (*SQLiteProjectRepository)(nil)

func (r *SQLiteProjectRepository) Create(ctx context.Context, sub *model.ProjectSubmission) error {
	stampProject(sub)
	files, err := encodeFiles(sub.AttachedFiles)
	if err != nil {
		return fmt.Errorf("encode attached files: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO project_submissions
		   (project_type, client_name, email, company, phone, project_title, project_description,
		    budget_cents, timeline, reference_links, heard_from, additional_notes, attached_files,
		    status, notes, created_at, updated_at, submitted_at)
		 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?,
		         ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?,
		         ?, NULLIF(?, ''), ?, ?, ?)`,
		string(sub.ProjectType), sub.ClientName, sub.Email, sub.Company, sub.Phone, sub.ProjectTitle, sub.ProjectDescription,
		cents(sub.Budget), string(sub.Timeline), sub.ReferenceLinks, string(sub.HeardFrom), sub.AdditionalNotes, files,
		string(sub.Status), sub.Notes, sub.CreatedAt.UnixNano(), sub.UpdatedAt.UnixNano(), sub.SubmittedAt.UnixNano(),
	)
	if err != nil {
		return err
	}
	sub.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteProjectRepository) GetByID(ctx context.Context, id int64) (*model.ProjectSubmission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteProjectColumns+` FROM project_submissions WHERE id = ?`, id)
	p, err := scanSQLiteProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *SQLiteProjectRepository) List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error) {
	c := projectConditions(sqliteDialect, filter)
	query := `SELECT ` + sqliteProjectColumns + ` FROM project_submissions` +
		c.where() + newestFirst + c.page(filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.ProjectSubmission
	for rows.Next() {
		p, err := scanSQLiteProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *SQLiteProjectRepository) Count(ctx context.Context, filter model.ProjectFilter) (int64, error) {
	c := projectConditions(sqliteDialect, filter)
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_submissions`+c.where(), c.args...).Scan(&n)
	return n, err
}

func (r *SQLiteProjectRepository) Edit(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error) {
	c := newConditions(sqliteDialect)
	set := projectEdit(c, upd, at)
	c.eq("id", id)
	row := r.db.QueryRowContext(ctx,
		`UPDATE project_submissions SET `+set+c.where()+` RETURNING `+sqliteProjectColumns, c.args...)
	p, err := scanSQLiteProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *SQLiteProjectRepository) SetStatus(ctx context.Context, ids []int64, status model.ProjectStatus, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	c := newConditions(sqliteDialect)
	set := "status = " + c.arg(string(status)) + ", updated_at = " + c.arg(at.UnixNano())
	c.ids("id", ids)
	return affected(r.db.ExecContext(ctx, `UPDATE project_submissions SET `+set+c.where(), c.args...))
}

func (r *SQLiteProjectRepository) BudgetTotals(ctx context.Context) (model.BudgetTotals, error) {
	var sum, count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(budget_cents), 0), COUNT(*) FROM project_submissions`,
	).Scan(&sum, &count)
	if err != nil {
		return model.BudgetTotals{}, err
	}
	return model.BudgetTotals{Sum: decimal.New(sum, -2), Count: count}, nil
}

func cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func scanSQLiteProject(row interface{ Scan(...any) error }) (*model.ProjectSubmission, error) {
	var (
		p                                    model.ProjectSubmission
		projectType, timeline, heard, status string
		files                                string
		budget, created, updated, submitted  int64
	)
	if err := row.Scan(&p.ID, &projectType, &p.ClientName, &p.Email, &p.Company, &p.Phone,
		&p.ProjectTitle, &p.ProjectDescription, &budget, &timeline, &p.ReferenceLinks,
		&heard, &p.AdditionalNotes, &files,
		&status, &p.Notes, &created, &updated, &submitted); err != nil {
		return nil, err
	}
	p.Budget = decimal.New(budget, -2)
	p.ProjectType = model.ProjectType(projectType)
	p.Timeline = model.Timeline(timeline)
	p.HeardFrom = model.HeardFrom(heard)
	p.Status = model.ProjectStatus(status)
	p.AttachedFiles = decodeFiles(files)
	p.CreatedAt = unixNano(created)
	p.UpdatedAt = unixNano(updated)
	p.SubmittedAt = unixNano(submitted)
	return &p, nil
}
