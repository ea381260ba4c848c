package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pgProjectColumns = `id, project_type, client_name, email, COALESCE(company, ''), COALESCE(phone, ''),
	project_title, project_description, budget::text, timeline, COALESCE(reference_links, ''),
	COALESCE(heard_from, ''), COALESCE(additional_notes, ''), COALESCE(attached_files, ''),
	status, COALESCE(notes, ''), created_at, updated_at, submitted_at`

// PgProjectRepository is the PostgreSQL implementation of ProjectSubmissionRepository.
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository creates a PgProjectRepository backed by the given pool.
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

var _ ProjectSubmissionRepository = (*PgProjectRepository)(nil)

// Create inserts a submission. Empty optional text columns are stored as NULL.
func (r *PgProjectRepository) Create(ctx context.Context, sub *model.ProjectSubmission) error {
	stampProject(sub)
	files, err := encodeFiles(sub.AttachedFiles)
	if err != nil {
		return fmt.Errorf("encode attached files: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO project_submissions
		   (project_type, client_name, email, company, phone, project_title, project_description,
		    budget, timeline, reference_links, heard_from, additional_notes, attached_files,
		    status, notes, created_at, updated_at, submitted_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7,
		         $8::numeric, $9, NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13,
		         $14, NULLIF($15, ''), $16, $17, $18)
		 RETURNING id`,
		string(sub.ProjectType), sub.ClientName, sub.Email, sub.Company, sub.Phone, sub.ProjectTitle, sub.ProjectDescription,
		sub.Budget.StringFixed(2), string(sub.Timeline), sub.ReferenceLinks, string(sub.HeardFrom), sub.AdditionalNotes, files,
		string(sub.Status), sub.Notes, sub.CreatedAt, sub.UpdatedAt, sub.SubmittedAt,
	).Scan(&sub.ID)
}

func (r *PgProjectRepository) GetByID(ctx context.Context, id int64) (*model.ProjectSubmission, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pgProjectColumns+` FROM project_submissions WHERE id = $1`, id)
	p, err := scanPgProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgProjectRepository) List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error) {
	c := projectConditions(pgDialect, filter)
	query := `SELECT ` + pgProjectColumns + ` FROM project_submissions` +
		c.where() + newestFirst + c.page(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.ProjectSubmission
	for rows.Next() {
		p, err := scanPgProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PgProjectRepository) Count(ctx context.Context, filter model.ProjectFilter) (int64, error) {
	c := projectConditions(pgDialect, filter)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM project_submissions`+c.where(), c.args...).Scan(&n)
	return n, err
}

// Edit writes the supplied fields of one submission in a single statement.
func (r *PgProjectRepository) Edit(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error) {
	c := newConditions(pgDialect)
	set := projectEdit(c, upd, at)
	c.eq("id", id)
	row := r.pool.QueryRow(ctx,
		`UPDATE project_submissions SET `+set+c.where()+` RETURNING `+pgProjectColumns, c.args...)
	p, err := scanPgProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgProjectRepository) SetStatus(ctx context.Context, ids []int64, status model.ProjectStatus, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE project_submissions SET status = $1, updated_at = $2 WHERE id = ANY($3)`,
		string(status), at, ids,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgProjectRepository) BudgetTotals(ctx context.Context) (model.BudgetTotals, error) {
	var sum string
	var totals model.BudgetTotals
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(budget), 0)::text, COUNT(*) FROM project_submissions`,
	).Scan(&sum, &totals.Count)
	if err != nil {
		return model.BudgetTotals{}, err
	}
	totals.Sum, err = decimal.NewFromString(sum)
	if err != nil {
		return model.BudgetTotals{}, fmt.Errorf("parse budget sum: %w", err)
	}
	return totals, nil
}

func scanPgProject(row pgx.Row) (*model.ProjectSubmission, error) {
	var (
		p                                    model.ProjectSubmission
		projectType, timeline, heard, status string
		budget, files                        string
	)
	if err := row.Scan(&p.ID, &projectType, &p.ClientName, &p.Email, &p.Company, &p.Phone,
		&p.ProjectTitle, &p.ProjectDescription, &budget, &timeline, &p.ReferenceLinks,
		&heard, &p.AdditionalNotes, &files,
		&status, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &p.SubmittedAt); err != nil {
		return nil, err
	}
	b, err := decimal.NewFromString(budget)
	if err != nil {
		return nil, fmt.Errorf("parse budget of submission %d: %w", p.ID, err)
	}
	p.Budget = b
	p.ProjectType = model.ProjectType(projectType)
	p.Timeline = model.Timeline(timeline)
	p.HeardFrom = model.HeardFrom(heard)
	p.Status = model.ProjectStatus(status)
	p.AttachedFiles = decodeFiles(files)
	return &p, nil
}
