package repository

import (
	"context"
	"errors"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgContactColumns = `id, name, email, subject, message, is_read, is_archived,
	created_at, updated_at, submitted_at`

// PgContactRepository is the PostgreSQL implementation of ContactMessageRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactMessageRepository at compile time.
var _ ContactMessageRepository = (*PgContactRepository)(nil)

// Create inserts a new contact_messages row and populates msg.ID from the RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	stampContact(msg)
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages
		   (name, email, subject, message, is_read, is_archived, created_at, updated_at, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.IsRead, msg.IsArchived,
		msg.CreatedAt, msg.UpdatedAt, msg.SubmittedAt,
	).Scan(&msg.ID)
}

func (r *PgContactRepository) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pgContactColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanPgContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// List returns contact messages filtered by flags, date and search term, newest first.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	c := contactConditions(pgDialect, opts)
	query := `SELECT ` + pgContactColumns + ` FROM contact_messages` +
		c.where() + newestFirst + c.page(opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanPgContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *PgContactRepository) Count(ctx context.Context, opts model.ContactListOptions) (int64, error) {
	c := contactConditions(pgDialect, opts)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`+c.where(), c.args...).Scan(&n)
	return n, err
}

func (r *PgContactRepository) Edit(ctx context.Context, id int64, upd model.ContactUpdate, at time.Time) (*model.ContactMessage, error) {
	c := newConditions(pgDialect)
	set := contactEdit(c, upd, at)
	c.eq("id", id)
	row := r.pool.QueryRow(ctx,
		`UPDATE contact_messages SET `+set+c.where()+` RETURNING `+pgContactColumns, c.args...)
	m, err := scanPgContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *PgContactRepository) SetRead(ctx context.Context, ids []int64, read bool, at time.Time) (int64, error) {
	return r.setFlag(ctx, "is_read", ids, read, at)
}

func (r *PgContactRepository) SetArchived(ctx context.Context, ids []int64, archived bool, at time.Time) (int64, error) {
	return r.setFlag(ctx, "is_archived", ids, archived, at)
}

// setFlag updates a single boolean column; column is always one of the two
// constants above, never caller input.
func (r *PgContactRepository) setFlag(ctx context.Context, column string, ids []int64, value bool, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	c := newConditions(pgDialect)
	set := column + " = " + c.arg(value) + ", updated_at = " + c.arg(at)
	c.ids("id", ids)
	tag, err := r.pool.Exec(ctx, `UPDATE contact_messages SET `+set+c.where(), c.args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanPgContact(row pgx.Row) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.IsArchived,
		&m.CreatedAt, &m.UpdatedAt, &m.SubmittedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
