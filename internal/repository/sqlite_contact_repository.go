package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalyst/backend/internal/model"
)

const sqliteContactColumns = `id, name, email, subject, message, is_read, is_archived,
	created_at, updated_at, submitted_at`

// SQLiteContactRepository is the SQLite implementation of ContactMessageRepository.
type SQLiteContactRepository struct {
	db *sql.DB
}

func NewSQLiteContactRepository(db *sql.DB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db}
}

var _ ContactMessageRepository = (*SQLiteContactRepository)(nil)

func (r *SQLiteContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	stampContact(msg)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages
		   (name, email, subject, message, is_read, is_archived, created_at, updated_at, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.IsRead, msg.IsArchived,
		msg.CreatedAt.UnixNano(), msg.UpdatedAt.UnixNano(), msg.SubmittedAt.UnixNano(),
	)
	if err != nil {
		return err
	}
	msg.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteContactRepository) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteContactColumns+` FROM contact_messages WHERE id = ?`, id)
	m, err := scanSQLiteContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *SQLiteContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	c := contactConditions(sqliteDialect, opts)
	query := `SELECT ` + sqliteContactColumns + ` FROM contact_messages` +
		c.where() + newestFirst + c.page(opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanSQLiteContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *SQLiteContactRepository) Count(ctx context.Context, opts model.ContactListOptions) (int64, error) {
	c := contactConditions(sqliteDialect, opts)
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`+c.where(), c.args...).Scan(&n)
	return n, err
}

func (r *SQLiteContactRepository) Edit(ctx context.Context, id int64, upd model.ContactUpdate, at time.Time) (*model.ContactMessage, error) {
	c := newConditions(sqliteDialect)
	set := contactEdit(c, upd, at)
	c.eq("id", id)
	row := r.db.QueryRowContext(ctx,
		`UPDATE contact_messages SET `+set+c.where()+` RETURNING `+sqliteContactColumns, c.args...)
	m, err := scanSQLiteContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *SQLiteContactRepository) SetRead(ctx context.Context, ids []int64, read bool, at time.Time) (int64, error) {
	return r.setFlag(ctx, "is_read", ids, read, at)
}

func (r *SQLiteContactRepository) SetArchived(ctx context.Context, ids []int64, archived bool, at time.Time) (int64, error) {
	return r.setFlag(ctx, "is_archived", ids, archived, at)
}

func (r *SQLiteContactRepository) setFlag(ctx context.Context, column string, ids []int64, value bool, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	c := newConditions(sqliteDialect)
	set := column + " = " + c.arg(value) + ", updated_at = " + c.arg(at.UnixNano())
	c.ids("id", ids)
	return affected(r.db.ExecContext(ctx, `UPDATE contact_messages SET `+set+c.where(), c.args...))
}

func scanSQLiteContact(row interface{ Scan(...any) error }) (*model.ContactMessage, error) {
	var m model.ContactMessage
	var created, updated, submitted int64
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.IsArchived,
		&created, &updated, &submitted); err != nil {
		return nil, err
	}
	m.CreatedAt = unixNano(created)
	m.UpdatedAt = unixNano(updated)
	m.SubmittedAt = unixNano(submitted)
	return &m, nil
}
