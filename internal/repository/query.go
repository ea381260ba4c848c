package repository

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
)

var (
	projectSearchColumns = []string{"project_title", "client_name", "email", "company", "phone"}
	contactSearchColumns = []string{"name", "email", "subject", "message"}
)

// dialect captures the SQL differences between the PostgreSQL and SQLite stores.
type dialect struct {
	bind func(n int) string
	like string
	time func(t time.Time) any
	in   func(c *conditions, col string, ids []int64) string
}

var pgDialect = dialect{
	bind: func(n int) string { return "$" + strconv.Itoa(n) },
	like: "ILIKE",
	time: func(t time.Time) any { return t },
	in: func(c *conditions, col string, ids []int64) string {
		return col + " = ANY(" + c.arg(ids) + ")"
	},
}

// SQLite stores timestamps as unix nanoseconds so range filters compare integers.
var sqliteDialect = dialect{
	bind: func(int) string { return "?" },
	like: "LIKE",
	time: func(t time.Time) any { return t.UnixNano() },
	in: func(c *conditions, col string, ids []int64) string {
		marks := make([]string, len(ids))
		for i, id := range ids {
			marks[i] = c.arg(id)
		}
		return col + " IN (" + strings.Join(marks, ", ") + ")"
	},
}

// conditions accumulates a WHERE clause and its positional arguments.
type conditions struct {
	d     dialect
	parts []string
	args  []any
}

func newConditions(d dialect) *conditions {
	return &conditions{d: d}
}

func (c *conditions) arg(v any) string {
	c.args = append(c.args, v)
	return c.d.bind(len(c.args))
}

func (c *conditions) eq(col string, v any) {
	c.parts = append(c.parts, col+" = "+c.arg(v))
}

func (c *conditions) within(col string, r *model.DateRange) {
	if r == nil {
		return
	}
	c.parts = append(c.parts, col+" >= "+c.arg(c.d.time(r.From)))
	c.parts = append(c.parts, col+" < "+c.arg(c.d.time(r.To)))
}

func (c *conditions) search(cols []string, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	pattern := "%" + escapeLike(term) + "%"
	ors := make([]string, len(cols))
	for i, col := range cols {
		ors[i] = col + " " + c.d.like + " " + c.arg(pattern) + ` ESCAPE '\'`
	}
	c.parts = append(c.parts, "("+strings.Join(ors, " OR ")+")")
}

func (c *conditions) ids(col string, ids []int64) {
	c.parts = append(c.parts, c.d.in(c, col, ids))
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// page renders LIMIT/OFFSET; a non-positive limit means no limit.
func (c *conditions) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	s := " LIMIT " + c.arg(limit)
	if offset > 0 {
		s += " OFFSET " + c.arg(offset)
	}
	return s
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func projectConditions(d dialect, f model.ProjectFilter) *conditions {
	c := newConditions(d)
	if f.Status != nil {
		c.eq("status", string(*f.Status))
	}
	if f.ProjectType != nil {
		c.eq("project_type", string(*f.ProjectType))
	}
	if f.Timeline != nil {
		c.eq("timeline", string(*f.Timeline))
	}
	c.within("submitted_at", f.Submitted)
	c.search(projectSearchColumns, f.Search)
	return c
}

func contactConditions(d dialect, o model.ContactListOptions) *conditions {
	c := newConditions(d)
	if o.IsRead != nil {
		c.eq("is_read", *o.IsRead)
	}
	if o.IsArchived != nil {
		c.eq("is_archived", *o.IsArchived)
	}
	c.within("submitted_at", o.Submitted)
	c.search(contactSearchColumns, o.Search)
	return c
}

const newestFirst = " ORDER BY submitted_at DESC, id DESC"

// projectEdit renders the SET list of a single-record edit. Only supplied
// fields are written so a concurrent bulk action on another column survives.
func projectEdit(c *conditions, upd model.ProjectUpdate, at time.Time) string {
	sets := []string{"updated_at = " + c.arg(c.d.time(at))}
	if upd.Status != nil {
		sets = append(sets, "status = "+c.arg(string(*upd.Status)))
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = NULLIF("+c.arg(*upd.Notes)+", '')")
	}
	return strings.Join(sets, ", ")
}

func contactEdit(c *conditions, upd model.ContactUpdate, at time.Time) string {
	sets := []string{"updated_at = " + c.arg(c.d.time(at))}
	if upd.IsRead != nil {
		sets = append(sets, "is_read = "+c.arg(*upd.IsRead))
	}
	if upd.IsArchived != nil {
		sets = append(sets, "is_archived = "+c.arg(*upd.IsArchived))
	}
	return strings.Join(sets, ", ")
}

// stampProject fills the insert timestamps the caller left unset.
func stampProject(sub *model.ProjectSubmission) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = sub.CreatedAt
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = sub.CreatedAt
	}
	if sub.Status == "" {
		sub.Status = model.StatusPending
	}
}

func stampContact(msg *model.ContactMessage) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if msg.UpdatedAt.IsZero() {
		msg.UpdatedAt = msg.CreatedAt
	}
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = msg.CreatedAt
	}
}

func encodeFiles(files []string) (*string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func decodeFiles(s string) []string {
	if s == "" {
		return nil
	}
	var files []string
	if err := json.Unmarshal([]byte(s), &files); err != nil {
		return []string{s}
	}
	return files
}
