package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"

	"main/middleware"
	"main/model"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("note not found")

// The table is created if absent at startup; there is no migration
// mechanism. clone_count is carried in the schema but no operation
// increments it.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	pinned INTEGER NOT NULL DEFAULT 0,
	priority INTEGER NOT NULL DEFAULT 2,
	tags TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0,
	reminder TEXT NOT NULL DEFAULT '',
	theme TEXT NOT NULL DEFAULT 'default',
	template TEXT NOT NULL DEFAULT '',
	clone_count INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0
)`

const noteColumns = `id, text, created_at, updated_at, pinned, priority, tags,
	archived, reminder, theme, template, clone_count, position`

type NotesRepo struct {
	DB *sql.DB
}

// OpenDatabase opens the sqlite database at the given path. All access
// goes through one shared connection; sqlite serializes writes itself.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite db at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func GetNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{DB: db}
}

// Init runs idempotent setup sql to create the notes table if it doesn't exist.
func (r *NotesRepo) Init(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error running schema sql: %w", err)
	}
	return nil
}

// ListOptions narrows and orders a notes listing. Zero values mean
// "no filter"; Order must already be normalized by the caller.
type ListOptions struct {
	Order    string // asc, desc, priority, alphabetical, drag
	View     string // all, pinned, unpinned
	Category string
	Search   string
	Tags     []string
	Priority int // 0 = any
	Archived bool
	Limit    int
	Offset   int
}

func buildFilters(opts ListOptions) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if opts.Archived {
		conditions = append(conditions, "archived = 1")
	} else {
		conditions = append(conditions, "archived = 0")
	}

	switch opts.View {
	case "pinned":
		conditions = append(conditions, "pinned = 1")
	case "unpinned":
		conditions = append(conditions, "pinned = 0")
	}

	if opts.Search != "" {
		conditions = append(conditions,
			"(instr(lower(text), lower(?)) > 0 OR instr(lower(tags), lower(?)) > 0)")
		args = append(args, opts.Search, opts.Search)
	}

	// tag filters are literal substring matches against the joined tag string
	for _, tag := range opts.Tags {
		conditions = append(conditions, "instr(tags, ?) > 0")
		args = append(args, tag)
	}
	if opts.Category != "" {
		conditions = append(conditions, "instr(tags, ?) > 0")
		args = append(args, opts.Category)
	}

	if opts.Priority != 0 {
		conditions = append(conditions, "priority = ?")
		args = append(args, opts.Priority)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps the requested order to SQL. Pinned notes lead in every
// mode except alphabetical and drag, which define their own total order.
func orderClause(order string) string {
	switch order {
	case "asc":
		return " ORDER BY pinned DESC, id ASC"
	case "priority":
		return " ORDER BY pinned DESC, priority ASC, id DESC"
	case "alphabetical":
		return " ORDER BY lower(text) ASC, id ASC"
	case "drag":
		return " ORDER BY position ASC, id ASC"
	default:
		return " ORDER BY pinned DESC, id DESC"
	}
}

// ListNotes returns one page of notes matching opts plus the total count
// of matching rows. An empty result is not an error.
func (r *NotesRepo) ListNotes(ctx context.Context, opts ListOptions) ([]model.Note, int, error) {
	timer := middleware.TrackDBOperation("list", "notes")
	defer timer.ObserveDuration()

	where, args := buildFilters(opts)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notes: %w", err)
	}

	query := "SELECT " + noteColumns + " FROM notes" + where + orderClause(opts.Order) + " LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error scanning notes: %w", err)
	}

	return notes, total, nil
}

// CreateNote inserts the note and fills in its assigned id and timestamps.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := middleware.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	now := nowTimestamp()
	note.CreatedAt = now
	note.UpdatedAt = now

	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO notes (text, created_at, updated_at, pinned, priority, tags,
			archived, reminder, theme, template, clone_count, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.Text, note.CreatedAt, note.UpdatedAt, note.Pinned, note.Priority,
		note.Tags, note.Archived, note.Reminder, note.Theme, note.Template,
		note.CloneCount, note.Position,
	)
	if err != nil {
		return fmt.Errorf("error adding note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error getting id of new note: %w", err)
	}
	note.ID = id

	return nil
}

// GetNote retrieves a single note by id.
func (r *NotesRepo) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	timer := middleware.TrackDBOperation("get", "notes")
	defer timer.ObserveDuration()

	row := r.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// NotePatch applies only its non-nil fields; everything else is left
// untouched. Pinned is deliberately absent: pin state changes only
// through TogglePin.
type NotePatch struct {
	Text     *string
	Priority *int
	Tags     *string
	Archived *bool
	Reminder *string
	Theme    *string
	Template *string
	Position *int
}

// UpdateNote applies the patch to one row with a fixed parameterized
// statement; nil fields bind as NULL and fall through COALESCE.
// Returns the number of rows changed, or ErrNotFound.
func (r *NotesRepo) UpdateNote(ctx context.Context, id int64, patch NotePatch) (int64, error) {
	timer := middleware.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.DB.ExecContext(ctx,
		`UPDATE notes SET
			text = COALESCE(?, text),
			priority = COALESCE(?, priority),
			tags = COALESCE(?, tags),
			archived = COALESCE(?, archived),
			reminder = COALESCE(?, reminder),
			theme = COALESCE(?, theme),
			template = COALESCE(?, template),
			position = COALESCE(?, position),
			updated_at = ?
		 WHERE id = ?`,
		patch.Text, patch.Priority, patch.Tags, patch.Archived, patch.Reminder,
		patch.Theme, patch.Template, patch.Position, nowTimestamp(), id,
	)
	if err != nil {
		return 0, fmt.Errorf("error updating note %d: %w", id, err)
	}

	changes, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading update result: %w", err)
	}
	if changes == 0 {
		return 0, ErrNotFound
	}
	return changes, nil
}

// DeleteNote removes the row permanently.
func (r *NotesRepo) DeleteNote(ctx context.Context, id int64) error {
	timer := middleware.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("error deleting note %d: %w", id, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading delete result: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// TogglePin flips the pinned flag in a single statement, so two
// concurrent toggles cannot both observe the same old value, then
// reads back the new state.
func (r *NotesRepo) TogglePin(ctx context.Context, id int64) (bool, error) {
	timer := middleware.TrackDBOperation("toggle_pin", "notes")
	defer timer.ObserveDuration()

	result, err := r.DB.ExecContext(ctx,
		"UPDATE notes SET pinned = 1 - pinned, updated_at = ? WHERE id = ?",
		nowTimestamp(), id)
	if err != nil {
		return false, fmt.Errorf("error toggling pin on note %d: %w", id, err)
	}

	changed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading pin result: %w", err)
	}
	if changed == 0 {
		return false, ErrNotFound
	}

	var pinned bool
	err = r.DB.QueryRowContext(ctx, "SELECT pinned FROM notes WHERE id = ?", id).Scan(&pinned)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("error reading pin state of note %d: %w", id, err)
	}
	return pinned, nil
}

// ExportNotes returns every note, archived included, in id order.
func (r *NotesRepo) ExportNotes(ctx context.Context) ([]model.Note, error) {
	timer := middleware.TrackDBOperation("export", "notes")
	defer timer.ObserveDuration()

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("error exporting notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning export: %w", err)
	}
	return notes, nil
}

// NoteStats aggregates counts over the whole table.
func (r *NotesRepo) NoteStats(ctx context.Context) (*model.NoteStats, error) {
	timer := middleware.TrackDBOperation("stats", "notes")
	defer timer.ObserveDuration()

	stats := &model.NoteStats{ByPriority: map[int]int{}}

	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(pinned), 0), COALESCE(SUM(archived), 0) FROM notes`,
	).Scan(&stats.Total, &stats.Pinned, &stats.Archived)
	if err != nil {
		return nil, fmt.Errorf("error counting notes: %w", err)
	}
	stats.Unpinned = stats.Total - stats.Pinned

	rows, err := r.DB.QueryContext(ctx,
		"SELECT priority, COUNT(*) FROM notes GROUP BY priority")
	if err != nil {
		return nil, fmt.Errorf("error counting notes by priority: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var priority, count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, fmt.Errorf("error scanning priority counts: %w", err)
		}
		stats.ByPriority[priority] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning priority counts: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID, &note.Text, &note.CreatedAt, &note.UpdatedAt, &note.Pinned,
		&note.Priority, &note.Tags, &note.Archived, &note.Reminder,
		&note.Theme, &note.Template, &note.CloneCount, &note.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return note, err
		}
		return note, fmt.Errorf("error scanning note: %w", err)
	}
	return note, nil
}

func nowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
