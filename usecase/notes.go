package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/repository"
)

// ErrEmptyNote is returned when note text is empty after trimming.
var ErrEmptyNote = errors.New("note text is empty")

// TextTooLongError is returned when note text exceeds the configured cap.
type TextTooLongError struct {
	Max int
}

func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("note text exceeds maximum length of %d", e.Max)
}

type NotesService struct {
	NotesRepo     *repository.NotesRepo
	MaxTextLength int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// normalizeText trims the text and enforces the empty/length rules shared
// by create and update.
func (svc *NotesService) normalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyNote
	}
	if utf8.RuneCountInString(text) > svc.MaxTextLength {
		return "", &TextTooLongError{Max: svc.MaxTextLength}
	}
	return text, nil
}

// clampPriority forces the priority into [1,3], defaulting to 2 when missing.
func clampPriority(priority *int) int {
	if priority == nil {
		return model.DefaultPriority
	}
	if *priority < model.MinPriority {
		return model.MinPriority
	}
	if *priority > model.MaxPriority {
		return model.MaxPriority
	}
	return *priority
}

func (svc *NotesService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error) {
	text, err := svc.normalizeText(req.Text)
	if err != nil {
		return nil, err
	}

	theme := req.Theme
	if theme == "" {
		theme = model.DefaultTheme
	}

	note := &model.Note{
		Text:     text,
		Priority: clampPriority(req.Priority),
		Tags:     req.Tags,
		Reminder: req.Reminder,
		Theme:    theme,
		Template: req.Template,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	middleware.TrackNoteOperation("create")
	return note, nil
}

// NoteListOptions carries the raw listing parameters before normalization.
type NoteListOptions struct {
	Order    string
	View     string
	Category string
	Search   string
	Tags     []string
	Priority int
	Archived bool
	Limit    int
	Offset   int
}

type NotesPage struct {
	Items   []model.Note
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// normalizeOrder falls back to desc for anything unrecognized; an unknown
// order is never an error.
func normalizeOrder(order string) string {
	switch order {
	case "asc", "desc", "priority", "alphabetical", "drag":
		return order
	default:
		return "desc"
	}
}

func (svc *NotesService) ListNotes(ctx context.Context, opts NoteListOptions) (*NotesPage, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageLimit
	}
	if opts.Limit > MaxPageLimit {
		opts.Limit = MaxPageLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Priority < model.MinPriority || opts.Priority > model.MaxPriority {
		opts.Priority = 0
	}

	repoOpts := repository.ListOptions{
		Order:    normalizeOrder(opts.Order),
		View:     opts.View,
		Category: opts.Category,
		Search:   opts.Search,
		Tags:     opts.Tags,
		Priority: opts.Priority,
		Archived: opts.Archived,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}

	items, total, err := svc.NotesRepo.ListNotes(ctx, repoOpts)
	if err != nil {
		return nil, err
	}

	return &NotesPage{
		Items:   items,
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(items) < total,
	}, nil
}

func (svc *NotesService) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	return svc.NotesRepo.GetNote(ctx, id)
}

// UpdateNote applies a partial patch: only supplied fields change. Supplied
// text goes through the same validation as create; supplied priority is
// clamped into range.
func (svc *NotesService) UpdateNote(ctx context.Context, id int64, req dto.UpdateNoteRequest) (int64, error) {
	patch := repository.NotePatch{
		Tags:     req.Tags,
		Archived: req.Archived,
		Reminder: req.Reminder,
		Theme:    req.Theme,
		Template: req.Template,
		Position: req.Position,
	}

	if req.Text != nil {
		text, err := svc.normalizeText(*req.Text)
		if err != nil {
			return 0, err
		}
		patch.Text = &text
	}

	if req.Priority != nil {
		priority := clampPriority(req.Priority)
		patch.Priority = &priority
	}

	changes, err := svc.NotesRepo.UpdateNote(ctx, id, patch)
	if err != nil {
		return 0, err
	}

	middleware.TrackNoteOperation("update")
	return changes, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, id int64) error {
	if err := svc.NotesRepo.DeleteNote(ctx, id); err != nil {
		return err
	}

	middleware.TrackNoteOperation("delete")
	return nil
}

func (svc *NotesService) TogglePin(ctx context.Context, id int64) (bool, error) {
	pinned, err := svc.NotesRepo.TogglePin(ctx, id)
	if err != nil {
		return false, err
	}

	middleware.TrackNoteOperation("pin")
	return pinned, nil
}

func (svc *NotesService) ExportNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := svc.NotesRepo.ExportNotes(ctx)
	if err != nil {
		return nil, err
	}

	middleware.TrackNoteOperation("export")
	return notes, nil
}
