package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/model"
)

func newTestRepo(t *testing.T) *NotesRepo {
	t.Helper()

	db, err := OpenDatabase(filepath.Join(t.TempDir(), "notes.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := GetNotesRepo(db)
	require.NoError(t, repo.Init(context.Background()))

	return repo
}

func addNote(t *testing.T, repo *NotesRepo, text string) *model.Note {
	t.Helper()

	note := &model.Note{
		Text:     text,
		Priority: model.DefaultPriority,
		Theme:    model.DefaultTheme,
	}
	require.NoError(t, repo.CreateNote(context.Background(), note))

	return note
}

func TestInitIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	assert.NoError(t, repo.Init(context.Background()))
	assert.NoError(t, repo.Init(context.Background()))
}

func TestCreateNoteAssignsMonotonicIDs(t *testing.T) {
	repo := newTestRepo(t)

	first := addNote(t, repo, "first")
	second := addNote(t, repo, "second")
	third := addNote(t, repo, "third")

	assert.Greater(t, first.ID, int64(0))
	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, third.ID, second.ID)
	assert.NotEmpty(t, first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestGetNote(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := addNote(t, repo, "find me")

	note, err := repo.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "find me", note.Text)
	assert.False(t, note.Pinned)
	assert.Equal(t, model.DefaultPriority, note.Priority)
	assert.Equal(t, model.DefaultTheme, note.Theme)
	assert.Equal(t, 0, note.CloneCount)

	_, err = repo.GetNote(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNotePatchesOnlySuppliedFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	note := addNote(t, repo, "original")

	text := "patched"
	priority := 1
	changes, err := repo.UpdateNote(ctx, note.ID, NotePatch{Text: &text, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	got, err := repo.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "patched", got.Text)
	assert.Equal(t, 1, got.Priority)
	// untouched fields survive
	assert.Equal(t, note.CreatedAt, got.CreatedAt)
	assert.Equal(t, model.DefaultTheme, got.Theme)
	assert.False(t, got.Archived)

	archived := true
	_, err = repo.UpdateNote(ctx, note.ID, NotePatch{Archived: &archived})
	require.NoError(t, err)

	got, err = repo.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	assert.Equal(t, "patched", got.Text)
}

func TestUpdateNoteNotFound(t *testing.T) {
	repo := newTestRepo(t)

	text := "anything"
	changes, err := repo.UpdateNote(context.Background(), 9999, NotePatch{Text: &text})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), changes)
}

func TestDeleteNoteTwice(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	note := addNote(t, repo, "goes away")

	require.NoError(t, repo.DeleteNote(ctx, note.ID))
	assert.ErrorIs(t, repo.DeleteNote(ctx, note.ID), ErrNotFound)

	_, err := repo.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTogglePinFlipsAndReturnsToOriginal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	note := addNote(t, repo, "pin me")

	pinned, err := repo.TogglePin(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = repo.TogglePin(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, pinned)

	_, err = repo.TogglePin(ctx, note.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func listTexts(notes []model.Note) []string {
	texts := make([]string, len(notes))
	for i, note := range notes {
		texts[i] = note.Text
	}
	return texts
}

func TestListNotesPinnedLeadEveryIDOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addNote(t, repo, "a")
	pinnedNote := addNote(t, repo, "b")
	addNote(t, repo, "c")

	_, err := repo.TogglePin(ctx, pinnedNote.ID)
	require.NoError(t, err)

	notes, total, err := repo.ListNotes(ctx, ListOptions{Order: "desc", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"b", "c", "a"}, listTexts(notes))

	notes, _, err = repo.ListNotes(ctx, ListOptions{Order: "asc", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, listTexts(notes))
}

func TestListNotesAlphabeticalIgnoresPin(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addNote(t, repo, "banana")
	pinnedNote := addNote(t, repo, "cherry")
	addNote(t, repo, "Apple")

	_, err := repo.TogglePin(ctx, pinnedNote.ID)
	require.NoError(t, err)

	notes, _, err := repo.ListNotes(ctx, ListOptions{Order: "alphabetical", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, listTexts(notes))
}

func TestListNotesDragUsesPosition(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := addNote(t, repo, "first")
	second := addNote(t, repo, "second")

	position := 5
	_, err := repo.UpdateNote(ctx, first.ID, NotePatch{Position: &position})
	require.NoError(t, err)

	position = 2
	_, err = repo.UpdateNote(ctx, second.ID, NotePatch{Position: &position})
	require.NoError(t, err)

	notes, _, err := repo.ListNotes(ctx, ListOptions{Order: "drag", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, listTexts(notes))
}

func TestListNotesPriorityOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	low := addNote(t, repo, "low")
	high := addNote(t, repo, "high")

	priority := 3
	_, err := repo.UpdateNote(ctx, low.ID, NotePatch{Priority: &priority})
	require.NoError(t, err)

	priority = 1
	_, err = repo.UpdateNote(ctx, high.ID, NotePatch{Priority: &priority})
	require.NoError(t, err)

	notes, _, err := repo.ListNotes(ctx, ListOptions{Order: "priority", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, listTexts(notes))
}

func TestListNotesSearchCaseInsensitiveSubstring(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addNote(t, repo, "xabcX")
	addNote(t, repo, "unrelated")

	notes, total, err := repo.ListNotes(ctx, ListOptions{Order: "desc", Search: "ABC", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"xabcX"}, listTexts(notes))

	// search also matches against the tags field
	tagged := addNote(t, repo, "plain text")
	tags := "Groceries,errands"
	_, err = repo.UpdateNote(ctx, tagged.ID, NotePatch{Tags: &tags})
	require.NoError(t, err)

	notes, _, err = repo.ListNotes(ctx, ListOptions{Order: "desc", Search: "grocer", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"plain text"}, listTexts(notes))
}

func TestListNotesTagFilterIsSubstringMatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	note := addNote(t, repo, "school stuff")
	tags := "homework-notes"
	_, err := repo.UpdateNote(ctx, note.ID, NotePatch{Tags: &tags})
	require.NoError(t, err)

	// "work" is a substring of "homework-notes", so the note matches
	notes, _, err := repo.ListNotes(ctx, ListOptions{Order: "desc", Tags: []string{"work"}, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"school stuff"}, listTexts(notes))

	// every requested tag must match
	notes, _, err = repo.ListNotes(ctx, ListOptions{Order: "desc", Tags: []string{"work", "urgent"}, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestListNotesArchivedExcludedByDefault(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	keep := addNote(t, repo, "active")
	hide := addNote(t, repo, "archived")

	archived := true
	_, err := repo.UpdateNote(ctx, hide.ID, NotePatch{Archived: &archived})
	require.NoError(t, err)

	notes, total, err := repo.ListNotes(ctx, ListOptions{Order: "desc", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, keep.ID, notes[0].ID)

	notes, total, err = repo.ListNotes(ctx, ListOptions{Order: "desc", Archived: true, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, hide.ID, notes[0].ID)
}

func TestListNotesViewAndPriorityFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	pinnedNote := addNote(t, repo, "pinned one")
	addNote(t, repo, "unpinned one")

	_, err := repo.TogglePin(ctx, pinnedNote.ID)
	require.NoError(t, err)

	notes, _, err := repo.ListNotes(ctx, ListOptions{Order: "desc", View: "pinned", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned one"}, listTexts(notes))

	notes, _, err = repo.ListNotes(ctx, ListOptions{Order: "desc", View: "unpinned", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"unpinned one"}, listTexts(notes))

	urgent := addNote(t, repo, "urgent")
	priority := 1
	_, err = repo.UpdateNote(ctx, urgent.ID, NotePatch{Priority: &priority})
	require.NoError(t, err)

	notes, _, err = repo.ListNotes(ctx, ListOptions{Order: "desc", Priority: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, listTexts(notes))
}

func TestListNotesEmptyResultIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)

	notes, total, err := repo.ListNotes(context.Background(), ListOptions{Order: "desc", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestExportNotesIncludesArchived(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addNote(t, repo, "one")
	hidden := addNote(t, repo, "two")

	archived := true
	_, err := repo.UpdateNote(ctx, hidden.ID, NotePatch{Archived: &archived})
	require.NoError(t, err)

	notes, err := repo.ExportNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, listTexts(notes))
}

func TestNoteStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	pinnedNote := addNote(t, repo, "pinned")
	addNote(t, repo, "normal")
	archivedNote := addNote(t, repo, "archived")

	_, err := repo.TogglePin(ctx, pinnedNote.ID)
	require.NoError(t, err)

	archived := true
	priority := 1
	_, err = repo.UpdateNote(ctx, archivedNote.ID, NotePatch{Archived: &archived, Priority: &priority})
	require.NoError(t, err)

	stats, err := repo.NoteStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pinned)
	assert.Equal(t, 2, stats.Unpinned)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, map[int]int{1: 1, 2: 2}, stats.ByPriority)
}
