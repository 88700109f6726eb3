package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"
)

// parseID accepts positive integer ids only.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// splitTags turns "work,urgent" (or repeated tags params) into a clean slice.
func splitTags(values []string) []string {
	tags := []string{}
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}
	return tags
}

// respondNoteError maps service errors to wire codes. Store failures are
// logged with their cause and surfaced only as database_error.
func respondNoteError(c *gin.Context, err error) {
	var tooLong *usecase.TextTooLongError
	switch {
	case errors.Is(err, usecase.ErrEmptyNote):
		utils.BadRequest(c, utils.CodeEmptyNote)
	case errors.As(err, &tooLong):
		utils.BadRequest(c, utils.CodeTooLong(tooLong.Max))
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c)
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("database error")
		utils.DatabaseError(c)
	}
}

func GetNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	priority, _ := strconv.Atoi(c.Query("priority"))
	archived := c.Query("archived") == "true" || c.Query("archived") == "1"

	opts := usecase.NoteListOptions{
		Order:    c.Query("order"),
		View:     c.Query("view"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Tags:     splitTags(c.QueryArray("tags")),
		Priority: priority,
		Archived: archived,
		Limit:    limit,
		Offset:   offset,
	}

	page, err := notesService.ListNotes(c.Request.Context(), opts)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NotesPageResponse{
		Items: page.Items,
		Pagination: dto.Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore,
		},
	})
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.BadRequest(c, utils.CodeInvalidID)
		return
	}

	note, err := notesService.GetNote(c.Request.Context(), id)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.CodeInvalidBody)
		return
	}

	note, err := notesService.CreateNote(c.Request.Context(), req)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateNoteResponse{Success: true, Note: *note})
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.BadRequest(c, utils.CodeInvalidID)
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.CodeInvalidBody)
		return
	}

	changes, err := notesService.UpdateNote(c.Request.Context(), id, req)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateNoteResponse{Success: true, Changes: changes})
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.BadRequest(c, utils.CodeInvalidID)
		return
	}

	if err := notesService.DeleteNote(c.Request.Context(), id); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func TogglePinHandler(c *gin.Context, notesService *usecase.NotesService) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.BadRequest(c, utils.CodeInvalidID)
		return
	}

	pinned, err := notesService.TogglePin(c.Request.Context(), id)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TogglePinResponse{Success: true, Pinned: pinned})
}

func ExportNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.ExportNotes(c.Request.Context())
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="notes-export.json"`)
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, notes)
}
