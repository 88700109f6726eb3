package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"main/repository"
	"main/utils"
)

type StatsHandler struct {
	notesRepo *repository.NotesRepo
}

func NewStatsHandler(notesRepo *repository.NotesRepo) *StatsHandler {
	return &StatsHandler{notesRepo: notesRepo}
}

// GetNoteStats returns aggregate counts by pin, archive and priority.
func (h *StatsHandler) GetNoteStats(c *gin.Context) {
	stats, err := h.notesRepo.NoteStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("error aggregating note stats")
		utils.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, stats)
}
