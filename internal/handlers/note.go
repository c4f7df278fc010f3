package handlers

import (
	"errors"
	"net/http"

	dom "github.com/Insane-9/Thinkboard-X/internal/domain"
	"github.com/Insane-9/Thinkboard-X/internal/dto"
	"github.com/Insane-9/Thinkboard-X/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNotFound    = "Note not found"
	msgInternal    = "Internal Server Error"
	msgInvalidBody = "invalid request body"
)

type NoteHandler struct {
	svc *service.NoteService
	log *zap.Logger
}

func NewNoteHandler(svc *service.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List all notes, newest first
// @Tags         notes
// @Produce      json
// @Success      200  {array}   dto.NoteResponse
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list notes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, notesToResponses(list))
}

// Create godoc
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	n, err := h.svc.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		// Missing fields deliberately map to 500, same as storage
		// failures: the upstream API never distinguished them.
		h.log.Error("create note", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusCreated, noteToResponse(n))
}

// GetByID godoc
// @Summary      Get a note by ID
// @Tags         notes
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  dto.NoteResponse
// @Failure      404  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notes/{id} [get]
func (h *NoteHandler) GetByID(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}
	n, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("get note", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Update godoc
// @Summary      Replace a note's title and content
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Note ID"
// @Param        body  body      dto.UpdateNoteRequest  true  "Replacement fields"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("update note", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  dto.NoteResponse
// @Failure      404  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}
	n, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("delete note", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// parseNoteID reads the id path param. A malformed id is reported the
// same as a missing note: no note with that id exists.
func parseNoteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return uuid.UUID{}, false
	}
	return id, true
}

func noteToResponse(n dom.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func notesToResponses(list []dom.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(list))
	for i := range list {
		out[i] = noteToResponse(list[i])
	}
	return out
}
