package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
	"github.com/quizlive/quizlive-backend/internal/repository"
	"github.com/quizlive/quizlive-backend/internal/response"
	"github.com/quizlive/quizlive-backend/internal/service"
	"github.com/quizlive/quizlive-backend/internal/validator"
)

// SessionHandler handles admin session management and player joins.
type SessionHandler struct {
	gameService *service.GameService
	questions   *repository.QuestionRepository
	log         zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(gameService *service.GameService, questions *repository.QuestionRepository, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		gameService: gameService,
		questions:   questions,
		log:         log.With().Str("component", "session_handler").Logger(),
	}
}

// CreateSession godoc
// POST /api/v1/admin/sessions
// Creates a session from the supplied question list, or from the configured
// default question file when the list is empty.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions := req.Questions
	if len(questions) == 0 {
		loaded, err := h.questions.LoadDefault()
		if err != nil {
			h.log.Error().Err(err).Msg("Default question file unavailable")
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
			return
		}
		questions = loaded
	}

	session, err := h.gameService.CreateSession(questions)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
			return
		}
		h.log.Error().Err(err).Msg("Session creation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":             session.ID,
		"pin":            session.Pin,
		"question_count": len(session.Questions),
	})
}

// ListSessions godoc
// GET /api/v1/admin/sessions
// Lists every live session.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"sessions": h.gameService.ListSessions()})
}

// DeleteSession godoc
// DELETE /api/v1/admin/sessions/:id
// Removes a session and its durable record.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	existed, err := h.gameService.DeleteSession(c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Str("session_id", c.Param("id")).Msg("Session delete failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !existed {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// JoinSession godoc
// POST /api/v1/sessions/join
// Registers a player on a live session by pin and returns their identity.
func (h *SessionHandler) JoinSession(c *gin.Context) {
	var req model.JoinSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	player, err := h.gameService.JoinSession(req.Pin, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameNotAllowed):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNameNotAllowed)
		case errors.Is(err, repository.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			h.log.Error().Err(err).Str("pin", req.Pin).Msg("Join failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"player_id":   player.ID,
		"avatar_seed": player.AvatarSeed,
		"pin":         req.Pin,
	})
}
