package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dentaldesk/services/schedule"
	"dentaldesk/utils"
)

// AgendaHandler serves the day grid and the duration bound consumed by the
// booking form. A client renders the grid directly: empty cells open the
// create form at (time, room), primary cells open the edit form, and
// continuation cells are inert.
type AgendaHandler struct {
	Svc    schedule.ScheduleService
	Logger *zap.Logger
}

func NewAgendaHandler(svc schedule.ScheduleService, logger *zap.Logger) *AgendaHandler {
	return &AgendaHandler{Svc: svc, Logger: logger}
}

// DayAgendaHandler handles GET /api/agenda/:date.
func (h *AgendaHandler) DayAgendaHandler(c *gin.Context) {
	date := c.Param("date")

	grid, err := h.Svc.DayAgenda(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		h.Logger.Error("failed to build day agenda", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to build day agenda", "")
		return
	}

	c.JSON(http.StatusOK, grid)
}

// MaxDurationHandler handles GET /api/agenda/:date/max-duration.
// Query params: time (required), room (required), exclude (appointment
// being edited), duration (currently chosen value, for clamp re-validation).
func (h *AgendaHandler) MaxDurationHandler(c *gin.Context) {
	cand := schedule.Candidate{
		Date:      c.Param("date"),
		Start:     c.Query("time"),
		ExcludeID: c.Query("exclude"),
	}
	room, err := strconv.Atoi(c.Query("room"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room", c.Query("room"))
		return
	}
	cand.Room = room

	chosen := 0
	if v := c.Query("duration"); v != "" {
		if chosen, err = strconv.Atoi(v); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid duration", v)
			return
		}
	}

	bound, err := h.Svc.DurationBound(c.Request.Context(), cand, chosen)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNoSafeDuration):
			// No valid ceiling at this start time; the form must block
			// submission or move the start.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrInvalidInput):
			utils.JSONError(c, http.StatusBadRequest, "invalid candidate", err.Error())
		default:
			h.Logger.Error("failed to compute duration bound", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to compute duration bound", "")
		}
		return
	}

	c.JSON(http.StatusOK, bound)
}
