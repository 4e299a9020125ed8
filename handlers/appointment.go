package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dentaldesk/models"
	"dentaldesk/services/schedule"
	"dentaldesk/utils"
)

// AppointmentHandler exposes the appointment write path. The store performs
// the authoritative collision check at write time; a 409 here means another
// user took the slot after the client's last refresh, and the form should
// reload the day and retry.
type AppointmentHandler struct {
	Svc    schedule.ScheduleService
	Logger *zap.Logger
}

func NewAppointmentHandler(svc schedule.ScheduleService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var input models.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.CreateAppointment(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointmentHandler handles PUT /api/appointments/:id.
func (h *AppointmentHandler) UpdateAppointmentHandler(c *gin.Context) {
	var input models.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.UpdateAppointment(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointmentHandler handles PATCH /api/appointments/:id/cancel.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	if err := h.Svc.CancelAppointment(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetAppointmentHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Svc.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error":  err.Error(),
			"retry":  true,
			"reason": "slot_taken",
		})
	case errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid appointment", err.Error())
	default:
		h.Logger.Error("appointment operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "appointment operation failed", "")
	}
}

// actorFrom reads the authenticated staff identity the middleware injected.
// The scheduling core never reads ambient session storage.
func actorFrom(c *gin.Context) string {
	if v, ok := c.Get("staffID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
