package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dentaldesk/handlers"
	"dentaldesk/middleware"
	"dentaldesk/utils"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Agenda      *handlers.AgendaHandler
	Appointment *handlers.AppointmentHandler
}

// RegisterAgendaRoutes registers the day-grid and duration-bound endpoints.
func RegisterAgendaRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/agenda")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/:date", hb.Agenda.DayAgendaHandler)
		api.GET("/:date/max-duration", hb.Agenda.MaxDurationHandler)
	}
}

// RegisterAppointmentRoutes registers the appointment write path.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Appointment.CreateAppointmentHandler)
		api.GET("/:id", hb.Appointment.GetAppointmentHandler)
		api.PUT("/:id", hb.Appointment.UpdateAppointmentHandler)
		api.PATCH("/:id/cancel", hb.Appointment.CancelAppointmentHandler)
	}
}

// RegisterRoutes applies CORS and wires all route groups plus health.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	RegisterAgendaRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
