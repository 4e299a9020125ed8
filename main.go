// File: dentaldesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dentaldesk/config"
	"dentaldesk/cron"
	"dentaldesk/database"
	appointmentRepo "dentaldesk/database/repository/appointment"
	catalogRepo "dentaldesk/database/repository/catalog"
	"dentaldesk/handlers"
	"dentaldesk/middleware"
	"dentaldesk/routes"
	"dentaldesk/services/reminder"
	"dentaldesk/services/schedule"
	"dentaldesk/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAgendaCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	// services.
	reminderService := reminder.NewAsynqReminderService()
	scheduleService := &schedule.DefaultScheduleService{
		Repo:      apptRepo,
		Cache:     utils.GetAgendaCacheClient(),
		Reminders: reminderService,
		Policy:    schedule.PolicyFromConfig(),
	}

	agendaHandler := handlers.NewAgendaHandler(scheduleService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(scheduleService, logger)

	handlerBundle := &routes.HandlerBundle{
		Agenda:      agendaHandler,
		Appointment: appointmentHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(apptRepo, catRepo)
	utils.StartHealthMonitor(utils.GetAgendaCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
