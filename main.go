package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tphappenings/campus-events/config"
	"github.com/tphappenings/campus-events/internal/consumer"
	"github.com/tphappenings/campus-events/internal/dto"
	"github.com/tphappenings/campus-events/internal/handler"
	"github.com/tphappenings/campus-events/internal/metrics"
	"github.com/tphappenings/campus-events/internal/middleware"
	"github.com/tphappenings/campus-events/internal/repository"
	"github.com/tphappenings/campus-events/internal/service"
	"github.com/tphappenings/campus-events/pkg/database"
	"github.com/tphappenings/campus-events/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	metrics.Register()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifyRepo := repository.NewNotifyRepository(db)

	// RabbitMQ is optional: without a URL the service runs standalone and
	// skips publishing and spot-freed notifications.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ consumer: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewNotifyConsumer(notifyRepo, eventRepo).Start(msgs)
	}

	// Services
	eventSvc := service.NewEventService(eventRepo, regRepo, notifyRepo, publisher)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, publisher)
	userSvc := service.NewUserService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	dashSvc := service.NewDashboardService(eventRepo, regRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = dto.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.RequireAuth(cfg.JWTSecret)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e, auth)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(e, auth)
	handler.NewUserHandler(userSvc, dashSvc).RegisterRoutes(e, auth)

	log.Printf("Campus Events server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
