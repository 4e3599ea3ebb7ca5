package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/vitalog/internal/api"
	"github.com/terraincognita07/vitalog/internal/cli"
	"github.com/terraincognita07/vitalog/internal/config"
	"github.com/terraincognita07/vitalog/internal/db"
	"github.com/terraincognita07/vitalog/internal/logging"
	"github.com/terraincognita07/vitalog/internal/metrics"
	"github.com/terraincognita07/vitalog/internal/services"
)

const (
	shutdownTimeout       = 10 * time.Second
	rateLimiterSweepEvery = "@every 10m"
	accessLogFormat       = "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n"
)

const usage = `usage:
  vitalog [serve]
  vitalog reset-password <email>
  vitalog set-password <email>`

type command struct {
	name  string
	email string
}

var errUsage = errors.New(usage)

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "serve"}, nil
	}

	switch args[0] {
	case "serve":
		if len(args) != 1 {
			return command{}, errUsage
		}
		return command{name: "serve"}, nil
	case "reset-password", "set-password":
		if len(args) != 2 {
			return command{}, errUsage
		}
		return command{name: args[0], email: args[1]}, nil
	default:
		return command{}, errUsage
	}
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	time.Local = cfg.Location

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	switch cmd.name {
	case "serve":
		err = serve(cfg, log)
	default:
		err = runOperatorCommand(cmd, cfg, log, os.Stdin, os.Stdout)
	}
	if err != nil {
		log.WithError(err).Fatal(cmd.name + " failed")
	}
}

func runOperatorCommand(cmd command, cfg config.Config, log *logrus.Logger, stdin *os.File, out io.Writer) error {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	users := db.NewUserRepository(database)
	ctx := context.Background()
	if cmd.name == "set-password" {
		return cli.RunSetPasswordCommand(ctx, users, cmd.email, cli.TerminalPasswordReader(stdin), out)
	}
	return cli.RunResetPasswordCommand(ctx, users, cmd.email, out)
}

func serve(cfg config.Config, log *logrus.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	collector := metrics.NewCollector()
	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:  cfg.SecretKey,
		Location:   cfg.Location,
		Logger:     log,
		Metrics:    collector,
		RateLimits: rateLimitsFromConfig(cfg),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	scheduler, err := services.NewMaintenanceScheduler(handler.SessionService(), log)
	if err != nil {
		return fmt.Errorf("scheduler init failed: %w", err)
	}
	scheduler.OnPurged(collector.RecordTokensPurged)
	if err := scheduler.Schedule(rateLimiterSweepEvery, handler.SweepRateLimiters); err != nil {
		return err
	}

	app := newApp(handler, collector, log)

	scheduler.Start()
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
		scheduler.Stop(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("vitalog listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, collector *metrics.Collector, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Vitalog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: accessLogFormat,
		Output: log.Writer(),
	}))
	app.Use(compress.New())
	app.Use(collector.Middleware())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func rateLimitsFromConfig(cfg config.Config) api.RateLimits {
	return api.RateLimits{
		Global: api.RateRule{Requests: cfg.GlobalRate.Requests, Window: cfg.GlobalRate.Window},
		Auth:   api.RateRule{Requests: cfg.AuthRate.Requests, Window: cfg.AuthRate.Window},
		Log:    api.RateRule{Requests: cfg.LogRate.Requests, Window: cfg.LogRate.Window},
		Goal:   api.RateRule{Requests: cfg.GoalRate.Requests, Window: cfg.GoalRate.Window},
	}
}
