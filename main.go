package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"event-api/core/config"
	"event-api/core/database"
	"event-api/core/logger"
	"event-api/core/server"
	"event-api/modules/auth/dto"
	authRepository "event-api/modules/auth/repository"
	authService "event-api/modules/auth/service"
	authValidator "event-api/modules/auth/validator"

	"github.com/urfave/cli/v2"
)

// @title Event API
// @version 1.0
// @description Event management backend with user accounts and event participations.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	app := &cli.App{
		Name:  "event-api",
		Usage: "event management backend",
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return logger.Init(cfg.App.Env, cfg.App.LogLevel)
		},
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "worker",
				Usage:  "process background notification tasks",
				Action: worker,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrate,
			},
			{
				Name:  "create-staff",
				Usage: "create a staff account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"STAFF_PASSWORD"}},
				},
				Action: createStaff,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("main:Run", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, config.Get())
}

func worker(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.RunWorker(ctx, config.Get())
}

func migrate(c *cli.Context) error {
	return database.RunMigrations(config.Get().Database.URL())
}

func createStaff(c *cli.Context) error {
	req := &dto.RegisterRequest{
		Email:     c.String("email"),
		FirstName: c.String("first-name"),
		LastName:  c.String("last-name"),
		Password:  c.String("password"),
	}
	if result := authValidator.ValidateRegisterRequest(req); result.HasError() {
		return fmt.Errorf("invalid staff account: %s", formatFieldErrors(result))
	}

	db, err := database.InitDB(config.Get().Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// only the user store is touched here
	svc := authService.NewAuthService(authRepository.NewAuthRepository(db), nil, nil)

	user, appErr := svc.CreateStaff(c.Context, req)
	if appErr != nil {
		if appErr.Details != nil {
			return fmt.Errorf("%s: %v", appErr.Message, appErr.Details)
		}
		return appErr
	}
	logger.Info("main:CreateStaff:Created", "user_id", user.ID, "email", user.Email)
	return nil
}

func formatFieldErrors(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fields[k], " "))
	}
	return strings.Join(parts, "; ")
}
