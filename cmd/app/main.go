package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe/api"
	"cafe/cmd"
	httpin "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/out/postgres/migrations"
	"cafe/internal/adapters/out/rabbitmq"
	"cafe/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "cafe",
		Usage: "cafe order service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before the environment is read"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and background jobs",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Value: true, Usage: "apply pending migrations on start"},
				},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1},
						},
						Action: migrateDown,
					},
					{Name: "version", Usage: "print the current schema version", Action: migrateVersion},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("cafe: %v", err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if c.Bool("migrate") {
		if err = migrations.Up(cfg.DSN()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	var publisher ports.EventPublisher
	if cfg.RabbitMQURL != "" {
		conn, dialErr := rabbitmq.Dial(cfg.RabbitMQURL)
		if dialErr != nil {
			return fmt.Errorf("connect to rabbitmq: %w", dialErr)
		}
		defer conn.Close()

		p, pubErr := rabbitmq.NewEventPublisher(conn.Channel(), cfg.RabbitMQExchange)
		if pubErr != nil {
			return fmt.Errorf("create publisher: %w", pubErr)
		}
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL is empty, outbox relay disabled")
	}

	root := cmd.NewCompositionRoot(cfg, gormDB, publisher)

	doc, err := httpin.LoadOpenAPI(api.OpenAPI)
	if err != nil {
		return err
	}
	server := httpin.NewServer(root.CreateHTTPHandlers(), logger)
	e, err := httpin.NewRouter(server, root.Users(), doc, logger)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", cfg.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			errCh <- startErr
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrateUp(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	return migrations.Up(cfg.DSN())
}

func migrateDown(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	return migrations.Down(cfg.DSN(), c.Int("steps"))
}

func migrateVersion(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	version, dirty, err := migrations.Version(cfg.DSN())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "version %d, dirty %t\n", version, dirty)
	return nil
}
