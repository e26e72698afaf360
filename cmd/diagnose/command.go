package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/blueexport/blueexport/backend/go-services/internal/config"
	"github.com/blueexport/blueexport/backend/go-services/internal/diagnostics"
	"github.com/blueexport/blueexport/backend/go-services/internal/store"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "diagnose",
		Usage: "Print the backend diagnostic report without starting the API",
		Description: `Connects to the configured database exactly like the API does and prints
the report served on GET /test as JSON on stdout.

Settings come from the environment (and ENV_FILE) unless overridden by flags.

# Examples

Check the configured database:
  diagnose

Use it as a container health check:
  diagnose --fail-on-error --timeout 5s`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "Override DATABASE_URL",
			},
			&cli.StringFlag{
				Name:  "database-name",
				Usage: "Override DATABASE_NAME",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Upper bound for connecting and running all checks",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status when the database is not connected",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(cfg.LogLevel)
			if cmd.IsSet("database-url") {
				cfg.Database.URL = cmd.String("database-url")
			}
			if cmd.IsSet("database-name") {
				cfg.Database.Name = cmd.String("database-name")
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			db, err := store.Connect(ctx, cfg.Database)
			if err != nil {
				logger.Warnf("database unavailable: %v", err)
			}
			rep := diagnostics.NewChecker(db, cfg.Database).Run(ctx)
			if err := db.Close(context.Background()); err != nil {
				logger.Warnf("closing database: %v", err)
			}

			enc := json.NewEncoder(cmd.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if cmd.Bool("fail-on-error") && rep.ConnectionStatus != diagnostics.Connected {
				return cli.Exit("database not connected", 1)
			}
			return nil
		},
	}
}
