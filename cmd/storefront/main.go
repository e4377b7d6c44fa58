package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	internalcli "github.com/adyen/storefront/internal/cli"
	"github.com/adyen/storefront/internal/config"
)

var version = "0.1.0"

// newLogger builds the process logger: JSON in production, console output
// at debug level
func newLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if logCfg.Level == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(logCfg.Level)
	return cfg.Build()
}

// RunCommand returns the run command
func RunCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the purchase scenario against a storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "storefront base URL (STOREFRONT_URL)"},
			&cli.StringFlag{Name: "driver", Usage: "browser driver: playwright or chromedp (BROWSER_DRIVER)"},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser headless (BROWSER_HEADLESS)"},
			&cli.DurationFlag{Name: "timeout", Usage: "explicit wait timeout (WAIT_TIMEOUT)"},
			&cli.StringFlag{Name: "artifacts", Usage: "directory for the spreadsheet and error artifacts (ARTIFACTS_DIR)"},
			&cli.BoolFlag{Name: "install", Usage: "download the playwright browsers first"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadScenarioConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid scenario configuration: %w", err)
			}
			if c.IsSet("url") {
				cfg.BaseURL = c.String("url")
			}
			if c.IsSet("driver") {
				cfg.Driver = c.String("driver")
			}
			if c.IsSet("headless") {
				cfg.Headless = c.Bool("headless")
			}
			if c.IsSet("timeout") {
				cfg.WaitTimeout = c.Duration("timeout")
			}
			if c.IsSet("artifacts") {
				cfg.ArtifactsDir = c.String("artifacts")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := internalcli.RunScenario(ctx, cfg, internalcli.RunOptions{
				InstallBrowsers: c.Bool("install"),
			}, logger)
			if report != nil {
				fmt.Fprintf(c.App.Writer, "run %s: %d products, completed %v in %s\n",
					report.RunID, len(report.Products), report.Completed, report.Duration.Round(time.Millisecond))
				if report.Spreadsheet != "" {
					fmt.Fprintf(c.App.Writer, "products written to %s\n", report.Spreadsheet)
				}
			}
			return err
		},
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve the local fixture storefront",
		Action: func(c *cli.Context) error {
			deps, err := internalcli.BuildFixtureDependencies(config.LoadServerConfig(os.Getenv), logger)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	logCfg, err := config.LoadLogConfig(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := newLogger(logCfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:    "storefront",
		Usage:   "Storefront purchase scenario runner",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(logger),
			FixtureCommand(logger),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
