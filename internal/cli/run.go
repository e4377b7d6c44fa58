package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/browser"
	"github.com/adyen/storefront/internal/config"
	"github.com/adyen/storefront/internal/scenario"
)

// RunOptions holds run settings that do not come from the environment
type RunOptions struct {
	// InstallBrowsers downloads the playwright browsers before launching.
	InstallBrowsers bool
}

// RunScenario launches a browser, runs the purchase journey against
// cfg.BaseURL and tears the browser down again
func RunScenario(ctx context.Context, cfg *config.ScenarioConfig, opts RunOptions, logger *zap.Logger) (*scenario.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	selectors, err := scenario.DefaultSelectors(cfg.MenuLabel, cfg.SubmenuLabel)
	if err != nil {
		return nil, fmt.Errorf("invalid menu labels: %w", err)
	}

	logger.Info("Launching browser",
		zap.String("driver", cfg.Driver),
		zap.Bool("headless", cfg.Headless),
	)
	mgr, err := browser.Launch(browser.Options{
		Driver:        cfg.Driver,
		Headless:      cfg.Headless,
		Install:       opts.InstallBrowsers,
		ActionTimeout: cfg.WaitTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}()

	runner := scenario.NewRunner(scenario.Dependencies{
		Session:   mgr.Session,
		Wait:      browser.NewWait(mgr.Session, cfg.WaitTimeout, cfg.PollInterval),
		Pointer:   mgr.Pointer,
		Selectors: selectors,
		Logger:    logger,
	}, scenario.Config{
		BaseURL:      cfg.BaseURL,
		ArtifactsDir: cfg.ArtifactsDir,
	})
	return runner.Run(ctx)
}
