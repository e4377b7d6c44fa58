// Package scenario runs the storefront purchase journey: menu navigation,
// listing capture, product configuration, cart review and guest checkout.
// Steps run strictly in order against one page and the first failure aborts
// the run.
package scenario

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/browser"
	"github.com/adyen/storefront/internal/workbook"
)

// Step names, in execution order
const (
	StepNavigate = "menu navigation"
	StepListing  = "listing capture"
	StepDetail   = "detail interaction"
	StepCart     = "cart verification"
	StepCheckout = "checkout completion"
)

// Quantities the journey sets on the product page and then in the cart
const (
	DetailQuantity  = "2"
	UpdatedQuantity = "3"
)

// ScreenshotFile is written when checkout times out
const ScreenshotFile = "checkout_error.png"

// GuestAddress holds the literal checkout form values
type GuestAddress struct {
	FirstName string
	LastName  string
	Email     string
	Street    string
	City      string
	Region    string
	Postcode  string
	Telephone string
}

// DefaultGuestAddress returns the fixed guest used by the journey
func DefaultGuestAddress() GuestAddress {
	return GuestAddress{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Street:    "123 Test St",
		City:      "Testville",
		Region:    "California",
		Postcode:  "12345",
		Telephone: "5555555555",
	}
}

// Config holds the per-run inputs
type Config struct {
	BaseURL      string
	ArtifactsDir string
	Guest        GuestAddress
}

// Dependencies are the collaborators shared by every step. The caller owns
// the browser session and tears it down.
type Dependencies struct {
	Session   browser.Session
	Wait      *browser.Wait
	Pointer   browser.Pointer
	Selectors Selectors
	Logger    *zap.Logger
}

// Step is one named unit of the journey
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Report summarises a run
type Report struct {
	RunID       string
	Products    []workbook.ProductRecord
	Spreadsheet string
	Completed   []string
	Failed      string
	Artifacts   []string
	Duration    time.Duration
}

// Runner executes the journey
type Runner struct {
	session browser.Session
	wait    *browser.Wait
	pointer browser.Pointer
	sel     Selectors
	cfg     Config
	logger  *zap.Logger
	runID   string

	products  []workbook.ProductRecord
	artifacts []string
}

// NewRunner creates a runner. A nil logger discards output; an empty guest
// address falls back to DefaultGuestAddress.
func NewRunner(deps Dependencies, cfg Config) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Guest == (GuestAddress{}) {
		cfg.Guest = DefaultGuestAddress()
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = "."
	}

	runID := uuid.New().String()
	return &Runner{
		session: deps.Session,
		wait:    deps.Wait,
		pointer: deps.Pointer,
		sel:     deps.Selectors,
		cfg:     cfg,
		logger:  logger.With(zap.String("run_id", runID)),
		runID:   runID,
	}
}

// RunID identifies this runner's log lines
func (r *Runner) RunID() string {
	return r.runID
}

// Products returns the records captured from the listing page
func (r *Runner) Products() []workbook.ProductRecord {
	return append([]workbook.ProductRecord(nil), r.products...)
}

// SpreadsheetPath is where the listing capture writes its workbook
func (r *Runner) SpreadsheetPath() string {
	return filepath.Join(r.cfg.ArtifactsDir, workbook.FileName)
}

// Steps returns the journey in execution order
func (r *Runner) Steps() []Step {
	return []Step{
		{Name: StepNavigate, Run: r.NavigateMenu},
		{Name: StepListing, Run: func(ctx context.Context) error {
			_, err := r.CaptureListing(ctx)
			return err
		}},
		{Name: StepDetail, Run: r.ConfigureAndAddToCart},
		{Name: StepCart, Run: r.ReviewCart},
		{Name: StepCheckout, Run: r.Checkout},
	}
}

// Run executes every step in order and stops at the first failure, which
// is returned as a *StepError.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: r.runID}

	r.logger.Info("Starting storefront scenario", zap.String("url", r.cfg.BaseURL))

	var runErr error
	for _, step := range r.Steps() {
		if err := step.Run(ctx); err != nil {
			report.Failed = step.Name
			runErr = &StepError{Step: step.Name, Err: err}
			break
		}
		report.Completed = append(report.Completed, step.Name)
	}

	report.Products = r.Products()
	report.Artifacts = append([]string(nil), r.artifacts...)
	if len(r.products) > 0 || containsStep(report.Completed, StepListing) {
		report.Spreadsheet = r.SpreadsheetPath()
	}
	report.Duration = time.Since(start)

	if runErr != nil {
		r.logger.Error("Storefront scenario failed",
			zap.String("step", report.Failed),
			zap.Strings("completed", report.Completed),
			zap.Duration("duration", report.Duration),
			zap.Error(runErr),
		)
		return report, runErr
	}

	r.logger.Info("Storefront scenario completed",
		zap.Int("products", len(report.Products)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func containsStep(steps []string, name string) bool {
	for _, s := range steps {
		if s == name {
			return true
		}
	}
	return false
}
