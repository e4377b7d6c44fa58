package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/playwright-community/playwright-go"
)

// Supported drivers
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

var (
	_ Session = (*PlaywrightSession)(nil)
	_ Session = (*ChromedpSession)(nil)
	_ Pointer = (*PlaywrightPointer)(nil)
	_ Pointer = (*ChromedpPointer)(nil)
)

// Options configures Launch
type Options struct {
	Driver   string
	Headless bool
	// Install downloads the playwright browsers before starting.
	Install bool
	// ActionTimeout bounds a single playwright action such as a click.
	ActionTimeout time.Duration
}

// Manager owns a launched browser and the collaborators bound to its page
type Manager struct {
	Session Session
	Pointer Pointer

	closers []func() error
}

// Launch starts a browser with the configured driver and opens one page
func Launch(opts Options) (*Manager, error) {
	switch opts.Driver {
	case "", DriverPlaywright:
		return launchPlaywright(opts)
	case DriverChromedp:
		return launchChromedp(opts)
	default:
		return nil, fmt.Errorf("unsupported browser driver %q", opts.Driver)
	}
}

func launchPlaywright(opts Options) (*Manager, error) {
	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{
			Browsers: []string{"chromium"},
		}); err != nil {
			return nil, fmt.Errorf("install pw failed: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start pw failed: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	page, err := b.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 900},
	})
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if opts.ActionTimeout > 0 {
		page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	}

	return &Manager{
		Session: NewPlaywrightSession(page),
		Pointer: NewPlaywrightPointer(page),
		closers: []func() error{
			func() error { return b.Close() },
			pw.Stop,
		},
	}, nil
}

func launchChromedp(opts Options) (*Manager, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tab, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser.
	if err := chromedp.Run(tab); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	session := NewChromedpSession(tab)
	return &Manager{
		Session: session,
		Pointer: NewChromedpPointer(session),
		closers: []func() error{
			func() error { tabCancel(); return nil },
			func() error { allocCancel(); return nil },
		},
	}, nil
}

// Close tears the browser down. It returns the first error met but always
// runs every closer.
func (m *Manager) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}
