package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightSession adapts a playwright page to Session
type PlaywrightSession struct {
	page playwright.Page
}

// NewPlaywrightSession wraps an open page
func NewPlaywrightSession(page playwright.Page) *PlaywrightSession {
	return &PlaywrightSession{page: page}
}

// Page returns the underlying playwright page
func (s *PlaywrightSession) Page() playwright.Page {
	return s.page
}

func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *PlaywrightSession) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.URL(), nil
}

func (s *PlaywrightSession) PageSource(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Content()
}

func (s *PlaywrightSession) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to save screenshot %s: %w", path, err)
	}
	return nil
}

func (s *PlaywrightSession) Find(ctx context.Context, loc Locator) (Element, error) {
	els, err := s.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (s *PlaywrightSession) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := s.page.QuerySelectorAll(playwrightSelector(loc))
	if err != nil {
		return nil, playwrightError(err)
	}
	return wrapHandles(handles), nil
}

// playwrightSelector maps a Locator onto playwright's selector engines
func playwrightSelector(loc Locator) string {
	switch loc.By {
	case StrategyXPath:
		return "xpath=" + loc.Value
	case StrategyID:
		return "id=" + loc.Value
	default:
		css, _ := loc.CSS()
		return "css=" + css
	}
}

// playwrightError maps detached-node failures onto ErrStaleElement
func playwrightError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "not attached") || strings.Contains(msg, "Execution context was destroyed") {
		return fmt.Errorf("%w: %v", ErrStaleElement, err)
	}
	return err
}

func wrapHandles(handles []playwright.ElementHandle) []Element {
	els := make([]Element, 0, len(handles))
	for _, h := range handles {
		els = append(els, &playwrightElement{handle: h})
	}
	return els
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.handle.InnerText()
	if err != nil {
		return "", playwrightError(err)
	}
	return strings.TrimSpace(text), nil
}

func (e *playwrightElement) Value(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, err := e.handle.InputValue()
	return value, playwrightError(err)
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, err := e.handle.GetAttribute(name)
	return value, playwrightError(err)
}

func (e *playwrightElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := e.handle.IsVisible()
	return visible, playwrightError(err)
}

func (e *playwrightElement) Enabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	enabled, err := e.handle.IsEnabled()
	return enabled, playwrightError(err)
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightError(e.handle.Click())
}

func (e *playwrightElement) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightError(e.handle.Fill(""))
}

func (e *playwrightElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightError(e.handle.Type(text))
}

func (e *playwrightElement) Find(ctx context.Context, loc Locator) (Element, error) {
	els, err := e.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (e *playwrightElement) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := e.handle.QuerySelectorAll(playwrightSelector(loc))
	if err != nil {
		return nil, playwrightError(err)
	}
	return wrapHandles(handles), nil
}

func (e *playwrightElement) BoundingBox(ctx context.Context) (Rect, error) {
	if err := ctx.Err(); err != nil {
		return Rect{}, err
	}
	box, err := e.handle.BoundingBox()
	if err != nil {
		return Rect{}, playwrightError(err)
	}
	if box == nil {
		return Rect{}, fmt.Errorf("%w: element has no bounding box", ErrStaleElement)
	}
	return Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *playwrightElement) ScrollIntoView(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightError(e.handle.ScrollIntoViewIfNeeded())
}

// PlaywrightPointer drives the page mouse
type PlaywrightPointer struct {
	page playwright.Page
}

// NewPlaywrightPointer creates a pointer for page
func NewPlaywrightPointer(page playwright.Page) *PlaywrightPointer {
	return &PlaywrightPointer{page: page}
}

// Hover moves the mouse to the centre of el
func (p *PlaywrightPointer) Hover(ctx context.Context, el Element) error {
	x, y, err := pointerTarget(ctx, el)
	if err != nil {
		return err
	}
	return p.page.Mouse().Move(x, y)
}

// MoveAndClick moves to the centre of el and clicks there
func (p *PlaywrightPointer) MoveAndClick(ctx context.Context, el Element) error {
	x, y, err := pointerTarget(ctx, el)
	if err != nil {
		return err
	}
	if err := p.page.Mouse().Move(x, y); err != nil {
		return err
	}
	return p.page.Mouse().Click(x, y)
}

func pointerTarget(ctx context.Context, el Element) (float64, float64, error) {
	if err := el.ScrollIntoView(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to scroll to element: %w", err)
	}
	box, err := el.BoundingBox(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to locate element box: %w", err)
	}
	x, y := box.Center()
	return x, y, nil
}
