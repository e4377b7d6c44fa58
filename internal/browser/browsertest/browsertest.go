// Package browsertest provides an in-memory page for exercising code that
// drives a browser.Session without launching a browser.
package browsertest

import (
	"context"
	"fmt"
	"os"

	"github.com/adyen/storefront/internal/browser"
)

var (
	_ browser.Session = (*Page)(nil)
	_ browser.Element = (*Element)(nil)
	_ browser.Pointer = (*Pointer)(nil)
)

// PNG is written by Screenshot
var PNG = []byte("\x89PNG\r\n\x1a\n")

// Page is a fake browser.Session. Elements are registered per locator and
// returned in registration order.
type Page struct {
	CurrentURL string
	Markup     string

	Navigations []string
	Screenshots []string

	// OnNavigate runs after every Navigate call.
	OnNavigate func(url string)
	// ScreenshotErr, when set, fails Screenshot.
	ScreenshotErr error

	elements map[string][]*Element
}

// NewPage creates an empty page
func NewPage() *Page {
	return &Page{
		Markup:   "<html><head><title>fake</title></head><body></body></html>",
		elements: make(map[string][]*Element),
	}
}

// Add registers els under loc
func (p *Page) Add(loc browser.Locator, els ...*Element) {
	p.elements[loc.String()] = append(p.elements[loc.String()], els...)
}

// Set replaces whatever is registered under loc
func (p *Page) Set(loc browser.Locator, els ...*Element) {
	p.elements[loc.String()] = els
}

// Remove detaches everything registered under loc
func (p *Page) Remove(loc browser.Locator) {
	for _, el := range p.elements[loc.String()] {
		el.Detached = true
	}
	delete(p.elements, loc.String())
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.CurrentURL = url
	p.Navigations = append(p.Navigations, url)
	if p.OnNavigate != nil {
		p.OnNavigate(url)
	}
	return nil
}

func (p *Page) URL(ctx context.Context) (string, error) {
	return p.CurrentURL, ctx.Err()
}

func (p *Page) PageSource(ctx context.Context) (string, error) {
	return p.Markup, ctx.Err()
}

func (p *Page) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ScreenshotErr != nil {
		return p.ScreenshotErr
	}
	p.Screenshots = append(p.Screenshots, path)
	return os.WriteFile(path, PNG, 0o644)
}

func (p *Page) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	return first(ctx, p.elements, loc)
}

func (p *Page) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	return all(ctx, p.elements, loc)
}

// Element is a fake browser.Element
type Element struct {
	Label      string
	TextValue  string
	InputValue string
	Attrs      map[string]string
	Hidden     bool
	Disabled   bool
	Detached   bool
	Box        browser.Rect

	// HiddenPolls makes Visible report false for that many calls before
	// falling back to Hidden.
	HiddenPolls int

	OnClick func()
	OnType  func(text string)

	Clicks int
	Typed  []string

	children map[string][]*Element
}

// NewElement creates a visible element with the given text
func NewElement(label, text string) *Element {
	return &Element{Label: label, TextValue: text, Box: browser.Rect{Width: 10, Height: 10}}
}

// Add registers children under loc
func (e *Element) Add(loc browser.Locator, els ...*Element) *Element {
	if e.children == nil {
		e.children = make(map[string][]*Element)
	}
	e.children[loc.String()] = append(e.children[loc.String()], els...)
	return e
}

func (e *Element) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Detached {
		return fmt.Errorf("%w: %s", browser.ErrStaleElement, e.Label)
	}
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	if err := e.check(ctx); err != nil {
		return "", err
	}
	return e.TextValue, nil
}

func (e *Element) Value(ctx context.Context) (string, error) {
	if err := e.check(ctx); err != nil {
		return "", err
	}
	return e.InputValue, nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	if err := e.check(ctx); err != nil {
		return "", err
	}
	return e.Attrs[name], nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	if err := e.check(ctx); err != nil {
		return false, err
	}
	if e.HiddenPolls > 0 {
		e.HiddenPolls--
		return false, nil
	}
	return !e.Hidden, nil
}

func (e *Element) Enabled(ctx context.Context) (bool, error) {
	if err := e.check(ctx); err != nil {
		return false, err
	}
	return !e.Disabled, nil
}

func (e *Element) Click(ctx context.Context) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	e.InputValue = ""
	return nil
}

func (e *Element) Type(ctx context.Context, text string) error {
	if err := e.check(ctx); err != nil {
		return err
	}
	e.InputValue += text
	e.Typed = append(e.Typed, text)
	if e.OnType != nil {
		e.OnType(text)
	}
	return nil
}

func (e *Element) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	if err := e.check(ctx); err != nil {
		return nil, err
	}
	return first(ctx, e.children, loc)
}

func (e *Element) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	if err := e.check(ctx); err != nil {
		return nil, err
	}
	return all(ctx, e.children, loc)
}

func (e *Element) BoundingBox(ctx context.Context) (browser.Rect, error) {
	if err := e.check(ctx); err != nil {
		return browser.Rect{}, err
	}
	return e.Box, nil
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	return e.check(ctx)
}

// Pointer is a fake browser.Pointer recording the elements it touched
type Pointer struct {
	Hovered []browser.Element
	Clicked []browser.Element

	// OnHover runs after an element is hovered.
	OnHover func(el browser.Element)
}

func (p *Pointer) Hover(ctx context.Context, el browser.Element) error {
	if err := el.ScrollIntoView(ctx); err != nil {
		return err
	}
	p.Hovered = append(p.Hovered, el)
	if p.OnHover != nil {
		p.OnHover(el)
	}
	return nil
}

func (p *Pointer) MoveAndClick(ctx context.Context, el browser.Element) error {
	if err := p.Hover(ctx, el); err != nil {
		return err
	}
	p.Clicked = append(p.Clicked, el)
	return el.Click(ctx)
}

func first(ctx context.Context, m map[string][]*Element, loc browser.Locator) (browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	els := m[loc.String()]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	return els[0], nil
}

func all(ctx context.Context, m map[string][]*Element, loc browser.Locator) ([]browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	els := m[loc.String()]
	out := make([]browser.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}
