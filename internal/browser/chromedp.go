package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
)

const (
	jsVisible = `function() {
		const r = this.getBoundingClientRect();
		const s = window.getComputedStyle(this);
		return r.width > 0 && r.height > 0 && s.visibility !== 'hidden' && s.display !== 'none';
	}`
	jsEnabled = `function() { return !this.disabled; }`
	jsText    = `function() { return (this.innerText || this.textContent || '').trim(); }`
	jsValue   = `function() { return this.value === undefined ? '' : String(this.value); }`
	jsClear   = `function() {
		this.value = '';
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
	}`
	jsAttr = `function(name) { const v = this.getAttribute(name); return v === null ? '' : v; }`
)

// ChromedpSession adapts a chromedp tab context to Session. All actions run
// on the tab context; the ctx passed to each method only gates entry.
type ChromedpSession struct {
	tab context.Context
}

// NewChromedpSession wraps a context created by chromedp.NewContext
func NewChromedpSession(tab context.Context) *ChromedpSession {
	return &ChromedpSession{tab: tab}
}

func (s *ChromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedpError(chromedp.Run(s.tab, actions...))
}

func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *ChromedpSession) URL(ctx context.Context) (string, error) {
	var url string
	err := s.run(ctx, chromedp.Location(&url))
	return url, err
}

func (s *ChromedpSession) PageSource(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (s *ChromedpSession) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to save screenshot %s: %w", path, err)
	}
	return nil
}

func (s *ChromedpSession) Find(ctx context.Context, loc Locator) (Element, error) {
	els, err := s.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (s *ChromedpSession) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	var nodes []*cdp.Node
	var query chromedp.QueryAction
	if css, ok := loc.CSS(); ok {
		query = chromedp.Nodes(css, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))
	} else {
		query = chromedp.Nodes(loc.Value, &nodes, chromedp.BySearch, chromedp.AtLeast(0))
	}
	if err := s.run(ctx, query); err != nil {
		return nil, err
	}
	return s.wrap(nodes), nil
}

func (s *ChromedpSession) wrap(nodes []*cdp.Node) []Element {
	els := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &chromedpElement{session: s, node: n})
	}
	return els
}

// chromedpError maps detached-node failures onto ErrStaleElement
func chromedpError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "No node with given id") ||
		strings.Contains(msg, "Could not find node") ||
		strings.Contains(msg, "Cannot find context") {
		return fmt.Errorf("%w: %v", ErrStaleElement, err)
	}
	return err
}

type chromedpElement struct {
	session *ChromedpSession
	node    *cdp.Node
}

func (e *chromedpElement) call(ctx context.Context, fn string, res interface{}, args ...interface{}) error {
	return e.session.run(ctx, chromedp.ActionFunc(func(tab context.Context) error {
		return chromedp.CallFunctionOnNode(tab, e.node, fn, res, args...)
	}))
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.call(ctx, jsText, &text)
	return text, err
}

func (e *chromedpElement) Value(ctx context.Context) (string, error) {
	var value string
	err := e.call(ctx, jsValue, &value)
	return value, err
}

func (e *chromedpElement) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := e.call(ctx, jsAttr, &value, name)
	return value, err
}

func (e *chromedpElement) Visible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.call(ctx, jsVisible, &visible)
	return visible, err
}

func (e *chromedpElement) Enabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := e.call(ctx, jsEnabled, &enabled)
	return enabled, err
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.session.run(ctx, chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) Clear(ctx context.Context) error {
	return e.call(ctx, jsClear, nil)
}

func (e *chromedpElement) Type(ctx context.Context, text string) error {
	return e.session.run(ctx, chromedp.KeyEventNode(e.node, text))
}

func (e *chromedpElement) Find(ctx context.Context, loc Locator) (Element, error) {
	els, err := e.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

// FindAll only supports locators expressible in CSS; chromedp scopes
// searches to a node through querySelectorAll.
func (e *chromedpElement) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	css, ok := loc.CSS()
	if !ok {
		return nil, fmt.Errorf("nested lookup of %s is not supported by chromedp", loc)
	}
	var nodes []*cdp.Node
	if err := e.session.run(ctx, chromedp.Nodes(css, &nodes,
		chromedp.ByQueryAll, chromedp.FromNode(e.node), chromedp.AtLeast(0))); err != nil {
		return nil, err
	}
	return e.session.wrap(nodes), nil
}

func (e *chromedpElement) BoundingBox(ctx context.Context) (Rect, error) {
	var rect Rect
	err := e.session.run(ctx, chromedp.ActionFunc(func(tab context.Context) error {
		box, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(tab)
		if err != nil {
			return err
		}
		q := box.Border
		if len(q) < 8 {
			return fmt.Errorf("%w: empty box model", ErrStaleElement)
		}
		rect = Rect{X: q[0], Y: q[1], Width: q[2] - q[0], Height: q[5] - q[1]}
		return nil
	}))
	return rect, err
}

func (e *chromedpElement) ScrollIntoView(ctx context.Context) error {
	return e.session.run(ctx, dom.ScrollIntoViewIfNeeded().WithNodeID(e.node.NodeID))
}

// ChromedpPointer dispatches raw mouse events on a chromedp tab
type ChromedpPointer struct {
	session *ChromedpSession
}

// NewChromedpPointer creates a pointer for session
func NewChromedpPointer(session *ChromedpSession) *ChromedpPointer {
	return &ChromedpPointer{session: session}
}

// Hover moves the mouse to the centre of el
func (p *ChromedpPointer) Hover(ctx context.Context, el Element) error {
	x, y, err := pointerTarget(ctx, el)
	if err != nil {
		return err
	}
	return p.session.run(ctx, chromedp.MouseEvent(input.MouseMoved, x, y))
}

// MoveAndClick moves to the centre of el and clicks there
func (p *ChromedpPointer) MoveAndClick(ctx context.Context, el Element) error {
	x, y, err := pointerTarget(ctx, el)
	if err != nil {
		return err
	}
	return p.session.run(ctx,
		chromedp.MouseEvent(input.MouseMoved, x, y),
		chromedp.MouseClickXY(x, y),
	)
}
