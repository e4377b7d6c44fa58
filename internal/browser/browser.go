// Package browser defines the collaborators the storefront scenario drives:
// a page session, its elements, a pointer-action simulator and an explicit
// wait. Playwright and chromedp backends implement them.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Errors reported by sessions and waits
var (
	ErrElementNotFound = errors.New("element not found")
	ErrStaleElement    = errors.New("element is no longer attached to the page")
	ErrWaitTimeout     = errors.New("wait timed out")
)

// Session is the active browser page
type Session interface {
	Navigate(ctx context.Context, url string) error
	URL(ctx context.Context) (string, error)
	PageSource(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, path string) error
	// Find returns the first element matching loc, or ErrElementNotFound.
	Find(ctx context.Context, loc Locator) (Element, error)
	// FindAll returns every element matching loc in document order. An
	// empty result is not an error.
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
}

// Element is a handle to a node on the current page. Handles go stale after
// navigation.
type Element interface {
	Text(ctx context.Context) (string, error)
	Value(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Visible(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	Type(ctx context.Context, text string) error
	Find(ctx context.Context, loc Locator) (Element, error)
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	BoundingBox(ctx context.Context) (Rect, error)
	ScrollIntoView(ctx context.Context) error
}

// Pointer simulates mouse gestures
type Pointer interface {
	Hover(ctx context.Context, el Element) error
	MoveAndClick(ctx context.Context, el Element) error
}

// Rect is an element's bounding box in CSS pixels
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the box
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// WaitTimeoutError reports a condition that did not hold within the timeout
type WaitTimeoutError struct {
	Condition string
	Locator   Locator
	Timeout   time.Duration
	// LastErr is the last "not yet" error seen while polling, if any.
	LastErr error
}

func (e *WaitTimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s of %s", e.Timeout, e.Condition, e.Locator)
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	return msg
}

// Unwrap reports ErrWaitTimeout
func (e *WaitTimeoutError) Unwrap() error { return ErrWaitTimeout }

// Is also matches ErrElementNotFound when the condition was waiting for an
// element to show up at all.
func (e *WaitTimeoutError) Is(target error) bool {
	if target == ErrElementNotFound {
		return e.Condition == conditionVisibility || e.Condition == conditionPresence
	}
	return false
}

func isNotYet(err error) bool {
	return errors.Is(err, ErrElementNotFound) || errors.Is(err, ErrStaleElement)
}
