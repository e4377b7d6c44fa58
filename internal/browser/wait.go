package browser

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	conditionVisibility = "visibility"
	conditionPresence   = "presence of all elements"
	conditionText       = "text"
	conditionClickable  = "clickability"

	// DefaultPollInterval matches the usual WebDriver wait cadence
	DefaultPollInterval = 500 * time.Millisecond
)

// Condition is a predicate over page state. Check returns the matched
// elements and whether the condition holds.
type Condition struct {
	Name    string
	Locator Locator
	Check   func(ctx context.Context, s Session) ([]Element, bool, error)
}

// Wait polls conditions against a session until they hold or the timeout
// elapses
type Wait struct {
	session  Session
	timeout  time.Duration
	interval time.Duration
}

// NewWait creates a wait with the given timeout. A non-positive interval
// falls back to DefaultPollInterval.
func NewWait(session Session, timeout, interval time.Duration) *Wait {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Wait{
		session:  session,
		timeout:  timeout,
		interval: interval,
	}
}

// Timeout returns the configured timeout
func (w *Wait) Timeout() time.Duration {
	return w.timeout
}

// Until blocks until c holds and returns the elements it matched. When the
// timeout elapses first it returns a *WaitTimeoutError; cancellation of ctx
// is returned as is.
func (w *Wait) Until(ctx context.Context, c Condition) ([]Element, error) {
	deadline := time.Now().Add(w.timeout)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		els, ok, err := c.Check(ctx, w.session)
		switch {
		case err == nil && ok:
			return els, nil
		case err != nil && !isNotYet(err):
			return nil, err
		case err != nil:
			lastErr = err
		}

		if !time.Now().Before(deadline) {
			return nil, &WaitTimeoutError{
				Condition: c.Name,
				Locator:   c.Locator,
				Timeout:   w.timeout,
				LastErr:   lastErr,
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Visible waits for the first element matching loc to be displayed
func (w *Wait) Visible(ctx context.Context, loc Locator) (Element, error) {
	els, err := w.Until(ctx, VisibilityOf(loc))
	if err != nil {
		return nil, err
	}
	return els[0], nil
}

// AllPresent waits for at least one element matching loc to be attached
func (w *Wait) AllPresent(ctx context.Context, loc Locator) ([]Element, error) {
	return w.Until(ctx, PresenceOfAll(loc))
}

// TextToBe waits for the first element matching loc to have exactly text
func (w *Wait) TextToBe(ctx context.Context, loc Locator, text string) (bool, error) {
	if _, err := w.Until(ctx, TextToBe(loc, text)); err != nil {
		return false, err
	}
	return true, nil
}

// Clickable waits for the first element matching loc to be visible and
// enabled
func (w *Wait) Clickable(ctx context.Context, loc Locator) (Element, error) {
	els, err := w.Until(ctx, ElementToBeClickable(loc))
	if err != nil {
		return nil, err
	}
	return els[0], nil
}

// VisibilityOf holds when the first element matching loc is displayed
func VisibilityOf(loc Locator) Condition {
	return Condition{
		Name:    conditionVisibility,
		Locator: loc,
		Check: func(ctx context.Context, s Session) ([]Element, bool, error) {
			el, err := s.Find(ctx, loc)
			if err != nil {
				return nil, false, err
			}
			visible, err := el.Visible(ctx)
			if err != nil {
				return nil, false, err
			}
			return []Element{el}, visible, nil
		},
	}
}

// PresenceOfAll holds when at least one element matches loc
func PresenceOfAll(loc Locator) Condition {
	return Condition{
		Name:    conditionPresence,
		Locator: loc,
		Check: func(ctx context.Context, s Session) ([]Element, bool, error) {
			els, err := s.FindAll(ctx, loc)
			if err != nil {
				return nil, false, err
			}
			return els, len(els) > 0, nil
		},
	}
}

// TextToBe holds when the trimmed text of the first element matching loc
// equals text
func TextToBe(loc Locator, text string) Condition {
	return Condition{
		Name:    conditionText + " " + `"` + text + `"`,
		Locator: loc,
		Check: func(ctx context.Context, s Session) ([]Element, bool, error) {
			el, err := s.Find(ctx, loc)
			if err != nil {
				return nil, false, err
			}
			got, err := el.Text(ctx)
			if err != nil {
				return nil, false, err
			}
			return []Element{el}, strings.TrimSpace(got) == text, nil
		},
	}
}

// ElementToBeClickable holds when the first element matching loc is
// displayed and enabled
func ElementToBeClickable(loc Locator) Condition {
	return Condition{
		Name:    conditionClickable,
		Locator: loc,
		Check: func(ctx context.Context, s Session) ([]Element, bool, error) {
			el, err := s.Find(ctx, loc)
			if err != nil {
				return nil, false, err
			}
			visible, err := el.Visible(ctx)
			if err != nil || !visible {
				return nil, false, err
			}
			enabled, err := el.Enabled(ctx)
			if err != nil {
				return nil, false, err
			}
			return []Element{el}, enabled, nil
		},
	}
}

// IsTimeout reports whether err came from a wait running out of time
func IsTimeout(err error) bool {
	return errors.Is(err, ErrWaitTimeout)
}
