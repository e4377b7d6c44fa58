package browser

import (
	"fmt"
	"strings"
)

// Strategy names how a Locator value is interpreted
type Strategy string

// Locator strategies
const (
	StrategyID    Strategy = "id"
	StrategyCSS   Strategy = "css"
	StrategyXPath Strategy = "xpath"
	StrategyName  Strategy = "name"
)

// Locator identifies one or more page elements
type Locator struct {
	By    Strategy
	Value string
}

// ByID locates elements by their id attribute
func ByID(id string) Locator { return Locator{By: StrategyID, Value: id} }

// ByCSS locates elements with a CSS selector
func ByCSS(selector string) Locator { return Locator{By: StrategyCSS, Value: selector} }

// ByXPath locates elements with an XPath expression
func ByXPath(expr string) Locator { return Locator{By: StrategyXPath, Value: expr} }

// ByName locates form controls by their name attribute
func ByName(name string) Locator { return Locator{By: StrategyName, Value: name} }

// String returns the locator as "strategy=value"
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// CSS converts the locator to a CSS selector. XPath locators cannot be
// expressed in CSS and return false.
func (l Locator) CSS() (string, bool) {
	switch l.By {
	case StrategyCSS:
		return l.Value, true
	case StrategyID:
		return "#" + cssEscapeIdent(l.Value), true
	case StrategyName:
		return fmt.Sprintf(`[name=%q]`, l.Value), true
	default:
		return "", false
	}
}

// XPath converts the locator to an XPath expression. CSS locators cannot be
// expressed in XPath and return false.
func (l Locator) XPath() (string, bool) {
	switch l.By {
	case StrategyXPath:
		return l.Value, true
	case StrategyID:
		return fmt.Sprintf("//*[@id=%s]", xpathLiteral(l.Value)), true
	case StrategyName:
		return fmt.Sprintf("//*[@name=%s]", xpathLiteral(l.Value)), true
	default:
		return "", false
	}
}

// AnyOf combines locators into a single XPath union so the first expression
// can key off stable attributes while later ones act as fallbacks. Every
// locator must be expressible in XPath.
func AnyOf(locators ...Locator) (Locator, error) {
	if len(locators) == 0 {
		return Locator{}, fmt.Errorf("AnyOf requires at least one locator")
	}
	parts := make([]string, 0, len(locators))
	for _, l := range locators {
		expr, ok := l.XPath()
		if !ok {
			return Locator{}, fmt.Errorf("locator %s cannot be expressed as XPath", l)
		}
		parts = append(parts, expr)
	}
	return ByXPath(strings.Join(parts, " | ")), nil
}

// LinkText returns an XPath locator for anchors under root whose normalized
// text equals text.
func LinkText(root, text string) Locator {
	return ByXPath(fmt.Sprintf("%s//a[normalize-space(.)=%s]", root, xpathLiteral(text)))
}

// SubmenuLinkText returns an XPath locator for anchors whose normalized text
// equals text inside the list item of the root-level link labelled parent.
// Entries sharing a label under different parents never match each other.
func SubmenuLinkText(root, parent, text string) Locator {
	return ByXPath(fmt.Sprintf("%s//li[a[normalize-space(.)=%s]]//a[normalize-space(.)=%s]",
		root, xpathLiteral(parent), xpathLiteral(text)))
}

// xpathLiteral quotes s for use inside an XPath 1.0 expression
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func cssEscapeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_', r > 0x7f:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				fmt.Fprintf(&b, `\%x `, r)
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
