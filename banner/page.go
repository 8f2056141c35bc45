// Package banner models the "update available" button and link shown on a
// page, and renders them once a check has finished.
package banner

import (
	"slices"

	"github.com/waldirborbajr/versioncheck/updater"
)

// Element identifiers and the class used to hide the link.
const (
	ButtonID    = "update-btn"
	LinkID      = "update-link"
	TextID      = "app-update"
	HiddenClass = "visually-hidden"
)

// Element is a single toggled UI element
type Element struct {
	ID      string
	Display string // CSS display value, "" means the element default
	Classes []string
	Text    string
}

// NewElement returns an element with the given id and classes
func NewElement(id string, classes ...string) *Element {
	return &Element{ID: id, Classes: classes}
}

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

func (e *Element) AddClass(class string) {
	if !e.HasClass(class) {
		e.Classes = append(e.Classes, class)
	}
}

func (e *Element) RemoveClass(class string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == class })
}

// Visible reports whether neither display nor the hidden class hides the element
func (e *Element) Visible() bool {
	return e.Display != "none" && !e.HasClass(HiddenClass)
}

// Page holds the optional update elements of one rendered page. Any of them
// may be nil when the page does not contain it.
type Page struct {
	Button *Element
	Link   *Element
	Text   *Element
}

// NewPage returns a page with all three elements present and hidden
func NewPage() *Page {
	p := &Page{
		Button: NewElement(ButtonID, "btn", "btn-outline-primary"),
		Link:   NewElement(LinkID, "nav-link"),
		Text:   NewElement(TextID),
	}
	p.Reset()
	return p
}

// Reset hides the button and the link
func (p *Page) Reset() {
	if p.Button != nil {
		p.Button.Display = "none"
	}
	if p.Link != nil {
		p.Link.AddClass(HiddenClass)
	}
}

// Apply shows the update elements when res reports a newer release and keeps
// the link hidden otherwise.
func (p *Page) Apply(res updater.Result) {
	if !res.UpdateAvailable || !updater.IsNewer(res.CurrentVersion, res.LatestVersion) {
		if p.Link != nil {
			p.Link.AddClass(HiddenClass)
		}
		return
	}

	if p.Button != nil {
		p.Button.Display = "block"
	}
	if p.Link != nil {
		target := p.Text
		if target == nil {
			target = p.Link
		}
		target.Text = res.Summary()
		p.Link.RemoveClass(HiddenClass)
	}
}

var _ updater.Applier = (*Page)(nil)
