// Package page defines the boundary between the card views and whatever host
// displays them: a browser document, the terminal front end or a test.
//
// Hosts resolve their elements once into a Handles value; components receive
// the handles they need and never look elements up by name themselves.
package page

import (
	"errors"
	"fmt"
)

// Element is a container whose content is replaced wholesale.
type Element interface {
	// SetHTML replaces the content with an HTML fragment.
	SetHTML(fragment string)
	// SetText replaces the content with plain text that is never interpreted
	// as markup.
	SetText(text string)
}

// Input exposes the current value of a text field.
type Input interface {
	Value() string
}

// Trigger calls fn each time the user activates the control.
type Trigger interface {
	OnActivate(fn func())
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(message string)
}

// Logical names of the elements every host provides.
const (
	CountID        = "count"
	SearchID       = "search"
	RandomButtonID = "btnRandom"
	SearchButtonID = "btnSearch"
	CardsID        = "cards"
	RawID          = "raw"
)

// Handles are the page's boundary resources, resolved once at startup.
type Handles struct {
	Count         Input
	Search        Input
	RandomTrigger Trigger
	SearchTrigger Trigger
	Cards         Element
	Raw           Element
	Notifier      Notifier
}

// ErrMissingElement is returned when a host cannot provide a required element.
var ErrMissingElement = errors.New("missing page element")

// Validate reports the first handle that was not resolved.
func (h Handles) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{CountID, h.Count != nil},
		{SearchID, h.Search != nil},
		{RandomButtonID, h.RandomTrigger != nil},
		{SearchButtonID, h.SearchTrigger != nil},
		{CardsID, h.Cards != nil},
		{RawID, h.Raw != nil},
		{"notifier", h.Notifier != nil},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrMissingElement, c.name)
		}
	}
	return nil
}
