//go:build js && wasm

package page

import (
	"fmt"
	"syscall/js"
)

type domElement struct {
	v js.Value
}

func (e domElement) SetHTML(fragment string) {
	e.v.Set("innerHTML", fragment)
}

func (e domElement) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e domElement) Value() string {
	return e.v.Get("value").String()
}

// OnActivate registers a click listener. Listeners live as long as the page,
// so the js.Func is never released.
func (e domElement) OnActivate(fn func()) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	e.v.Call("addEventListener", "click", cb)
}

type windowNotifier struct {
	window js.Value
}

func (w windowNotifier) Alert(message string) {
	w.window.Call("alert", message)
}

// ResolveDOM looks up every element of the page contract in the browser
// document once.
func ResolveDOM(window js.Value) (Handles, error) {
	doc := window.Get("document")
	lookup := func(id string) (domElement, error) {
		v := doc.Call("getElementById", id)
		if v.IsNull() || v.IsUndefined() {
			return domElement{}, fmt.Errorf("%w: #%s", ErrMissingElement, id)
		}
		return domElement{v: v}, nil
	}

	ids := []string{CountID, SearchID, RandomButtonID, SearchButtonID, CardsID, RawID}
	found := make(map[string]domElement, len(ids))
	for _, id := range ids {
		el, err := lookup(id)
		if err != nil {
			return Handles{}, err
		}
		found[id] = el
	}
	return Handles{
		Count:         found[CountID],
		Search:        found[SearchID],
		RandomTrigger: found[RandomButtonID],
		SearchTrigger: found[SearchButtonID],
		Cards:         found[CardsID],
		Raw:           found[RawID],
		Notifier:      windowNotifier{window: window},
	}, nil
}
