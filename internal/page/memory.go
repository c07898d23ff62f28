package page

import (
	"sync"
)

// ContentKind records how an element's content was last set.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentHTML
	ContentText
)

// Content is a copy of one element's state.
type Content struct {
	Kind ContentKind
	Data string
}

// Document is an in-memory page. Every node can act as an element, an input
// and a trigger. It is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	nodes    map[string]*Node
	alerts   []string
	revision uint64
	onAlert  func(string)
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{nodes: make(map[string]*Node)}
}

// Node returns the node with the given id, creating it on first use.
func (d *Document) Node(id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.nodes == nil {
		d.nodes = make(map[string]*Node)
	}
	n, ok := d.nodes[id]
	if !ok {
		n = &Node{doc: d, id: id}
		d.nodes[id] = n
	}
	return n
}

// Handles resolves the standard element names against the document.
func (d *Document) Handles() Handles {
	return Handles{
		Count:         d.Node(CountID),
		Search:        d.Node(SearchID),
		RandomTrigger: d.Node(RandomButtonID),
		SearchTrigger: d.Node(SearchButtonID),
		Cards:         d.Node(CardsID),
		Raw:           d.Node(RawID),
		Notifier:      d,
	}
}

// Alert records message. When a hook is installed with OnAlert it is called
// after the message is recorded.
func (d *Document) Alert(message string) {
	d.mu.Lock()
	d.alerts = append(d.alerts, message)
	d.revision++
	hook := d.onAlert
	d.mu.Unlock()
	if hook != nil {
		hook(message)
	}
}

// OnAlert installs a hook called for every alert.
func (d *Document) OnAlert(fn func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onAlert = fn
}

// Alerts returns a copy of every recorded alert.
func (d *Document) Alerts() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.alerts...)
}

// DrainAlerts returns and clears pending alerts.
func (d *Document) DrainAlerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.alerts
	d.alerts = nil
	return out
}

// Revision increases whenever any node content or the alert list changes.
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

func (d *Document) bump() {
	d.mu.Lock()
	d.revision++
	d.mu.Unlock()
}

// Node is a single element of a Document.
type Node struct {
	doc *Document
	id  string

	mu       sync.RWMutex
	content  Content
	value    string
	handlers []func()
}

var (
	_ Element = (*Node)(nil)
	_ Input   = (*Node)(nil)
	_ Trigger = (*Node)(nil)
)

// ID returns the node's name.
func (n *Node) ID() string {
	return n.id
}

// SetHTML implements Element.
func (n *Node) SetHTML(fragment string) {
	n.set(Content{Kind: ContentHTML, Data: fragment})
}

// SetText implements Element.
func (n *Node) SetText(text string) {
	n.set(Content{Kind: ContentText, Data: text})
}

func (n *Node) set(c Content) {
	n.mu.Lock()
	n.content = c
	n.mu.Unlock()
	n.doc.bump()
}

// Content returns a copy of the node's content.
func (n *Node) Content() Content {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.content
}

// Value implements Input.
func (n *Node) Value() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.value
}

// SetValue sets the input value, as a user typing into the field would.
func (n *Node) SetValue(v string) {
	n.mu.Lock()
	n.value = v
	n.mu.Unlock()
}

// OnActivate implements Trigger.
func (n *Node) OnActivate(fn func()) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	n.handlers = append(n.handlers, fn)
	n.mu.Unlock()
}

// Activate runs the registered handlers in registration order, as a click
// would.
func (n *Node) Activate() {
	n.mu.RLock()
	handlers := append([]func(){}, n.handlers...)
	n.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}
