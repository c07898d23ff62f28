// Package ui is the terminal host for the card viewer, built on Bubble Tea.
//
// The UI owns no fetching logic. It holds a page.Document that the binder is
// wired to and behaves like a browser would towards that document:
//
//   - keystrokes in the count and search fields set the matching node values;
//   - enter on a field, or ctrl+r, activates the matching trigger node;
//   - a periodic tick compares the document revision and, when it moved,
//     re-reads the cards and raw nodes and collects pending alerts.
//
// The cards node holds the HTML fragment produced by the renderer. The UI
// parses it with golang.org/x/net/html and lays each card out with lipgloss,
// so escaped markup in item fields is shown as the literal text it was.
//
// Alerts are modal: the oldest is shown until dismissed and all other input
// is ignored meanwhile.
//
// The header reads the health snapshot kept by the background poller
// (state.Store) and shows item and category counts or an offline notice.
package ui
