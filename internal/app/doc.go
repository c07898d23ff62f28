// Package app is the composition root for cardview's entry points.
//
// Each Run function loads configuration, builds the logger and wires the
// packages together:
//
//   - RunTerminal: items client → query controller → binder over an
//     in-memory page.Document, a background health poller feeding
//     state.Store, and the Bubble Tea UI on top. Logs go to the configured
//     log file because the terminal is busy.
//   - RunServer: catalog loaded from the data file, chi server from
//     internal/server, and an fsnotify watcher reloading the catalog, all
//     under one errgroup so a listener failure stops the watcher and
//     cancellation shuts the server down gracefully.
//   - Fetch and Categories: one-shot requests for scripting, printing to an
//     io.Writer.
//
// Recoverable failures (a poll that fails, a data file that no longer
// parses) are logged and the process keeps going. Configuration and
// startup failures are returned.
package app
