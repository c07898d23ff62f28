// Package state holds the API health snapshot shared between the background
// health poller and the terminal UI.
//
// The poller is the single writer; the UI reads copies on its own tick. A
// failed poll keeps the last known categories and records the error, so the
// header can show "offline" without losing the previous counts:
//
//	store.Update(cats, nil)  // online, failures reset
//	store.Update(nil, err)   // previous cats kept, failures++
//
// The zero Store is ready to use.
package state
