//go:build js && wasm

// Command cardview-wasm is the browser build of the card viewer. It binds the
// page served at / to the items API on the same origin.
package main

import (
	"context"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/five82/cardview/internal/binder"
	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/query"
)

func main() {
	window := js.Global()
	logger := newConsoleLogger()

	handles, err := page.ResolveDOM(window)
	if err != nil {
		logger.Error("resolve page", zap.Error(err))
		return
	}

	client, err := itemsapi.NewClient(window.Get("location").Get("origin").String())
	if err != nil {
		logger.Error("init items client", zap.Error(err))
		return
	}

	ctl := query.New(client, handles.Cards, handles.Raw, logger)
	b, err := binder.New(context.Background(), handles, ctl, logger)
	if err != nil {
		logger.Error("bind page", zap.Error(err))
		return
	}
	b.Bind()
	b.InitialLoad()

	// Keep the callbacks registered by Bind alive.
	select {}
}

// newConsoleLogger writes development-encoded logs to stderr, which the Go
// wasm runtime forwards to the browser console.
func newConsoleLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
