// Package binder connects page inputs and triggers to the query controller
// and is the single place where failures are shown to the user.
package binder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/query"
)

// Bounds for the random count field.
const (
	MinCount     = 1
	MaxCount     = 10
	DefaultCount = 1
)

// Controller is the part of query.Controller the binder drives.
type Controller interface {
	Random(ctx context.Context, n int) error
	Search(ctx context.Context, q string) error
}

var _ Controller = (*query.Controller)(nil)

// Binder wires page triggers to a Controller. Trigger handlers return
// immediately; the request runs on its own goroutine.
type Binder struct {
	ctx     context.Context
	handles page.Handles
	ctl     Controller
	logger  *zap.Logger

	wg sync.WaitGroup
}

// New validates handles and returns a Binder. ctx bounds every request the
// binder starts.
func New(ctx context.Context, handles page.Handles, ctl Controller, logger *zap.Logger) (*Binder, error) {
	if err := handles.Validate(); err != nil {
		return nil, err
	}
	if ctl == nil {
		return nil, fmt.Errorf("binder requires a controller")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Binder{ctx: ctx, handles: handles, ctl: ctl, logger: logger}, nil
}

// Bind registers the random and search handlers on their triggers.
func (b *Binder) Bind() {
	b.handles.RandomTrigger.OnActivate(b.TriggerRandom)
	b.handles.SearchTrigger.OnActivate(b.TriggerSearch)
}

// TriggerRandom reads and clamps the count field and starts a random fetch.
func (b *Binder) TriggerRandom() {
	n := ClampCount(b.handles.Count.Value())
	b.spawn(func(ctx context.Context) {
		b.surface(b.ctl.Random(ctx, n))
	})
}

// TriggerSearch starts a search for the trimmed search field. A blank field
// does nothing.
func (b *Binder) TriggerSearch() {
	q := strings.TrimSpace(b.handles.Search.Value())
	if q == "" {
		return
	}
	b.spawn(func(ctx context.Context) {
		b.surface(b.ctl.Search(ctx, q))
	})
}

// InitialLoad fetches one random item. Failures are logged, never alerted.
func (b *Binder) InitialLoad() {
	b.spawn(func(ctx context.Context) {
		err := b.ctl.Random(ctx, DefaultCount)
		if err == nil || errors.Is(err, query.ErrSuperseded) {
			return
		}
		b.logger.Warn("initial load failed", zap.Error(err))
	})
}

// Wait blocks until every request started by the binder has finished.
func (b *Binder) Wait() {
	b.wg.Wait()
}

func (b *Binder) spawn(fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn(b.ctx)
	}()
}

func (b *Binder) surface(err error) {
	if err == nil || errors.Is(err, query.ErrSuperseded) {
		return
	}
	b.logger.Info("request failed", zap.Error(err))
	b.handles.Notifier.Alert(err.Error())
}
