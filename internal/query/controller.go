// Package query runs the card view requests: fetch a payload, then render it
// as cards and as a raw dump.
package query

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/render"
)

// State is the controller's position in Idle → Fetching → Rendered|Failed.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// ErrSuperseded is returned when a response arrives after a newer request
// was started. Nothing is rendered for it.
var ErrSuperseded = errors.New("superseded by a newer request")

// Controller issues requests and renders their results into the cards and
// raw elements. Only the most recently started request may render.
type Controller struct {
	fetcher itemsapi.Fetcher
	cards   page.Element
	raw     page.Element
	logger  *zap.Logger

	mu     sync.Mutex
	latest uint64
	state  State
}

// New builds a Controller. A nil logger disables logging.
func New(fetcher itemsapi.Fetcher, cards, raw page.Element, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		fetcher: fetcher,
		cards:   cards,
		raw:     raw,
		logger:  logger,
	}
}

// State returns the state left by the most recent request.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Random fetches n random items. n must be at least 1.
func (c *Controller) Random(ctx context.Context, n int) error {
	if n < 1 {
		return &itemsapi.ValidationError{Field: "n", Value: strconv.Itoa(n), Reason: "must be at least 1"}
	}
	return c.run(ctx, itemsapi.RandomRef(n))
}

// Search fetches items matching q. Callers trim q and skip empty queries.
func (c *Controller) Search(ctx context.Context, q string) error {
	return c.run(ctx, itemsapi.SearchRef(q))
}

func (c *Controller) run(ctx context.Context, ref *url.URL) error {
	if c.fetcher == nil || c.cards == nil || c.raw == nil {
		return fmt.Errorf("query controller is not wired")
	}
	token := c.begin()
	log := c.logger.With(zap.String("request", ref.String()), zap.Uint64("token", token))
	log.Debug("fetch started")

	payload, err := c.fetch(ctx, ref)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.latest {
		log.Debug("discarding stale response", zap.Uint64("latest", c.latest), zap.Error(err))
		if err != nil {
			return err
		}
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateFailed
		log.Debug("fetch failed", zap.Error(err))
		return err
	}

	// Build both views before touching either element so a render error
	// cannot leave them showing different payloads.
	cardsHTML, err := render.CardsHTML(payload.Items)
	if err != nil {
		c.state = StateFailed
		return err
	}
	rawText, err := render.RawText(payload.Raw)
	if err != nil {
		c.state = StateFailed
		return err
	}
	c.cards.SetHTML(cardsHTML)
	c.raw.SetText(rawText)
	c.state = StateRendered
	log.Debug("rendered", zap.Int("items", len(payload.Items)))
	return nil
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.state = StateFetching
	return c.latest
}

func (c *Controller) fetch(ctx context.Context, ref *url.URL) (itemsapi.Payload, error) {
	raw, err := c.fetcher.GetJSON(ctx, ref)
	if err != nil {
		return itemsapi.Payload{}, err
	}
	payload, err := itemsapi.DecodePayload(raw)
	if err != nil {
		return itemsapi.Payload{}, &itemsapi.TransportError{Op: "decode response", Err: err}
	}
	return payload, nil
}
