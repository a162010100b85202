package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/geocoder89/pravaah/internal/client"
	"github.com/geocoder89/pravaah/internal/form"
	"github.com/geocoder89/pravaah/internal/notifications"
	"github.com/geocoder89/pravaah/internal/schema"
)

var ErrBusy = errors.New("a submission is already in progress")

// API is the part of the HTTP client the controller needs.
type API interface {
	Create(ctx context.Context, collection string, payload map[string]any) (client.CreateResponse, error)
}

// Controller owns the draft of the selected collection and submits it.
type Controller struct {
	api   API
	board *notifications.Board
	log   *slog.Logger

	mu    sync.Mutex
	draft form.Draft
	busy  atomic.Bool
}

func NewController(api API, board *notifications.Board, log *slog.Logger, kind schema.Kind) (*Controller, error) {
	c, ok := schema.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", schema.ErrUnknownCollection, kind)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		api:   api,
		board: board,
		log:   log,
		draft: form.New(c),
	}, nil
}

// SwitchCollection selects another collection and starts an empty draft for
// it; nothing typed for the previous collection carries over.
func (c *Controller) SwitchCollection(kind schema.Kind) error {
	coll, ok := schema.Lookup(kind)
	if !ok {
		return fmt.Errorf("%w %q", schema.ErrUnknownCollection, kind)
	}

	c.mu.Lock()
	c.draft = form.New(coll)
	c.mu.Unlock()
	return nil
}

func (c *Controller) Draft() form.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Update replaces the draft with edit(draft).
func (c *Controller) Update(edit func(form.Draft) form.Draft) {
	c.mu.Lock()
	c.draft = edit(c.draft)
	c.mu.Unlock()
}

func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Submit sends the current draft. On success the draft is reset; on failure
// it is kept so the user can correct it. Either way one notice is posted.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	d := c.Draft()
	kind := d.Kind().String()

	if missing := d.MissingRequired(); len(missing) > 0 {
		err := fmt.Errorf("missing required fields: %v", missing)
		c.notify(ctx, notifications.LevelError, err.Error())
		return err
	}

	resp, err := c.api.Create(ctx, kind, d.Payload())
	if err != nil {
		c.notify(ctx, notifications.LevelError, "Error: "+err.Error())
		return err
	}

	c.mu.Lock()
	// only reset if the collection was not switched while the request ran
	if c.draft.Kind() == d.Kind() {
		c.draft = form.New(d.Collection())
	}
	c.mu.Unlock()

	msg := resp.Message
	if msg == "" {
		msg = fmt.Sprintf("Document added to %s successfully", kind)
	}
	c.notify(ctx, notifications.LevelSuccess, msg)

	return nil
}

type BulkResult struct {
	Succeeded int
	Failed    int
}

// BulkSubmit posts samples one after another. A failed sample is logged and
// counted and the rest still go out. There is no retry and nothing already
// stored is rolled back.
func (c *Controller) BulkSubmit(ctx context.Context, samples []map[string]any) (BulkResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return BulkResult{}, ErrBusy
	}
	defer c.busy.Store(false)

	kind := c.Draft().Kind().String()

	var res BulkResult
	for i, sample := range samples {
		if _, err := c.api.Create(ctx, kind, sample); err != nil {
			res.Failed++
			c.log.WarnContext(ctx, "bulk.item_failed",
				"collection", kind,
				"index", i,
				"err", err,
			)
			continue
		}
		res.Succeeded++
	}

	level := notifications.LevelSuccess
	if res.Failed > 0 {
		level = notifications.LevelError
	}
	c.notify(ctx, level, fmt.Sprintf("Added %d %s successfully! (%d failed)", res.Succeeded, kind, res.Failed))

	return res, nil
}

// Samples returns the bulk sample list of the selected collection.
func (c *Controller) Samples() []map[string]any {
	return c.Draft().Collection().Samples
}

func (c *Controller) notify(ctx context.Context, level notifications.Level, msg string) {
	if c.board != nil {
		c.board.Post(ctx, level, msg)
	}
}
