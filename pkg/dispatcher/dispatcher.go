package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/logger"
)

// StopPropagation, returned from a handler callback, aborts dispatch of
// the current update entirely: no further groups are tried.
var StopPropagation = errors.New("stop propagation")

// ContinuePropagation, returned from a handler callback, moves dispatch
// on to the next group immediately. Without it the next group is tried
// anyway once the callback returns nil; the sentinel exists so a
// callback can bail out of its own body early.
var ContinuePropagation = errors.New("continue propagation")

// Dispatcher routes updates to registered handlers. Handlers live in
// integer-keyed groups processed in ascending order; within a group the
// first handler whose filter passes runs and the rest of the group is
// skipped. Each group therefore runs at most one handler per update.
type Dispatcher struct {
	mu     sync.RWMutex
	groups map[int][]*Handler
	order  []int
}

func New() *Dispatcher {
	return &Dispatcher{groups: make(map[int][]*Handler)}
}

// AddHandler registers h in the given group. Registration order within
// a group is preserved.
func (d *Dispatcher) AddHandler(h *Handler, group int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.groups[group]; !ok {
		d.order = append(d.order, group)
		sort.Ints(d.order)
	}
	d.groups[group] = append(d.groups[group], h)
}

// RemoveHandler unregisters h from the given group. It reports whether
// the handler was found.
func (d *Dispatcher) RemoveHandler(h *Handler, group int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers, ok := d.groups[group]
	if !ok {
		return false
	}
	for i, registered := range handlers {
		if registered == h {
			d.groups[group] = append(handlers[:i:i], handlers[i+1:]...)
			if len(d.groups[group]) == 0 {
				delete(d.groups, group)
				d.removeFromOrder(group)
			}
			return true
		}
	}
	return false
}

func (d *Dispatcher) removeFromOrder(group int) {
	for i, g := range d.order {
		if g == group {
			d.order = append(d.order[:i:i], d.order[i+1:]...)
			return
		}
	}
}

// Dispatch routes a single update through the registered handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, update *tgbotapi.Update) {
	kind, ok := kindOf(update)
	if !ok {
		slog.DebugContext(ctx, "Skipping update of unsupported kind", "updateID", update.UpdateID)
		return
	}

	event := domain.NewEvent(update)

	d.mu.RLock()
	order := append([]int(nil), d.order...)
	groups := make(map[int][]*Handler, len(d.groups))
	for g, handlers := range d.groups {
		groups[g] = append([]*Handler(nil), handlers...)
	}
	d.mu.RUnlock()

	var matched bool
	for _, group := range order {
		ran, stop := d.dispatchGroup(ctx, groups[group], kind, event)
		matched = matched || ran
		if stop {
			return
		}
	}
	if !matched {
		slog.DebugContext(ctx, "No handler matched update", "updateID", update.UpdateID)
	}
}

// dispatchGroup runs at most one handler. It reports whether a handler
// ran and whether dispatch should stop entirely.
func (d *Dispatcher) dispatchGroup(ctx context.Context, handlers []*Handler, kind UpdateKind, event *domain.Event) (ran, stop bool) {
	for _, h := range handlers {
		if h.kind != kind {
			continue
		}

		ok, err := h.filter.Check(ctx, event)
		if err != nil {
			// A failing filter must not take the whole update down.
			slog.ErrorContext(ctx, "Filter check failed, treating as no match",
				"filter", h.filter.Name(), logger.Err(err))
			continue
		}
		if !ok {
			continue
		}

		err = h.callback(ctx, event)
		switch {
		case err == nil, errors.Is(err, ContinuePropagation):
			return true, false
		case errors.Is(err, StopPropagation):
			return true, true
		default:
			slog.ErrorContext(ctx, "Handler failed", "filter", h.filter.Name(), logger.Err(err))
			return true, false
		}
	}
	return false, false
}
