package dispatcher

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

// UpdateKind names the update field a handler is bound to.
type UpdateKind int

const (
	KindMessage UpdateKind = iota
	KindEditedMessage
	KindChannelPost
	KindCallbackQuery
	KindInlineQuery
)

// Callback is the code a handler runs once its filter passed. Returning
// StopPropagation or ContinuePropagation controls how dispatch proceeds;
// any other non-nil error is logged.
type Callback func(ctx context.Context, e *domain.Event) error

// Handler binds an update kind, a filter and a callback. The zero
// filter matches everything of that kind.
type Handler struct {
	kind     UpdateKind
	filter   filters.Filter
	callback Callback
}

func NewHandler(kind UpdateKind, filter filters.Filter, callback Callback) *Handler {
	return &Handler{kind: kind, filter: filter, callback: callback}
}

func OnMessage(filter filters.Filter, callback Callback) *Handler {
	return NewHandler(KindMessage, filter, callback)
}

func OnEditedMessage(filter filters.Filter, callback Callback) *Handler {
	return NewHandler(KindEditedMessage, filter, callback)
}

func OnChannelPost(filter filters.Filter, callback Callback) *Handler {
	return NewHandler(KindChannelPost, filter, callback)
}

func OnCallbackQuery(filter filters.Filter, callback Callback) *Handler {
	return NewHandler(KindCallbackQuery, filter, callback)
}

func OnInlineQuery(filter filters.Filter, callback Callback) *Handler {
	return NewHandler(KindInlineQuery, filter, callback)
}

func kindOf(u *tgbotapi.Update) (UpdateKind, bool) {
	switch {
	case u.Message != nil:
		return KindMessage, true
	case u.EditedMessage != nil:
		return KindEditedMessage, true
	case u.ChannelPost != nil, u.EditedChannelPost != nil:
		return KindChannelPost, true
	case u.CallbackQuery != nil:
		return KindCallbackQuery, true
	case u.InlineQuery != nil:
		return KindInlineQuery, true
	}
	return 0, false
}
