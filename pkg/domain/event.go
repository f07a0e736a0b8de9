package domain

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Event is a single incoming update on its way through the dispatcher.
// Filters record their match results here so handlers don't have to
// re-parse the update: a command filter fills Command and Args, a regex
// filter fills Matches.
type Event struct {
	Update *tgbotapi.Update

	Command string
	Args    []string
	Matches []string
}

func NewEvent(update *tgbotapi.Update) *Event {
	return &Event{Update: update}
}

// Message returns the message this event is about, regardless of which
// update field it arrived in. Nil for message-less updates such as
// inline queries.
func (e *Event) Message() *tgbotapi.Message {
	u := e.Update
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Message
	}
	return nil
}

func (e *Event) Chat() *tgbotapi.Chat {
	if msg := e.Message(); msg != nil {
		return msg.Chat
	}
	return nil
}

func (e *Event) ChatID() int64 {
	if chat := e.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

// Sender returns the user the update originated from, if any.
func (e *Event) Sender() *tgbotapi.User {
	u := e.Update
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return u.ChosenInlineResult.From
	}
	if msg := e.Message(); msg != nil {
		return msg.From
	}
	return nil
}

func (e *Event) SenderID() int64 {
	if from := e.Sender(); from != nil {
		return from.ID
	}
	return 0
}

// Text returns the message text, falling back to the media caption.
func (e *Event) Text() string {
	msg := e.Message()
	if msg == nil {
		return ""
	}
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func (e *Event) CallbackData() string {
	if e.Update.CallbackQuery != nil {
		return e.Update.CallbackQuery.Data
	}
	return ""
}

// ReplyTarget returns the message ID a reply should be attached to,
// or 0 when there is nothing to reply to.
func (e *Event) ReplyTarget() int {
	if msg := e.Message(); msg != nil {
		return msg.MessageID
	}
	return 0
}

// SenderUsername returns the sender's username without the @ prefix,
// lowercased. Empty when the sender has no username.
func (e *Event) SenderUsername() string {
	if from := e.Sender(); from != nil {
		return strings.ToLower(from.UserName)
	}
	return ""
}

// ChatUsername returns the chat's public username without the @ prefix,
// lowercased. Empty for chats without one.
func (e *Event) ChatUsername() string {
	if chat := e.Chat(); chat != nil {
		return strings.ToLower(chat.UserName)
	}
	return ""
}
