package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// All matches every update. Useful as an explicit catch-all.
func All() Filter {
	return New("all", func(context.Context, *domain.Event) (bool, error) {
		return true, nil
	})
}

func message(name string, pred func(msg *tgbotapi.Message) bool) Filter {
	return New(name, func(_ context.Context, e *domain.Event) (bool, error) {
		msg := e.Message()
		if msg == nil {
			return false, nil
		}
		return pred(msg), nil
	})
}

// Text matches messages carrying text (not media captions).
func Text() Filter {
	return message("text", func(m *tgbotapi.Message) bool { return m.Text != "" })
}

// Caption matches media messages that have a caption.
func Caption() Filter {
	return message("caption", func(m *tgbotapi.Message) bool { return m.Caption != "" })
}

func Photo() Filter {
	return message("photo", func(m *tgbotapi.Message) bool { return m.Photo != nil })
}

func Video() Filter {
	return message("video", func(m *tgbotapi.Message) bool { return m.Video != nil })
}

func Voice() Filter {
	return message("voice", func(m *tgbotapi.Message) bool { return m.Voice != nil })
}

func Audio() Filter {
	return message("audio", func(m *tgbotapi.Message) bool { return m.Audio != nil })
}

func Document() Filter {
	return message("document", func(m *tgbotapi.Message) bool { return m.Document != nil })
}

func Sticker() Filter {
	return message("sticker", func(m *tgbotapi.Message) bool { return m.Sticker != nil })
}

func Animation() Filter {
	return message("animation", func(m *tgbotapi.Message) bool { return m.Animation != nil })
}

func Location() Filter {
	return message("location", func(m *tgbotapi.Message) bool { return m.Location != nil })
}

func Contact() Filter {
	return message("contact", func(m *tgbotapi.Message) bool { return m.Contact != nil })
}

// Reply matches messages that are replies to another message.
func Reply() Filter {
	return message("reply", func(m *tgbotapi.Message) bool { return m.ReplyToMessage != nil })
}

// Forwarded matches messages forwarded from another chat or user.
func Forwarded() Filter {
	return message("forwarded", func(m *tgbotapi.Message) bool {
		return m.ForwardFrom != nil || m.ForwardFromChat != nil
	})
}

// ViaBot matches messages sent via an inline bot.
func ViaBot() Filter {
	return message("via_bot", func(m *tgbotapi.Message) bool { return m.ViaBot != nil })
}

// Private matches updates coming from private chats.
func Private() Filter {
	return chatType("private", "private")
}

// Group matches updates from basic groups and supergroups.
func Group() Filter {
	return New("group", func(_ context.Context, e *domain.Event) (bool, error) {
		chat := e.Chat()
		if chat == nil {
			return false, nil
		}
		return chat.Type == "group" || chat.Type == "supergroup", nil
	})
}

// Channel matches updates from channels.
func Channel() Filter {
	return chatType("channel", "channel")
}

// Edited matches edited messages and edited channel posts.
func Edited() Filter {
	return New("edited", func(_ context.Context, e *domain.Event) (bool, error) {
		return e.Update.EditedMessage != nil || e.Update.EditedChannelPost != nil, nil
	})
}

func chatType(name, typ string) Filter {
	return New(name, func(_ context.Context, e *domain.Event) (bool, error) {
		chat := e.Chat()
		return chat != nil && chat.Type == typ, nil
	})
}
