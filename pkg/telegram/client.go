package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/logger"
)

type Client struct {
	bot       *tgbotapi.BotAPI
	updatesCh tgbotapi.UpdatesChannel
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot api instance: %w", err)
	}

	slog.Info("authorized on telegram", "account", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return &Client{
		bot:       bot,
		updatesCh: bot.GetUpdatesChan(u),
	}, nil
}

// Username returns the bot's own username, for targeted command
// matching like "/start@mybot".
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

func (c *Client) GetUpdates() tgbotapi.UpdatesChannel {
	return c.updatesCh
}

func (c *Client) SendResponse(ctx context.Context, chatID int64, response *domain.Response) {
	msg := newMessage(chatID, response)

	if _, err := c.bot.Send(msg); err != nil {
		slog.ErrorContext(ctx, "Sending message failed", "chatID", msg.ChatID, logger.Err(err))
	}
}

// newMessage builds the outbound message. chatID is the fallback when
// the response doesn't name a chat; the response itself is never
// written to.
func newMessage(chatID int64, response *domain.Response) tgbotapi.MessageConfig {
	if response.ChatID != 0 {
		chatID = response.ChatID
	}

	msg := tgbotapi.NewMessage(chatID, response.Text)
	msg.ReplyToMessageID = response.ReplyToMessageID
	if response.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if response.Keyboard != nil {
		msg.ReplyMarkup = buildKeyboard(response.Keyboard)
	}
	return msg
}

// AcknowledgeCallback stops the client-side loading indicator on the
// button that produced the callback query.
func (c *Client) AcknowledgeCallback(ctx context.Context, callbackQueryID string) {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackQueryID, "")); err != nil {
		slog.ErrorContext(ctx, "Acknowledging callback failed", logger.Err(err))
	}
}

func (c *Client) StartTyping(ctx context.Context, chatID int64) {
	if _, err := c.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		slog.ErrorContext(ctx, "Sending typing action failed", "chatID", chatID, logger.Err(err))
	}
}

func buildKeyboard(kb *domain.Keyboard) tgbotapi.InlineKeyboardMarkup {
	perRow := kb.ButtonsPerRow
	if perRow <= 0 {
		perRow = 2
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, label := range kb.ButtonLabels {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, kb.CallbackPrefix+label))
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
