package filters

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

func TestRegex(t *testing.T) {
	captionEvent := domain.NewEvent(&tgbotapi.Update{
		Message: &tgbotapi.Message{
			Caption: "issue #42",
			Chat:    &tgbotapi.Chat{ID: 100},
		},
	})
	callbackEvent := domain.NewEvent(&tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			Data: "topic:go",
			From: &tgbotapi.User{ID: 7},
		},
	})
	inlineEvent := domain.NewEvent(&tgbotapi.Update{
		InlineQuery: &tgbotapi.InlineQuery{
			ID:    "iq1",
			Query: "search term",
			From:  &tgbotapi.User{ID: 7},
		},
	})

	tests := []struct {
		name    string
		pattern string
		event   *domain.Event
		want    bool
	}{
		{"text match", `hello (\w+)`, textEvent("hello world"), true},
		{"text mismatch", `^bye`, textEvent("hello world"), false},
		{"caption", `#(\d+)`, captionEvent, true},
		{"callback data", `^topic:(\w+)$`, callbackEvent, true},
		{"inline query", `^search`, inlineEvent, true},
		{"empty content", `.*`, textEvent(""), false},
	}

	for _, test := range tests {
		got, err := Regex(test.pattern).Check(context.Background(), test.event)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestRegexRecordsSubmatches(t *testing.T) {
	e := textEvent("deploy v1.2.3 to prod")

	ok, err := Regex(`deploy (v[\d.]+) to (\w+)`).Check(context.Background(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}

	if len(e.Matches) != 3 {
		t.Fatalf("got %d matches, want 3: %v", len(e.Matches), e.Matches)
	}
	if e.Matches[1] != "v1.2.3" || e.Matches[2] != "prod" {
		t.Errorf("unexpected submatches: %v", e.Matches)
	}
}

func TestCallbackData(t *testing.T) {
	callbackEvent := func(data string) *domain.Event {
		return domain.NewEvent(&tgbotapi.Update{
			CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb1", Data: data},
		})
	}

	tests := []struct {
		name   string
		prefix string
		event  *domain.Event
		want   bool
	}{
		{"prefix match", "topic:", callbackEvent("topic:go"), true},
		{"exact match", "topic:", callbackEvent("topic:"), true},
		{"prefix mismatch", "topic:", callbackEvent("lang:go"), false},
		{"data shorter than prefix", "topic:", callbackEvent("to"), false},
		{"not a callback", "topic:", textEvent("topic:go"), false},
	}

	for _, test := range tests {
		got, err := CallbackData(test.prefix).Check(context.Background(), test.event)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}
