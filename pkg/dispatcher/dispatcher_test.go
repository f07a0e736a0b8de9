package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

func textUpdate(text string) *tgbotapi.Update {
	return &tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 1,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: 100, Type: "private"},
			From:      &tgbotapi.User{ID: 7},
		},
	}
}

func record(log *[]string, name string, result error) Callback {
	return func(context.Context, *domain.Event) error {
		*log = append(*log, name)
		return result
	}
}

func TestDispatchGroupOrder(t *testing.T) {
	var log []string
	d := New()

	// Registered out of order on purpose.
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "group5", nil)), 5)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "group-1", nil)), -1)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "group0", nil)), 0)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"group-1", "group0", "group5"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchFirstMatchWinsWithinGroup(t *testing.T) {
	var log []string
	d := New()

	d.AddHandler(OnMessage(filters.Command("other"), record(&log, "wrong command", nil)), 0)
	d.AddHandler(OnMessage(filters.Text(), record(&log, "first text", nil)), 0)
	d.AddHandler(OnMessage(filters.Text(), record(&log, "second text", nil)), 0)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"first text"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	var log []string
	d := New()

	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "gate", StopPropagation)), 0)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "unreached", nil)), 1)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"gate"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchContinuePropagation(t *testing.T) {
	var log []string
	d := New()

	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "first", ContinuePropagation)), 0)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "second", nil)), 1)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"first", "second"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchHandlerErrorDoesNotStopOtherGroups(t *testing.T) {
	var log []string
	d := New()

	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "failing", errors.New("boom"))), 0)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "next group", nil)), 1)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"failing", "next group"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchFilterErrorTreatedAsNoMatch(t *testing.T) {
	var log []string
	d := New()

	broken := filters.New("broken", func(context.Context, *domain.Event) (bool, error) {
		return true, errors.New("boom")
	})
	d.AddHandler(OnMessage(broken, record(&log, "broken filter", nil)), 0)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "fallback", nil)), 0)

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"fallback"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchKindRouting(t *testing.T) {
	var log []string
	d := New()

	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "message", nil)), 0)
	d.AddHandler(OnCallbackQuery(filters.Filter{}, record(&log, "callback", nil)), 0)
	d.AddHandler(OnEditedMessage(filters.Filter{}, record(&log, "edited", nil)), 0)

	d.Dispatch(context.Background(), &tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb1", Data: "x", From: &tgbotapi.User{ID: 7}},
	})
	d.Dispatch(context.Background(), &tgbotapi.Update{
		EditedMessage: &tgbotapi.Message{MessageID: 2, Text: "edit", Chat: &tgbotapi.Chat{ID: 100}},
	})

	want := []string{"callback", "edited"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchUnsupportedKind(t *testing.T) {
	var log []string
	d := New()
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "message", nil)), 0)

	// A poll update has no registered kind; dispatch must not panic.
	d.Dispatch(context.Background(), &tgbotapi.Update{Poll: &tgbotapi.Poll{ID: "p1"}})

	if len(log) != 0 {
		t.Errorf("handler ran for an unsupported update: %v", log)
	}
}

func TestRemoveHandler(t *testing.T) {
	var log []string
	d := New()

	h := OnMessage(filters.Filter{}, record(&log, "removed", nil))
	d.AddHandler(h, 0)
	d.AddHandler(OnMessage(filters.Filter{}, record(&log, "kept", nil)), 0)

	if !d.RemoveHandler(h, 0) {
		t.Fatal("RemoveHandler did not find the handler")
	}
	if d.RemoveHandler(h, 0) {
		t.Fatal("RemoveHandler found an already removed handler")
	}
	if d.RemoveHandler(h, 3) {
		t.Fatal("RemoveHandler found a handler in an empty group")
	}

	d.Dispatch(context.Background(), textUpdate("hi"))

	want := []string{"kept"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestDispatchRecordsMatchData(t *testing.T) {
	d := New()

	var gotCommand string
	var gotArgs []string
	d.AddHandler(OnMessage(filters.Command("deploy"), func(_ context.Context, e *domain.Event) error {
		gotCommand = e.Command
		gotArgs = e.Args
		return nil
	}), 0)

	d.Dispatch(context.Background(), textUpdate("/deploy api prod"))

	if gotCommand != "deploy" {
		t.Errorf("got command %q, want %q", gotCommand, "deploy")
	}
	if !reflect.DeepEqual(gotArgs, []string{"api", "prod"}) {
		t.Errorf("got args %v", gotArgs)
	}
}
