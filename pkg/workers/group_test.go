package workers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeWorker struct {
	name string
	run  func(ctx context.Context) error
}

func (f *fakeWorker) Name() string                    { return f.name }
func (f *fakeWorker) Start(ctx context.Context) error { return f.run(ctx) }

func waitForCtx(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestGroupStopsOnCancel(t *testing.T) {
	g := Group{
		&fakeWorker{name: "a", run: waitForCtx},
		&fakeWorker{name: "b", run: waitForCtx},
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- g.Start(ctx) }()

	cancelFn()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("group did not stop after cancel")
	}
}

func TestGroupWorkerErrorCancelsOthers(t *testing.T) {
	var otherStopped bool
	g := Group{
		&fakeWorker{name: "failing", run: func(context.Context) error {
			return errors.New("boom")
		}},
		&fakeWorker{name: "other", run: func(ctx context.Context) error {
			<-ctx.Done()
			otherStopped = true
			return nil
		}},
	}

	err := g.Start(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "failing: boom") {
		t.Errorf("error does not name the failing worker: %v", err)
	}
	if !otherStopped {
		t.Error("other worker kept running after the failure")
	}
}

func TestGroupCollectsAllErrors(t *testing.T) {
	g := Group{
		&fakeWorker{name: "a", run: func(context.Context) error { return errors.New("first") }},
		&fakeWorker{name: "b", run: func(context.Context) error { return errors.New("second") }},
	}

	err := g.Start(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"a: first", "b: second"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %v", want, err)
		}
	}
}
