package confirm

import (
	"context"
	"testing"
	"time"
)

func TestManager_ResolveAccept(t *testing.T) {
	reqs := make(chan Request, 1)
	m := NewManager(time.Second, func(req Request) { reqs <- req })

	done := make(chan bool, 1)
	go func() {
		done <- m.Confirm(context.Background(), "Update 3 references?")
	}()

	var got Request
	select {
	case got = <-reqs:
	case <-time.After(time.Second):
		t.Fatal("notify never fired")
	}
	if got.Summary != "Update 3 references?" {
		t.Errorf("Summary = %q", got.Summary)
	}

	if !m.Resolve(got.ID, true) {
		t.Fatal("Resolve should find the pending request")
	}
	if answer := <-done; !answer {
		t.Error("Confirm should report true")
	}
}

func TestManager_ResolveDecline(t *testing.T) {
	reqs := make(chan Request, 1)
	m := NewManager(time.Second, func(req Request) { reqs <- req })

	done := make(chan bool, 1)
	go func() {
		done <- m.Confirm(context.Background(), "sure?")
	}()

	req := <-reqs
	if !m.Resolve(req.ID, false) {
		t.Fatal("Resolve should find the pending request")
	}
	if answer := <-done; answer {
		t.Error("Confirm should report false")
	}
}

func TestManager_TimeoutDeclines(t *testing.T) {
	m := NewManager(20*time.Millisecond, nil)
	if m.Confirm(context.Background(), "anyone there?") {
		t.Error("timeout should decline")
	}
}

func TestManager_CancelDeclines(t *testing.T) {
	m := NewManager(time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if m.Confirm(ctx, "cancelled") {
		t.Error("cancelled context should decline")
	}
}

func TestManager_ResolveUnknownID(t *testing.T) {
	m := NewManager(time.Second, nil)
	if m.Resolve("nope", true) {
		t.Error("unknown ID should report false")
	}
}

func TestStatic(t *testing.T) {
	if !(Static{Answer: true}).Confirm(context.Background(), "x") {
		t.Error("Static true should accept")
	}
	if (Static{Answer: false}).Confirm(context.Background(), "x") {
		t.Error("Static false should decline")
	}
}
