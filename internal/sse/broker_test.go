package sse

import (
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishConverted("topic.md", 3)

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: document.converted") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"path":"topic.md"`) {
			t.Errorf("missing data in %q", s)
		}
		if !strings.Contains(s, `"converted":3`) {
			t.Errorf("missing count in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishConfirmRequested(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishConfirmRequested("req-1", "Update 3 reference(s)?")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: confirm.requested") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"id":"req-1"`) {
			t.Errorf("missing id in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishIndexEvent_Throttle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First event triggers index.updated; the immediate second one is
	// throttled down to the per-document event only.
	b.PublishIndexEvent("updated", "a.md")
	b.PublishIndexEvent("created", "b.md")

	time.Sleep(50 * time.Millisecond)
	aggregate := 0
	perDoc := 0
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "index.updated") {
				aggregate++
			} else {
				perDoc++
			}
		default:
			break loop
		}
	}

	if perDoc != 2 {
		t.Errorf("document events = %d, want 2", perDoc)
	}
	if aggregate != 1 {
		t.Errorf("index.updated events = %d, want 1 (throttled)", aggregate)
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	b.Close()
	// Must not panic or block.
	b.PublishConverted("topic.md", 1)
	b.PublishIndexEvent("updated", "a.md")
	if b.ClientCount() != 0 {
		t.Error("closed broker should report 0 clients")
	}
}
