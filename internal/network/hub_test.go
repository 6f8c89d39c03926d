package network

import (
	"os"
	"testing"

	"erebus-server/pkg/api"
	"erebus-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcasterSendTo(t *testing.T) {
	b := NewBroadcaster()
	alice := b.Register("alice")
	bob := b.Register("bob")

	b.SendTo("alice", api.ServerResponse{Type: api.ResponseInfo, Text: "hello"})

	select {
	case msg := <-alice:
		if msg.Text != "hello" {
			t.Errorf("alice got %q, want hello", msg.Text)
		}
	default:
		t.Fatal("alice got nothing")
	}

	select {
	case msg := <-bob:
		t.Fatalf("bob got a unicast frame: %v", msg)
	default:
	}
}

func TestBroadcasterSendToUnknown(t *testing.T) {
	b := NewBroadcaster()
	// Кадр в никуда просто отбрасывается.
	b.SendTo("ghost", api.ServerResponse{Type: api.ResponseInfo})
}

func TestBroadcasterBroadcast(t *testing.T) {
	b := NewBroadcaster()
	alice := b.Register("alice")
	bob := b.Register("bob")

	b.Broadcast(api.ServerResponse{Type: api.ResponseInfo, Text: "all hands"})

	for name, ch := range map[string]chan api.ServerResponse{"alice": alice, "bob": bob} {
		select {
		case msg := <-ch:
			if msg.Text != "all hands" {
				t.Errorf("%s got %q, want all hands", name, msg.Text)
			}
		default:
			t.Errorf("%s got nothing", name)
		}
	}
}

func TestBroadcasterReregisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("alice")
	fresh := b.Register("alice")

	if _, ok := <-old; ok {
		t.Error("old channel still open after re-register")
	}

	b.SendTo("alice", api.ServerResponse{Type: api.ResponseInfo})
	select {
	case <-fresh:
	default:
		t.Error("fresh channel got nothing")
	}

	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", b.SubscriberCount())
	}
}

func TestBroadcasterUnregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("alice")

	b.Unregister("alice")

	if _, ok := <-ch; ok {
		t.Error("channel still open after Unregister")
	}
	if b.HasSubscriber("alice") {
		t.Error("HasSubscriber() = true after Unregister")
	}

	// Повторный Unregister ничего не ломает.
	b.Unregister("alice")
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")

	// Забиваем буфер до отказа и шлем еще один кадр: он должен
	// тихо потеряться, не блокируя отправителя.
	for i := 0; i < cap(ch); i++ {
		b.SendTo("slow", api.ServerResponse{Type: api.ResponseInfo})
	}
	b.SendTo("slow", api.ServerResponse{Type: api.ResponseError, Text: "overflow"})

	if len(ch) != cap(ch) {
		t.Errorf("len(ch) = %d, want full buffer %d", len(ch), cap(ch))
	}
}
