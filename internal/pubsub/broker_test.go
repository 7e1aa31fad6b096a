package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/trouze/movienight/internal/testutil"
)

func TestBroker_PublishAndSubscribe(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	sub := broker.Subscribe("movie_night_members")
	defer sub.Unsubscribe()

	err := broker.Publish(context.Background(), "movie_night_members", "evt::set-cursor", 3)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case event := <-sub.C():
		if event.Channel != "movie_night_members" {
			t.Errorf("event.Channel = %q, want %q", event.Channel, "movie_night_members")
		}
		if event.Name != "evt::set-cursor" {
			t.Errorf("event.Name = %q, want %q", event.Name, "evt::set-cursor")
		}
		if string(event.Data) != "3" {
			t.Errorf("event.Data = %q, want %q", string(event.Data), "3")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestBroker_ChannelsAreIsolated(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	membersSub := broker.Subscribe("movie_night_members")
	defer membersSub.Unsubscribe()
	chatSub := broker.Subscribe("chat")
	defer chatSub.Unsubscribe()

	err := broker.Publish(context.Background(), "chat", "evt::main-chat", "hello")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case event := <-chatSub.C():
		if event.Name != "evt::main-chat" {
			t.Errorf("event.Name = %q, want %q", event.Name, "evt::main-chat")
		}
	case <-time.After(time.Second):
		t.Fatal("chat subscriber did not receive event")
	}

	select {
	case event := <-membersSub.C():
		t.Errorf("members subscriber received event %q from another channel", event.Name)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	sub1 := broker.Subscribe("movie_night_members")
	sub2 := broker.Subscribe("movie_night_members")
	sub3 := broker.Subscribe("movie_night_members")

	if count := broker.SubscriberCount("movie_night_members"); count != 3 {
		t.Errorf("SubscriberCount() = %d, want 3", count)
	}

	err := broker.Publish(context.Background(), "movie_night_members", "evt::trigger-party", "member-1")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for i, sub := range []*Subscription{sub1, sub2, sub3} {
		select {
		case event := <-sub.C():
			if event.Name != "evt::trigger-party" {
				t.Errorf("subscriber %d got event %q, want %q", i+1, event.Name, "evt::trigger-party")
			}
		case <-time.After(time.Second):
			t.Errorf("subscriber %d did not receive event", i+1)
		}
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	sub := broker.Subscribe("movie_night_members")

	if count := broker.SubscriberCount("movie_night_members"); count != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", count)
	}

	sub.Unsubscribe()

	deadline := time.Now().Add(time.Second)
	for broker.SubscriberCount("movie_night_members") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber still registered after Unsubscribe")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The event channel closes on unsubscribe
	select {
	case _, ok := <-sub.C():
		if ok {
			t.Error("received event after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("event channel was not closed after Unsubscribe")
	}

	// Second call is a no-op
	sub.Unsubscribe()
}

func TestBroker_PublishWithoutSubscribers(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	// No subscribers; publish should not error or block
	err := broker.Publish(context.Background(), "movie_night_members", "evt::set-cursor", 0)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestBroker_PublishUnmarshalablePayload(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())
	defer broker.Close()

	err := broker.Publish(context.Background(), "chat", "evt::main-chat", make(chan int))
	if err == nil {
		t.Error("Publish() with unmarshalable payload should error")
	}
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker(testutil.NopLogger())

	sub := broker.Subscribe("movie_night_members")
	broker.Close()

	select {
	case _, ok := <-sub.C():
		if ok {
			t.Error("received event after broker Close")
		}
	case <-time.After(time.Second):
		t.Fatal("event channel was not closed by broker Close")
	}

	// Unsubscribe after Close must not block
	sub.Unsubscribe()

	// Double close is a no-op
	broker.Close()
}
