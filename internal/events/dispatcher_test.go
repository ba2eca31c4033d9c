package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	d.Subscribe(EventStudentCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ID)
		return nil
	})
	d.Subscribe(EventStudentCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ID)
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventStudentCreated,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:evt-1" || got[1] != "second:evt-1" {
		t.Errorf("handlers invoked = %v, want both in order", got)
	}
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var reached bool
	d.Subscribe(EventStudentEnrolled, func(_ context.Context, _ Event) error {
		return errors.New("handler down")
	})
	d.Subscribe(EventStudentEnrolled, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "evt-2",
		Type:      EventStudentEnrolled,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Error("failing handler stopped delivery to the next subscriber")
	}
}
