package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries every trip workflow event.
const Topic = "goginie.trips"

type Kind string

const (
	PhaseChanged   Kind = "phase_changed"
	PlanReady      Kind = "plan_ready"
	CategoryBooked Kind = "category_booked"
	CategoryFailed Kind = "category_failed"
	PlanRejected   Kind = "plan_rejected"
	PlanningFailed Kind = "planning_failed"
)

// Event is a domain event emitted by a trip run.
type Event struct {
	Kind     Kind      `json:"kind"`
	RunID    string    `json:"run_id"`
	Phase    string    `json:"phase,omitempty"`
	Category string    `json:"category,omitempty"`
	Message  string    `json:"message,omitempty"`
	Time     time.Time `json:"time"`
}

// Publisher is the only thing the orchestrator knows about notifications.
type Publisher interface {
	Publish(e Event)
}

// Bus is an in-process pub/sub backed by watermill's Go channel transport.
// Subscribers only see events published after they subscribe. A publish
// returns once every subscriber has taken the message, so events from one
// goroutine arrive in order; a subscriber whose buffer is full drops events
// instead of stalling the publisher.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				BlockPublishUntilSubscriberAck: true,
			},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish failures are logged and dropped.
func (b *Bus) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		log.Printf("❌ Failed to encode %s event: %v", e.Kind, err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("run_id", e.RunID)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		log.Printf("❌ Failed to publish %s event: %v", e.Kind, err)
	}
}

// Subscribe streams events until ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	msgs, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", Topic, err)
	}

	out := make(chan Event, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var e Event
			err := json.Unmarshal(msg.Payload, &e)
			msg.Ack()
			if err != nil {
				log.Printf("⚠️  Dropping undecodable event %s: %v", msg.UUID, err)
				continue
			}
			offer(out, e)
		}
	}()
	return out, nil
}

// SubscribeRun is Subscribe filtered to a single run.
func (b *Bus) SubscribeRun(ctx context.Context, runID string) (<-chan Event, error) {
	all, err := b.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan Event, subscriberBuffer)
	go func() {
		defer close(out)
		for e := range all {
			if e.RunID == runID {
				offer(out, e)
			}
		}
	}()
	return out, nil
}

const subscriberBuffer = 64

func offer(out chan<- Event, e Event) {
	select {
	case out <- e:
	default:
		log.Printf("⚠️  Subscriber too slow — dropped %s event for run %s", e.Kind, e.RunID)
	}
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
