package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publica um evento por notificação; o envio real fica a
// cargo de quem consome o tópico.
type KafkaNotifier struct {
	w   messageWriter
	now func() time.Time
}

type kafkaEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	Position   int       `json:"position,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return newKafkaNotifier(kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}))
}

func newKafkaNotifier(w messageWriter) *KafkaNotifier {
	return &KafkaNotifier{w: w, now: time.Now}
}

func (n *KafkaNotifier) AppointmentConfirmed(ctx context.Context, to Recipient, date, start string) error {
	return n.publish(ctx, Message{Kind: KindAppointmentConfirmed, To: to, Date: date, Time: start})
}

func (n *KafkaNotifier) SlotAssigned(ctx context.Context, to Recipient, date, start string) error {
	return n.publish(ctx, Message{Kind: KindSlotAssigned, To: to, Date: date, Time: start})
}

func (n *KafkaNotifier) AppointmentCancelled(ctx context.Context, to Recipient, date, start string) error {
	return n.publish(ctx, Message{Kind: KindAppointmentCancelled, To: to, Date: date, Time: start})
}

func (n *KafkaNotifier) WaitingListPosition(ctx context.Context, to Recipient, position int) error {
	return n.publish(ctx, Message{Kind: KindWaitingListPosition, To: to, Position: position})
}

func (n *KafkaNotifier) Close() error {
	return n.w.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, m Message) error {
	ev := kafkaEvent{
		EventID:    uuid.NewString(),
		EventType:  string(m.Kind),
		Email:      m.To.Email,
		Name:       m.To.Name,
		Date:       m.Date,
		Time:       m.Time,
		Position:   m.Position,
		OccurredAt: n.now().UTC(),
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	// chave por e-mail mantém a ordem por cliente na mesma partição
	return n.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.To.Email),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "event_type", Value: []byte(ev.EventType)},
		},
	})
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

var _ Notifier = (*KafkaNotifier)(nil)
