package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// topicFor maps an event type to its Kafka topic. Partition key is the order
// id so all events for one order keep their order.
func topicFor(eventType string) string {
	switch eventType {
	case TypeOrderCreated:
		return "orders.created"
	case TypeOrderConfirmed:
		return "orders.confirmed"
	case TypeOrderCancelled:
		return "orders.cancelled"
	default:
		return "orders.lifecycle"
	}
}

// Producer writes lifecycle events asynchronously so request handlers never
// block on the broker.
type Producer struct {
	w     *kafka.Writer
	inbox chan kafka.Message
}

func NewProducer(brokers []string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox: make(chan kafka.Message, buf),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					_ = p.w.WriteMessages(context.Background(), m)
				}
				_ = p.w.Close()
				return
			case m := <-p.inbox:
				_ = p.w.WriteMessages(context.Background(), m)
			}
		}
	}()
}

func (p *Producer) Publish(eventType string, key, value []byte) {
	select {
	case p.inbox <- kafka.Message{
		Topic: topicFor(eventType),
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}:
	default:
		// full inbox: drop rather than stall a checkout request
	}
}
