package dashboard

import (
	"context"
	"encoding/json"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/tiendazana/storefront-api/internal/kafka"
	"github.com/tiendazana/storefront-api/internal/orders"
)

// Service keeps the storefront's daily sales figures up to date from the
// pedidos.created stream.
type Service struct {
	Stats       Stats
	ServiceName string
}

// HandleOrderCreated is installed as the consumer handler.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil // ignore
	}

	seen, err := s.Stats.MarkSeen(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	day := env.OccurredAt.Format("2006-01-02")
	if err := s.Stats.Record(ctx, day, p.Items, p.Total.InexactFloat64()); err != nil {
		return err
	}
	log.Printf("%s: recorded order=%s day=%s total=%s", s.ServiceName, p.OrderID, day, p.Total)
	return nil
}
