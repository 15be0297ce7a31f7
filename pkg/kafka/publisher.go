package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/questx-lab/questboard/pkg/pubsub"
)

// Publisher sends packs to kafka. Packs sharing a key land on the same
// partition so notifications of one user keep their order.
type Publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(clientID string, brokerAddrs []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, err
	}

	return &Publisher{producer: producer}, nil
}

func (p *Publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *Publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.ByteEncoder(pack.Key),
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: time.Now(),
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}
