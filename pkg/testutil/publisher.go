package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/questboard/pkg/pubsub"
)

// MockPublisher records every published pack by topic. PublishFunc, when set,
// decides the returned error.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex     sync.Mutex
	published map[string][]*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, topic, pack); err != nil {
			return err
		}
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.published == nil {
		m.published = map[string][]*pubsub.Pack{}
	}
	m.published[topic] = append(m.published[topic], pack)
	return nil
}

func (m *MockPublisher) Published(topic string) []*pubsub.Pack {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]*pubsub.Pack(nil), m.published[topic]...)
}
