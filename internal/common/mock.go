package common

import (
	"context"
	"sync"
)

type PublishedMessage struct {
	Key      BindingKey
	Exchange Exchange
	Body     []byte
}

// MockMessageProducer records every published message. Set Err to make Publish fail.
type MockMessageProducer struct {
	mu       sync.Mutex
	Err      error
	Messages []PublishedMessage
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, PublishedMessage{Key: key, Exchange: exchange, Body: msg})
	return nil
}

func (m *MockMessageProducer) Keys() []BindingKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]BindingKey, len(m.Messages))
	for i, msg := range m.Messages {
		keys[i] = msg.Key
	}
	return keys
}
