package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/taskdesk/shared/platform/bus"
)

// InMemoryEventBus implementa un bus de eventos para un solo topic, sobre
// canales de Go. Se usa en despliegues locales sin Kafka.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	topic       string
}

// Verificación estática
var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
	}
}

// Publish envía un evento a todos los suscriptores de este bus. La entrega
// es best-effort: un suscriptor con el buffer lleno pierde el evento.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if len(b.subscribers) > 0 {
		go b.distribute(b.subscribers, payloadBytes)
	}
	return nil
}

func (b *InMemoryEventBus) distribute(subs []chan interface{}, event interface{}) {
	for _, subChan := range subs {
		select {
		case subChan <- event:
		default:
		}
	}
}

// Subscribe suscribe un nuevo oyente a este bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}
