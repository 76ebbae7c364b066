package bus

import "context"

// Keyer permite a las entidades aportar una clave de particionado para el bus.
type Keyer interface {
	PartitionKey() string
}

// EventPublisher publica eventos de integración. La semántica del topic y el
// formato del payload se deciden en los adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}
