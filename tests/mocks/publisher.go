package mocks

import (
	"context"
	"sync"

	sharedEvents "github.com/davicafu/taskdesk/shared/events"
	sharedBus "github.com/davicafu/taskdesk/shared/platform/bus"
)

// CapturePublisher guarda los eventos publicados para inspeccionarlos en
// los tests.
type CapturePublisher struct {
	Published []sharedEvents.IntegrationEvent
	// FailWith, si no es nil, se devuelve en cada Publish.
	FailWith error
	mu       sync.Mutex
}

// Verificación estática
var _ sharedBus.EventPublisher = (*CapturePublisher)(nil)

func (p *CapturePublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailWith != nil {
		return p.FailWith
	}
	if evt, ok := event.(sharedEvents.IntegrationEvent); ok {
		p.Published = append(p.Published, evt)
	}
	return nil
}

// Events devuelve una copia de los eventos capturados.
func (p *CapturePublisher) Events() []sharedEvents.IntegrationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sharedEvents.IntegrationEvent(nil), p.Published...)
}
