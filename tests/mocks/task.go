package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	"github.com/google/uuid"
)

// InMemoryTaskRepo simula TaskRepository sobre un mapa. Reproduce el
// contrato del repositorio real: Save hace upsert asignando id/timestamps y
// DeleteByID es idempotente.
type InMemoryTaskRepo struct {
	Tasks map[string]*taskDomain.Task
	// FailWith, si no es nil, se devuelve en toda operación para simular un
	// fallo de transporte del almacén.
	FailWith error
	mu       sync.Mutex
}

// Verificación estática
var _ taskDomain.TaskRepository = (*InMemoryTaskRepo)(nil)

func NewInMemoryTaskRepo() *InMemoryTaskRepo {
	return &InMemoryTaskRepo{
		Tasks: make(map[string]*taskDomain.Task),
	}
}

// --- Implementación de la interfaz TaskRepository ---

func (r *InMemoryTaskRepo) FindAll(ctx context.Context) ([]*taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}

	list := []*taskDomain.Task{}
	for _, t := range r.Tasks {
		list = append(list, copyTask(t))
	}
	return list, nil
}

func (r *InMemoryTaskRepo) FindByID(ctx context.Context, id string) (*taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}

	t, ok := r.Tasks[id]
	if !ok {
		return nil, taskDomain.ErrTaskNotFound
	}
	// Devolvemos una copia: mutar el resultado no debe tocar el "almacén".
	return copyTask(t), nil
}

func (r *InMemoryTaskRepo) Save(ctx context.Context, t *taskDomain.Task) (*taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}

	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	r.Tasks[t.ID] = copyTask(t)
	return t, nil
}

func (r *InMemoryTaskRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}

	delete(r.Tasks, id) // idempotente, igual que el repositorio real
	return nil
}

func (r *InMemoryTaskRepo) FindByStatus(ctx context.Context, status taskDomain.TaskStatus) ([]*taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}

	list := []*taskDomain.Task{}
	for _, t := range r.Tasks {
		if t.Status == status {
			list = append(list, copyTask(t))
		}
	}
	return list, nil
}

func (r *InMemoryTaskRepo) SearchByKeyword(ctx context.Context, keyword string) ([]*taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}

	needle := strings.ToLower(keyword)
	list := []*taskDomain.Task{}
	for _, t := range r.Tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			list = append(list, copyTask(t))
		}
	}
	return list, nil
}

func (r *InMemoryTaskRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return false, r.FailWith
	}

	_, ok := r.Tasks[id]
	return ok, nil
}

func copyTask(t *taskDomain.Task) *taskDomain.Task {
	clone := *t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	return &clone
}
