package domain

import (
	"strings"
	"time"

	sharedBus "github.com/davicafu/taskdesk/shared/platform/bus"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// ParseTaskStatus interpreta un token de estado (insensible a mayúsculas).
// Devuelve ErrInvalidStatus si el token no corresponde a ningún estado conocido.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(s)) {
	case TaskPending:
		return TaskPending, nil
	case TaskInProgress:
		return TaskInProgress, nil
	case TaskCompleted:
		return TaskCompleted, nil
	case TaskCancelled:
		return TaskCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Task es la entidad de dominio. Los tags JSON definen el formato de la API
// (camelCase), el mapeo hacia el almacén de documentos vive en el codec.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// NewTask construye una tarea nueva, todavía sin id: el id y los timestamps
// definitivos los asigna el repositorio al persistir, de forma que en la
// creación CreatedAt y UpdatedAt llevan exactamente el mismo instante.
func NewTask(title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       title,
		Description: description,
		Status:      TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskUpdate es el payload de actualización parcial. Title, Description y
// Status se sobreescriben siempre; Assignee y DueDate solo cuando vienen
// informados. La asimetría es deliberada: replica el contrato histórico de
// la API y los clientes dependen de ella.
type TaskUpdate struct {
	Title       string
	Description string
	Status      TaskStatus
	Assignee    *string
	DueDate     *time.Time
}

// ApplyUpdate aplica el patch sobre la entidad y sella UpdatedAt una única
// vez al final, en lugar de repartir el sellado por cada setter.
func (t *Task) ApplyUpdate(patch TaskUpdate) {
	t.Title = patch.Title
	t.Description = patch.Description
	t.Status = patch.Status
	if patch.Assignee != nil {
		t.Assignee = *patch.Assignee
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	t.Touch()
}

// Touch refresca UpdatedAt. CreatedAt nunca se modifica tras la creación.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

func (t *Task) PartitionKey() string {
	return t.ID
}

// Verificación estática para asegurar que Task implementa la interfaz
var _ sharedBus.Keyer = (*Task)(nil)
