package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound señala que la tarea no existe; los adapters HTTP lo
	// traducen a 404 y debe distinguirse de un fallo de transporte.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTask señala un payload que no cumple las restricciones de campo.
	ErrInvalidTask = errors.New("invalid task")
	// ErrInvalidStatus señala un token de estado desconocido.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrStoreUnavailable envuelve cualquier fallo de conectividad con el
	// almacén de documentos (se traduce a 500, nunca a 404).
	ErrStoreUnavailable = errors.New("task store unavailable")
)

// --- Repositorio de Tasks ---

// TaskRepository aísla el almacén de documentos. Las operaciones de listado
// omiten los documentos que no se pueden decodificar en lugar de abortar.
type TaskRepository interface {
	FindAll(ctx context.Context) ([]*Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	// Save hace upsert por id: si la tarea no trae id, genera uno nuevo y
	// fija CreatedAt; siempre refresca UpdatedAt antes de persistir.
	Save(ctx context.Context, t *Task) (*Task, error)
	// DeleteByID es idempotente: borrar un id inexistente no es un error en
	// esta capa. La comprobación de existencia corresponde al servicio.
	DeleteByID(ctx context.Context, id string) error
	FindByStatus(ctx context.Context, status TaskStatus) ([]*Task, error)
	// SearchByKeyword hace un match de substring insensible a mayúsculas
	// sobre título y descripción. El almacén no soporta búsqueda de texto
	// insensible a mayúsculas, así que la implementación descarga la
	// colección completa y filtra en memoria: O(n) por búsqueda.
	SearchByKeyword(ctx context.Context, keyword string) ([]*Task, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// ---------- Helpers comunes (cache keys, etc.) ----------

func TaskCacheKeyByID(id string) string {
	return fmt.Sprintf("task:id:%s", id)
}
