// en internal/task/application/task_service.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	sharedEvents "github.com/davicafu/taskdesk/shared/events"
	sharedBus "github.com/davicafu/taskdesk/shared/platform/bus"
	sharedCache "github.com/davicafu/taskdesk/shared/platform/cache"
	sharedUtils "github.com/davicafu/taskdesk/shared/utils"
	"go.uber.org/zap"
)

// TaskService define los casos de uso relacionados con Task.
// Incorpora repositorio, caché, publicador de eventos y logger.
type TaskService struct {
	repo      taskDomain.TaskRepository
	cache     sharedCache.Cache
	publisher sharedBus.EventPublisher
	log       *zap.Logger
}

// NewTaskService es el constructor para el servicio de tareas. Tanto la
// caché como el publicador pueden ser nil (se degradan a no-op).
func NewTaskService(repo taskDomain.TaskRepository, cache sharedCache.Cache, publisher sharedBus.EventPublisher, log *zap.Logger) *TaskService {
	return &TaskService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// --- Lectura ---

// GetAllTasks es un pass-through al repositorio.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]*taskDomain.Task, error) {
	return s.repo.FindAll(ctx)
}

// GetTaskByID obtiene una tarea, usando el patrón cache-aside con reintentos.
func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*taskDomain.Task, error) {
	// 1. Intentar obtener de la caché
	if s.cache != nil {
		var t taskDomain.Task
		if hit, _ := s.cache.Get(ctx, taskDomain.TaskCacheKeyByID(id), &t); hit {
			return &t, nil
		}
	}

	// 2. Si es 'miss', ir al repositorio con reintentos
	var task *taskDomain.Task
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var errRetry error
		task, errRetry = s.repo.FindByID(ctx, id)
		return errRetry
	})

	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			s.log.Warn("Task not found", zap.String("task_id", id))
		} else {
			s.log.Error("Failed to fetch task", zap.String("task_id", id), zap.Error(err))
		}
		return nil, err
	}

	// 3. Actualizar caché en segundo plano para la próxima vez
	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, 120, s.log)

	return task, nil
}

// GetTasksByStatus es un pass-through al filtro de igualdad del repositorio.
func (s *TaskService) GetTasksByStatus(ctx context.Context, status taskDomain.TaskStatus) ([]*taskDomain.Task, error) {
	return s.repo.FindByStatus(ctx, status)
}

// SearchTasks es un pass-through a la búsqueda por substring del repositorio.
func (s *TaskService) SearchTasks(ctx context.Context, keyword string) ([]*taskDomain.Task, error) {
	return s.repo.SearchByKeyword(ctx, keyword)
}

// --- Escritura ---

// CreateTask crea una nueva tarea, publica su evento y actualiza la caché.
// No se comprueba colisión de id: los clientes envían tareas sin id.
func (s *TaskService) CreateTask(ctx context.Context, title, description string, assignee *string, dueDate *time.Time) (*taskDomain.Task, error) {
	task := taskDomain.NewTask(title, description)
	if assignee != nil {
		task.Assignee = *assignee
	}
	if dueDate != nil {
		task.DueDate = dueDate
	}

	task, err := s.repo.Save(ctx, task)
	if err != nil {
		s.log.Error("Failed to create task", zap.Error(err))
		return nil, err
	}

	s.publishEvent(ctx, taskDomain.TaskCreated, sharedEvents.TaskCreated{
		ID: task.ID, Title: task.Title, Description: task.Description,
		Status: string(task.Status), Assignee: task.Assignee, DueDate: task.DueDate,
	})

	// Actualizar caché en segundo plano
	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, 60, s.log)

	return task, nil
}

// UpdateTask carga la tarea, aplica el patch parcial y la persiste.
// Falla con ErrTaskNotFound (sin escribir nada) si el id no existe.
//
// La lectura y la escritura no son atómicas: dos updates concurrentes sobre
// el mismo id pueden pisarse (last-write-wins). Es una limitación asumida,
// no se aplica control de concurrencia optimista.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch taskDomain.TaskUpdate) (*taskDomain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.ApplyUpdate(patch)

	task, err = s.repo.Save(ctx, task)
	if err != nil {
		s.log.Error("Failed to update task", zap.String("task_id", id), zap.Error(err))
		return nil, err
	}

	s.publishEvent(ctx, taskDomain.TaskUpdated, sharedEvents.TaskUpdated{
		ID: task.ID, Title: task.Title, Description: task.Description,
		Status: string(task.Status), Assignee: task.Assignee, DueDate: task.DueDate,
	})

	// Actualizar caché en segundo plano
	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, 60, s.log)

	return task, nil
}

// DeleteTask comprueba la existencia antes de borrar para poder distinguir
// "not found" de un borrado efectivo (el repositorio borra de forma
// idempotente y no sabría decirlo).
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return taskDomain.ErrTaskNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Error("Failed to delete task", zap.String("task_id", id), zap.Error(err))
		return err
	}

	s.publishEvent(ctx, taskDomain.TaskDeleted, sharedEvents.TaskDeleted{ID: id})

	// Eliminar de la caché en segundo plano
	sharedCache.AsyncCacheDelete(ctx, s.cache, taskDomain.TaskCacheKeyByID(id), s.log)

	return nil
}

// publishEvent publica en modo "dispara y olvida": un fallo del bus se
// registra pero nunca hace fallar la operación CRUD.
func (s *TaskService) publishEvent(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("Failed to marshal event payload", zap.String("type", eventType), zap.Error(err))
		return
	}

	evt := sharedEvents.IntegrationEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
