// en internal/task/infra/inbound/http/task_handler.go
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/taskdesk/internal/task/application"
	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	"github.com/davicafu/taskdesk/pkg/utils"
)

// TaskHandler encapsula los endpoints HTTP relacionados con Task.
type TaskHandler struct {
	service *application.TaskService
}

// NewTaskHandler crea un nuevo TaskHandler.
func NewTaskHandler(service *application.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskPayload es el cuerpo aceptado por POST y PUT. Las restricciones de
// campo (título obligatorio ≤255, descripción ≤1000) se validan aquí, en la
// frontera, no en el dominio.
type taskPayload struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description" binding:"max=1000"`
	Status      string     `json:"status"`
	Assignee    *string    `json:"assignee"`
	DueDate     *time.Time `json:"dueDate"`
}

// --- Handlers CRUD ---

// CreateTask endpoint POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	// binding:"required" no rechaza títulos compuestos solo de espacios
	if strings.TrimSpace(req.Title) == "" {
		utils.SendBadRequest(c, "title must not be blank")
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req.Title, req.Description, req.Assignee, req.DueDate)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask endpoint GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.service.GetTaskByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			utils.SendNotFound(c, "task not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks endpoint GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.service.GetAllTasks(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask endpoint PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req taskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		utils.SendBadRequest(c, "title must not be blank")
		return
	}

	// Un payload sin estado equivale a PENDING, como en las versiones
	// anteriores de la API.
	status := taskDomain.TaskPending
	if req.Status != "" {
		var err error
		if status, err = taskDomain.ParseTaskStatus(req.Status); err != nil {
			utils.SendBadRequest(c, "unknown status: "+req.Status)
			return
		}
	}

	task, err := h.service.UpdateTask(c.Request.Context(), c.Param("id"), taskDomain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			utils.SendNotFound(c, "task not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask endpoint DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			utils.SendNotFound(c, "task not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Handlers de consulta ---

// GetTasksByStatus endpoint GET /api/tasks/status/:status
func (h *TaskHandler) GetTasksByStatus(c *gin.Context) {
	status, err := taskDomain.ParseTaskStatus(c.Param("status"))
	if err != nil {
		utils.SendBadRequest(c, "unknown status: "+c.Param("status"))
		return
	}

	tasks, err := h.service.GetTasksByStatus(c.Request.Context(), status)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// SearchTasks endpoint GET /api/tasks/search?keyword=...
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		utils.SendBadRequest(c, "keyword query parameter is required")
		return
	}

	tasks, err := h.service.SearchTasks(c.Request.Context(), keyword)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, tasks)
}
