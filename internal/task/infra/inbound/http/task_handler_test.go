// en internal/task/infra/inbound/http/task_handler_test.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/taskdesk/internal/task/application"
	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	"github.com/davicafu/taskdesk/tests/mocks"
)

func setupRouter() (*gin.Engine, *mocks.InMemoryTaskRepo) {
	gin.SetMode(gin.TestMode)

	repo := mocks.NewInMemoryTaskRepo()
	service := application.NewTaskService(repo, mocks.NewDummyCache(), &mocks.CapturePublisher{}, zap.NewNop())

	router := gin.New()
	RegisterTaskRoutes(router, NewTaskHandler(service))
	return router, repo
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// -------------------- POST /api/tasks --------------------

func TestCreateTask_HTTPContract(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":"Buy milk","description":"2%"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, taskDomain.TaskPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateTask_ValidationFailures(t *testing.T) {
	router, _ := setupRouter()

	// título ausente
	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"description":"sin título"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// título compuesto solo de espacios
	rec = doJSON(router, http.MethodPost, "/api/tasks", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// título demasiado largo
	long := strings.Repeat("x", 256)
	rec = doJSON(router, http.MethodPost, "/api/tasks", `{"title":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// descripción demasiado larga
	longDesc := strings.Repeat("y", 1001)
	rec = doJSON(router, http.MethodPost, "/api/tasks", `{"title":"ok","description":"`+longDesc+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// -------------------- GET /api/tasks/:id --------------------

func TestGetTask_NotFoundHTTP(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodGet, "/api/tasks/no-existe", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "task not found")
}

// -------------------- PUT /api/tasks/:id --------------------

// Escenario completo: crear y luego actualizar con un patch que omite
// assignee y dueDate; deben conservar su valor anterior.
func TestUpdateTask_HTTPMergeScenario(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":"Buy milk","description":"2%","assignee":"alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	time.Sleep(2 * time.Millisecond)

	rec = doJSON(router, http.MethodPut, "/api/tasks/"+created.ID,
		`{"title":"Buy milk","description":"Whole","status":"COMPLETED"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Whole", updated.Description)
	assert.Equal(t, taskDomain.TaskCompleted, updated.Status)
	assert.Equal(t, "alice", updated.Assignee)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateTask_NotFoundHTTP(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodPut, "/api/tasks/no-existe", `{"title":"x"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask_UnknownStatus(t *testing.T) {
	router, repo := setupRouter()
	task := &taskDomain.Task{Title: "t", Status: taskDomain.TaskPending}
	_, err := repo.Save(context.Background(), task)
	require.NoError(t, err)

	rec := doJSON(router, http.MethodPut, "/api/tasks/"+task.ID, `{"title":"t","status":"bogus"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// -------------------- DELETE /api/tasks/:id --------------------

func TestDeleteTask_HTTPContract(t *testing.T) {
	router, repo := setupRouter()
	task := &taskDomain.Task{Title: "a borrar", Status: taskDomain.TaskPending}
	_, err := repo.Save(context.Background(), task)
	require.NoError(t, err)

	rec := doJSON(router, http.MethodDelete, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Borrar de nuevo: ya no existe, la API responde 404.
	rec = doJSON(router, http.MethodDelete, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// -------------------- GET /api/tasks/status/:status --------------------

func TestGetTasksByStatus_HTTPContract(t *testing.T) {
	router, repo := setupRouter()
	_, err := repo.Save(context.Background(), &taskDomain.Task{Title: "p", Status: taskDomain.TaskPending})
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), &taskDomain.Task{Title: "c", Status: taskDomain.TaskCompleted})
	require.NoError(t, err)

	// El token se acepta en minúsculas
	rec := doJSON(router, http.MethodGet, "/api/tasks/status/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "p", tasks[0].Title)
}

func TestGetTasksByStatus_UnknownToken(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodGet, "/api/tasks/status/bogus", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// -------------------- GET /api/tasks/search --------------------

func TestSearchTasks_HTTPContract(t *testing.T) {
	router, repo := setupRouter()
	_, err := repo.Save(context.Background(), &taskDomain.Task{Title: "Buy milk", Status: taskDomain.TaskPending})
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), &taskDomain.Task{Title: "Walk the dog", Status: taskDomain.TaskPending})
	require.NoError(t, err)

	// Insensible a mayúsculas: "MILK" casa con "Buy milk"
	rec := doJSON(router, http.MethodGet, "/api/tasks/search?keyword=MILK", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestSearchTasks_MissingKeyword(t *testing.T) {
	router, _ := setupRouter()

	rec := doJSON(router, http.MethodGet, "/api/tasks/search", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// -------------------- GET /api/tasks --------------------

func TestListTasks_HTTPContract(t *testing.T) {
	router, repo := setupRouter()
	_, err := repo.Save(context.Background(), &taskDomain.Task{Title: "una", Status: taskDomain.TaskPending})
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), &taskDomain.Task{Title: "otra", Status: taskDomain.TaskPending})
	require.NoError(t, err)

	rec := doJSON(router, http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []taskDomain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 2)
}
