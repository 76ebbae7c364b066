package mongodb

import (
	"testing"
	"time"

	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los documentos de la colección pueden venir de tres generaciones del
// servicio: campos *Ts (actual), campos legados con datetime, y campos
// legados con documento anidado. El codec debe leerlas todas sin fallar.

func TestDecodeTask_CurrentGeneration(t *testing.T) {
	created := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2023, 5, 2, 11, 30, 0, 0, time.UTC)
	due := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	doc := bson.M{
		"_id":         "task-1",
		"title":       "Comprar leche",
		"description": "2%",
		"status":      "IN_PROGRESS",
		"assignee":    "alice",
		"createdAtTs": primitive.NewDateTimeFromTime(created),
		"updatedAtTs": primitive.NewDateTimeFromTime(updated),
		"dueDateTs":   primitive.NewDateTimeFromTime(due),
	}

	task, err := decodeTask(doc)
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Comprar leche", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.Equal(t, taskDomain.TaskInProgress, task.Status)
	assert.Equal(t, "alice", task.Assignee)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, updated, task.UpdatedAt)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate)
}

func TestDecodeTask_LegacyDatetimeFields(t *testing.T) {
	created := time.Date(2021, 1, 15, 9, 0, 0, 0, time.UTC)

	doc := bson.M{
		"_id":       "task-legacy",
		"title":     "Tarea antigua",
		"status":    "COMPLETED",
		"createdAt": primitive.NewDateTimeFromTime(created),
		"updatedAt": primitive.NewDateTimeFromTime(created),
	}

	task, err := decodeTask(doc)
	require.NoError(t, err)

	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, created, task.UpdatedAt)
	assert.Nil(t, task.DueDate, "dueDate ausente debería quedarse en nil")
}

// La generación actual tiene precedencia cuando coexisten ambas.
func TestDecodeTask_CurrentGenerationWins(t *testing.T) {
	legacy := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	doc := bson.M{
		"_id":         "task-both",
		"title":       "t",
		"createdAt":   primitive.NewDateTimeFromTime(legacy),
		"createdAtTs": primitive.NewDateTimeFromTime(current),
		"updatedAt":   primitive.NewDateTimeFromTime(legacy),
		"updatedAtTs": primitive.NewDateTimeFromTime(current),
	}

	task, err := decodeTask(doc)
	require.NoError(t, err)
	assert.Equal(t, current, task.CreatedAt)
	assert.Equal(t, current, task.UpdatedAt)
}

// Un timestamp legado guardado como documento anidado no se puede
// recuperar: el codec degrada al tiempo actual en vez de fallar.
func TestDecodeTask_LegacyNestedTimestamp(t *testing.T) {
	before := time.Now().UTC()

	doc := bson.M{
		"_id":       "task-nested",
		"title":     "t",
		"createdAt": bson.M{"year": 2019, "month": 3, "day": 7},
		"updatedAt": bson.M{"year": 2019, "month": 3, "day": 8},
		"dueDate":   bson.M{"year": 2019, "month": 4, "day": 1},
	}

	task, err := decodeTask(doc)
	require.NoError(t, err)

	assert.False(t, task.CreatedAt.IsZero())
	assert.False(t, task.CreatedAt.Before(before))
	assert.False(t, task.UpdatedAt.IsZero())
	require.NotNil(t, task.DueDate, "un dueDate anidado degrada al tiempo actual, no a nil")
	assert.False(t, task.DueDate.Before(before))
}

func TestDecodeTask_MissingTimestampsDefaultToNow(t *testing.T) {
	before := time.Now().UTC()

	task, err := decodeTask(bson.M{"_id": "task-bare", "title": "t"})
	require.NoError(t, err)

	assert.False(t, task.CreatedAt.Before(before))
	assert.False(t, task.UpdatedAt.Before(before))
	assert.Nil(t, task.DueDate)
}

func TestDecodeTask_UnknownStatusFallsBackToPending(t *testing.T) {
	task, err := decodeTask(bson.M{"_id": "task-x", "title": "t", "status": "ARCHIVED"})
	require.NoError(t, err)
	assert.Equal(t, taskDomain.TaskPending, task.Status)
}

func TestDecodeTask_MissingID(t *testing.T) {
	_, err := decodeTask(bson.M{"title": "sin id"})
	assert.Error(t, err)
}

// Round-trip: encode(decode(doc)) conserva los valores de todos los campos.
func TestCodec_RoundTrip(t *testing.T) {
	due := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	original := &taskDomain.Task{
		ID:          "task-rt",
		Title:       "Round trip",
		Description: "desc",
		Status:      taskDomain.TaskCancelled,
		Assignee:    "carol",
		CreatedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		DueDate:     &due,
	}

	decoded, err := decodeTask(encodeTask(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeTask_OmitsNilDueDate(t *testing.T) {
	doc := encodeTask(&taskDomain.Task{ID: "task-nodue", Title: "t", Status: taskDomain.TaskPending})

	_, hasDue := doc["dueDateTs"]
	assert.False(t, hasDue)
	// Los campos legados no se reescriben nunca.
	_, hasLegacy := doc["createdAt"]
	assert.False(t, hasLegacy)
}
