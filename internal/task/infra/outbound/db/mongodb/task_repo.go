// en internal/task/infra/outbound/db/mongodb/task_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const tasksCollection = "tasks"

// TaskRepoMongoDB implementa la interfaz TaskRepository sobre MongoDB.
// Trabaja con bson.M crudo y delega el mapeo en el codec, porque la
// colección mezcla generaciones de codificación.
type TaskRepoMongoDB struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewTaskRepoMongoDB es el constructor del repositorio.
func NewTaskRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string, log *zap.Logger) (*TaskRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	return &TaskRepoMongoDB{
		coll: client.Database(dbName).Collection(tasksCollection),
		log:  log,
	}, nil
}

// Verificación estática
var _ taskDomain.TaskRepository = (*TaskRepoMongoDB)(nil)

// storeErr envuelve fallos de transporte en el sentinel del dominio, para
// que los llamantes puedan distinguirlos de un "not found".
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", taskDomain.ErrStoreUnavailable, op, err)
}

// --- Lectura ---

func (r *TaskRepoMongoDB) FindAll(ctx context.Context) ([]*taskDomain.Task, error) {
	return r.findByFilter(ctx, bson.M{})
}

func (r *TaskRepoMongoDB) FindByID(ctx context.Context, id string) (*taskDomain.Task, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{fieldID: id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, taskDomain.ErrTaskNotFound
		}
		return nil, storeErr("find by id", err)
	}

	task, err := decodeTask(doc)
	if err != nil {
		// Documento irrecuperable: para el llamante equivale a no existir.
		r.log.Warn("Skipping undecodable task document",
			zap.String("task_id", id),
			zap.Error(err))
		return nil, taskDomain.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepoMongoDB) FindByStatus(ctx context.Context, status taskDomain.TaskStatus) ([]*taskDomain.Task, error) {
	return r.findByFilter(ctx, bson.M{fieldStatus: string(status)})
}

// SearchByKeyword descarga la colección completa y filtra en memoria,
// porque el almacén no soporta búsqueda de texto insensible a mayúsculas.
// Es O(n) sobre el tamaño de la colección: un atajo asumido, no escalable.
func (r *TaskRepoMongoDB) SearchByKeyword(ctx context.Context, keyword string) ([]*taskDomain.Task, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	var matched []*taskDomain.Task
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (r *TaskRepoMongoDB) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{fieldID: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, storeErr("exists by id", err)
	}
	return count > 0, nil
}

// --- Escritura ---

// Save persiste por upsert (sobreescritura por id). Si la tarea no trae id,
// se considera nueva: id generado y CreatedAt fijado aquí. UpdatedAt se
// refresca en toda escritura.
func (r *TaskRepoMongoDB) Save(ctx context.Context, t *taskDomain.Task) (*taskDomain.Task, error) {
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	doc := encodeTask(t)
	_, err := r.coll.ReplaceOne(ctx, bson.M{fieldID: t.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, storeErr("save", err)
	}
	return t, nil
}

// DeleteByID borra sin comprobar existencia: es idempotente en esta capa.
func (r *TaskRepoMongoDB) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{fieldID: id}); err != nil {
		return storeErr("delete by id", err)
	}
	return nil
}

// --- Helpers ---

// findByFilter itera el cursor decodificando documento a documento. Un
// documento que no decodifica se omite con un warning: un registro corrupto
// no debe tumbar el listado entero.
func (r *TaskRepoMongoDB) findByFilter(ctx context.Context, filter bson.M) ([]*taskDomain.Task, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("find", err)
	}
	defer cursor.Close(ctx)

	tasks := []*taskDomain.Task{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			r.log.Warn("Skipping undecodable task document", zap.Error(err))
			continue
		}
		task, err := decodeTask(doc)
		if err != nil {
			r.log.Warn("Skipping undecodable task document", zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("cursor", err)
	}

	return tasks, nil
}
