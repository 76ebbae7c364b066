package mongodb

import (
	"fmt"
	"time"

	taskDomain "github.com/davicafu/taskdesk/internal/task/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// La colección contiene documentos escritos por varias versiones históricas
// del servicio. Los timestamps existen en dos generaciones: los campos
// nuevos (*Ts, datetime BSON) y los campos legados, que pueden ser un
// datetime o un documento anidado de una codificación anterior. El codec
// nunca rechaza un documento legado: degrada al tiempo actual.

const (
	fieldID          = "_id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldAssignee    = "assignee"

	// Generación actual
	fieldCreatedAtTs = "createdAtTs"
	fieldUpdatedAtTs = "updatedAtTs"
	fieldDueDateTs   = "dueDateTs"

	// Generación legada
	fieldCreatedAtLegacy = "createdAt"
	fieldUpdatedAtLegacy = "updatedAt"
	fieldDueDateLegacy   = "dueDate"
)

// ---------- Resolución de timestamps ----------

type tsKind int

const (
	tsAbsent       tsKind = iota
	tsValue               // datetime utilizable, de cualquiera de las dos generaciones
	tsLegacyNested        // codificación legada como documento anidado, irrecuperable
)

// tsField es la unión etiquetada que resulta de inspeccionar un campo
// timestamp del documento. Los llamantes deciden por 'kind', no por el tipo
// dinámico del valor crudo.
type tsField struct {
	kind tsKind
	at   time.Time
}

// resolveTimestamp aplica la precedencia entre generaciones: primero el
// campo nuevo; si no es un datetime, el campo legado; un legado anidado se
// marca como tal para que el decode lo sustituya por el tiempo actual.
func resolveTimestamp(doc bson.M, newField, legacyField string) tsField {
	if v, ok := doc[newField]; ok {
		if at, ok := asTime(v); ok {
			return tsField{kind: tsValue, at: at}
		}
	}

	if v, ok := doc[legacyField]; ok {
		if at, ok := asTime(v); ok {
			return tsField{kind: tsValue, at: at}
		}
		switch v.(type) {
		case bson.M, bson.D, map[string]interface{}:
			return tsField{kind: tsLegacyNested}
		}
	}

	return tsField{kind: tsAbsent}
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC(), true
	case time.Time:
		return t.UTC(), true
	default:
		return time.Time{}, false
	}
}

// requiredTime materializa un timestamp obligatorio (createdAt/updatedAt):
// cualquier cosa que no sea un datetime válido degrada al tiempo actual.
func requiredTime(f tsField, now time.Time) time.Time {
	if f.kind == tsValue {
		return f.at
	}
	return now
}

// optionalTime materializa dueDate: puede quedarse en nil si está ausente,
// pero un legado anidado también degrada al tiempo actual.
func optionalTime(f tsField, now time.Time) *time.Time {
	switch f.kind {
	case tsValue:
		at := f.at
		return &at
	case tsLegacyNested:
		at := now
		return &at
	default:
		return nil
	}
}

// ---------- Decode / Encode ----------

// decodeTask reconstruye la entidad desde el documento crudo. Solo falla si
// el documento no tiene un _id utilizable; el resto de campos degradan.
func decodeTask(doc bson.M) (*taskDomain.Task, error) {
	id, ok := doc[fieldID].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("document without usable _id: %v", doc[fieldID])
	}

	t := &taskDomain.Task{
		ID:          id,
		Title:       stringField(doc, fieldTitle),
		Description: stringField(doc, fieldDescription),
		Assignee:    stringField(doc, fieldAssignee),
	}

	// Un estado desconocido no invalida el documento: cae a PENDING.
	status, err := taskDomain.ParseTaskStatus(stringField(doc, fieldStatus))
	if err != nil {
		status = taskDomain.TaskPending
	}
	t.Status = status

	now := time.Now().UTC()
	t.CreatedAt = requiredTime(resolveTimestamp(doc, fieldCreatedAtTs, fieldCreatedAtLegacy), now)
	t.UpdatedAt = requiredTime(resolveTimestamp(doc, fieldUpdatedAtTs, fieldUpdatedAtLegacy), now)
	t.DueDate = optionalTime(resolveTimestamp(doc, fieldDueDateTs, fieldDueDateLegacy), now)

	return t, nil
}

// encodeTask serializa la entidad con los campos de la generación actual.
// Los campos legados no se reescriben nunca.
func encodeTask(t *taskDomain.Task) bson.M {
	doc := bson.M{
		fieldID:          t.ID,
		fieldTitle:       t.Title,
		fieldDescription: t.Description,
		fieldStatus:      string(t.Status),
		fieldAssignee:    t.Assignee,
		fieldCreatedAtTs: t.CreatedAt,
		fieldUpdatedAtTs: t.UpdatedAt,
	}
	if t.DueDate != nil {
		doc[fieldDueDateTs] = *t.DueDate
	}
	return doc
}

func stringField(doc bson.M, field string) string {
	s, _ := doc[field].(string)
	return s
}
