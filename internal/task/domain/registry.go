package domain

// Tipos de evento del dominio Task, como valores string.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

const TaskTopic = "task"
