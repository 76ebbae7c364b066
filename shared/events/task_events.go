package events

import "time"

// Payloads de los eventos de integración del dominio Task.

type TaskCreated struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type TaskUpdated struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type TaskDeleted struct {
	ID string `json:"id"`
}
