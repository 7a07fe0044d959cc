package domain

import "time"

// Status textual de tarefa tratado como sinônimo de concluída
const TaskStatusCompleted = "completed"

// TaskRecord representa uma tarefa da agenda do CRM
type TaskRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Completed bool       `json:"completed"`
	Status    string     `json:"status,omitempty"`
	ClientID  string     `json:"client_id,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsCompleted considera tanto o booleano quanto o status textual
func (t TaskRecord) IsCompleted() bool {
	return t.Completed || t.Status == TaskStatusCompleted
}

// IsOverdue indica se a tarefa está atrasada em relação ao instante informado
func (t TaskRecord) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && t.DueDate != nil && t.DueDate.Before(now)
}
