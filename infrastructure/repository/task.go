package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

const tasksTable = "tasks"

type TaskRepository interface {
	List() ([]domain.TaskRecord, error)
	Create(task *domain.TaskRecord) error
	Update(task *domain.TaskRecord) error
	Delete(id string) error
}

type taskRepository struct {
	conn *postgres.Connection
}

func NewTaskRepository(conn *postgres.Connection) TaskRepository {
	return &taskRepository{
		conn: conn,
	}
}

func (r *taskRepository) List() ([]domain.TaskRecord, error) {
	query, args, err := squirrel.
		Select("id, title, completed, status, client_id, due_date, created_at").
		From(tasksTable).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.TaskRecord, 0)
	for rows.Next() {
		task := domain.TaskRecord{}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Completed,
			&task.Status,
			&task.ClientID,
			&task.DueDate,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tarefa: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) Create(task *domain.TaskRecord) error {
	now := time.Now()
	task.CreatedAt = &now

	query, args, err := squirrel.
		Insert(tasksTable).
		Columns("id", "title", "completed", "status", "client_id", "due_date", "created_at").
		Values(
			task.ID,
			task.Title,
			task.Completed,
			task.Status,
			task.ClientID,
			task.DueDate,
			task.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *taskRepository) Update(task *domain.TaskRecord) error {
	query, args, err := squirrel.
		Update(tasksTable).
		Set("title", task.Title).
		Set("completed", task.Completed).
		Set("status", task.Status).
		Set("due_date", task.DueDate).
		Where(squirrel.Eq{"id": task.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *taskRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(tasksTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
