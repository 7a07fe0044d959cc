package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

const eventsTable = "events"

type EventRepository interface {
	List() ([]domain.EventRecord, error)
	Create(event *domain.EventRecord) error
	Delete(id string) error
}

type eventRepository struct {
	conn *postgres.Connection
}

func NewEventRepository(conn *postgres.Connection) EventRepository {
	return &eventRepository{
		conn: conn,
	}
}

func (r *eventRepository) List() ([]domain.EventRecord, error) {
	query, args, err := squirrel.
		Select("id, title, start_time, date, client_id, created_at").
		From(eventsTable).
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

	events := make([]domain.EventRecord, 0)
	for rows.Next() {
		event := domain.EventRecord{}
		err = rows.Scan(
			&event.ID,
			&event.Title,
			&event.StartTime,
			&event.Date,
			&event.ClientID,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}

func (r *eventRepository) Create(event *domain.EventRecord) error {
	now := time.Now()
	event.CreatedAt = &now

	query, args, err := squirrel.
		Insert(eventsTable).
		Columns("id", "title", "start_time", "date", "client_id", "created_at").
		Values(
			event.ID,
			event.Title,
			event.StartTime,
			event.Date,
			event.ClientID,
			event.CreatedAt,
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

func (r *eventRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(eventsTable).
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
