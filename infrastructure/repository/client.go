package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

const clientsTable = "clients"

const clientColumns = "id, company_name, contact_name, email, stage, deal_value, assigned_to, notes, created_at, updated_at"

type ClientRepository interface {
	List() ([]domain.ClientRecord, error)
	GetByID(id string) (*domain.ClientRecord, error)
	Create(client *domain.ClientRecord) error
	Update(client *domain.ClientRecord) error
	Delete(id string) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) List() ([]domain.ClientRecord, error) {
	query, args, err := squirrel.
		Select(clientColumns).
		From(clientsTable).
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

	clients := make([]domain.ClientRecord, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, *client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) GetByID(id string) (*domain.ClientRecord, error) {
	query, args, err := squirrel.
		Select(clientColumns).
		From(clientsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	client := &domain.ClientRecord{}
	err = row.Scan(
		&client.ID,
		&client.CompanyName,
		&client.ContactName,
		&client.Email,
		&client.Stage,
		&client.DealValue,
		&client.AssignedTo,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) Create(client *domain.ClientRecord) error {
	now := time.Now()
	client.CreatedAt = &now
	client.UpdatedAt = &now

	query, args, err := squirrel.
		Insert(clientsTable).
		Columns("id", "company_name", "contact_name", "email", "stage", "deal_value", "assigned_to", "notes", "created_at", "updated_at").
		Values(
			client.ID,
			client.CompanyName,
			client.ContactName,
			client.Email,
			client.Stage,
			client.DealValue,
			client.AssignedTo,
			client.Notes,
			client.CreatedAt,
			client.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *clientRepository) Update(client *domain.ClientRecord) error {
	query, args, err := squirrel.
		Update(clientsTable).
		Set("company_name", client.CompanyName).
		Set("contact_name", client.ContactName).
		Set("email", client.Email).
		Set("stage", client.Stage).
		Set("deal_value", client.DealValue).
		Set("assigned_to", client.AssignedTo).
		Set("notes", client.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": client.ID}).
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

func (r *clientRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(clientsTable).
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

func scanClient(rows *sql.Rows) (*domain.ClientRecord, error) {
	client := &domain.ClientRecord{}

	err := rows.Scan(
		&client.ID,
		&client.CompanyName,
		&client.ContactName,
		&client.Email,
		&client.Stage,
		&client.DealValue,
		&client.AssignedTo,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return client, nil
}
