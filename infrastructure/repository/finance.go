package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

const (
	expensesTable = "expenses"
	paymentsTable = "payments"
	budgetsTable  = "budgets"
)

type ExpenseRepository interface {
	List() ([]domain.ExpenseRecord, error)
	Create(expense *domain.ExpenseRecord) error
}

type PaymentRepository interface {
	List() ([]domain.PaymentRecord, error)
	Create(payment *domain.PaymentRecord) error
}

type BudgetRepository interface {
	List() ([]domain.BudgetRecord, error)
	SaveOrUpdate(budget *domain.BudgetRecord) error
}

type expenseRepository struct {
	conn *postgres.Connection
}

func NewExpenseRepository(conn *postgres.Connection) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) List() ([]domain.ExpenseRecord, error) {
	query, args, err := squirrel.
		Select("id, client_id, description, amount, category, status, date, created_at").
		From(expensesTable).
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

	expenses := make([]domain.ExpenseRecord, 0)
	for rows.Next() {
		expense := domain.ExpenseRecord{}
		err = rows.Scan(
			&expense.ID,
			&expense.ClientID,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.Status,
			&expense.Date,
			&expense.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Create(expense *domain.ExpenseRecord) error {
	now := time.Now()
	expense.CreatedAt = &now

	query, args, err := squirrel.
		Insert(expensesTable).
		Columns("id", "client_id", "description", "amount", "category", "status", "date", "created_at").
		Values(
			expense.ID,
			expense.ClientID,
			expense.Description,
			expense.Amount,
			expense.Category,
			expense.Status,
			expense.Date,
			expense.CreatedAt,
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

type paymentRepository struct {
	conn *postgres.Connection
}

func NewPaymentRepository(conn *postgres.Connection) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

func (r *paymentRepository) List() ([]domain.PaymentRecord, error) {
	query, args, err := squirrel.
		Select("id, client_id, amount, status, due_date, paid_at, created_at").
		From(paymentsTable).
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

	payments := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		payment := domain.PaymentRecord{}
		err = rows.Scan(
			&payment.ID,
			&payment.ClientID,
			&payment.Amount,
			&payment.Status,
			&payment.DueDate,
			&payment.PaidAt,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pagamento: %w", err)
		}
		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) Create(payment *domain.PaymentRecord) error {
	now := time.Now()
	payment.CreatedAt = &now

	query, args, err := squirrel.
		Insert(paymentsTable).
		Columns("id", "client_id", "amount", "status", "due_date", "paid_at", "created_at").
		Values(
			payment.ID,
			payment.ClientID,
			payment.Amount,
			payment.Status,
			payment.DueDate,
			payment.PaidAt,
			payment.CreatedAt,
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

type budgetRepository struct {
	conn *postgres.Connection
}

func NewBudgetRepository(conn *postgres.Connection) BudgetRepository {
	return &budgetRepository{
		conn: conn,
	}
}

func (r *budgetRepository) List() ([]domain.BudgetRecord, error) {
	query, args, err := squirrel.
		Select("id, client_id, category, allocated_amount, spent_amount, period_start, period_end, created_at").
		From(budgetsTable).
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

	budgets := make([]domain.BudgetRecord, 0)
	for rows.Next() {
		budget := domain.BudgetRecord{}
		err = rows.Scan(
			&budget.ID,
			&budget.ClientID,
			&budget.Category,
			&budget.AllocatedAmount,
			&budget.SpentAmount,
			&budget.PeriodStart,
			&budget.PeriodEnd,
			&budget.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear orçamento: %w", err)
		}
		budgets = append(budgets, budget)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return budgets, nil
}

func (r *budgetRepository) SaveOrUpdate(budget *domain.BudgetRecord) error {
	now := time.Now()
	if budget.CreatedAt == nil {
		budget.CreatedAt = &now
	}

	query := squirrel.StatementBuilder.
		Insert(budgetsTable).
		Columns("id", "client_id", "category", "allocated_amount", "spent_amount", "period_start", "period_end", "created_at").
		Values(
			budget.ID,
			budget.ClientID,
			budget.Category,
			budget.AllocatedAmount,
			budget.SpentAmount,
			budget.PeriodStart,
			budget.PeriodEnd,
			budget.CreatedAt,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				allocated_amount = EXCLUDED.allocated_amount,
				spent_amount = EXCLUDED.spent_amount,
				period_start = EXCLUDED.period_start,
				period_end = EXCLUDED.period_end
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
