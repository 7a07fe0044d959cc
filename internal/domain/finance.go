package domain

import "time"

// Status de pagamento
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

// CategoryFallbackLabel é o rótulo usado para categorias ausentes
const CategoryFallbackLabel = "Uncategorized"

// ExpenseRecord representa uma despesa registrada no CRM
type ExpenseRecord struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category,omitempty"`
	Status      string     `json:"status,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// PaymentRecord representa um pagamento recebido ou a receber
type PaymentRecord struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id,omitempty"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// BudgetRecord representa um orçamento alocado por categoria
type BudgetRecord struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id,omitempty"`
	Category        string     `json:"category,omitempty"`
	AllocatedAmount float64    `json:"allocated_amount"`
	SpentAmount     float64    `json:"spent_amount"`
	PeriodStart     *time.Time `json:"period_start,omitempty"`
	PeriodEnd       *time.Time `json:"period_end,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}
