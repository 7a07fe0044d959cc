package analyzing

import (
	"strings"

	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// RawSnapshot é a carga bruta recebida na fronteira de normalização.
// Cada campo pode ser um array puro, um envelope {data: [...]}, nil ou
// uma lista já tipada vinda dos repositórios.
type RawSnapshot struct {
	Clients  any `json:"clients"`
	Tasks    any `json:"tasks"`
	Events   any `json:"events"`
	Expenses any `json:"expenses"`
	Payments any `json:"payments"`
	Budgets  any `json:"budgets"`
}

// Snapshot é o conjunto canônico de registros consumido pelo agregador
type Snapshot struct {
	Clients  []domain.ClientRecord
	Tasks    []domain.TaskRecord
	Events   []domain.EventRecord
	Expenses []domain.ExpenseRecord
	Payments []domain.PaymentRecord
	Budgets  []domain.BudgetRecord
}

// NormalizeSnapshot normaliza todos os conjuntos de registros de uma vez
func NormalizeSnapshot(raw RawSnapshot) Snapshot {
	return Snapshot{
		Clients:  NormalizeClients(raw.Clients),
		Tasks:    NormalizeTasks(raw.Tasks),
		Events:   NormalizeEvents(raw.Events),
		Expenses: NormalizeExpenses(raw.Expenses),
		Payments: NormalizePayments(raw.Payments),
		Budgets:  NormalizeBudgets(raw.Budgets),
	}
}

// NormalizeClients converte uma carga bruta em registros de cliente
// consistentes. Nunca retorna nil e nunca lança erro: formatos
// irreconhecíveis viram lista vazia, campos inválidos viram valores zero.
func NormalizeClients(raw any) []domain.ClientRecord {
	switch v := raw.(type) {
	case []domain.ClientRecord:
		out := make([]domain.ClientRecord, 0, len(v))
		for _, c := range v {
			out = append(out, sanitizeClient(c))
		}
		return out
	case []*domain.ClientRecord:
		out := make([]domain.ClientRecord, 0, len(v))
		for _, c := range v {
			if c == nil {
				continue
			}
			out = append(out, sanitizeClient(*c))
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.ClientRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, sanitizeClient(domain.ClientRecord{
			ID:          asString(m["id"]),
			CompanyName: asString(m["company_name"]),
			ContactName: asString(m["contact_name"]),
			Email:       asString(m["email"]),
			Stage:       asString(m["stage"]),
			DealValue:   asFloat(m["deal_value"]),
			AssignedTo:  asString(m["assigned_to"]),
			Notes:       asString(m["notes"]),
			CreatedAt:   asTime(m["created_at"]),
			UpdatedAt:   asTime(m["updated_at"]),
		}))
	}

	return out
}

// NormalizeTasks converte uma carga bruta em registros de tarefa
func NormalizeTasks(raw any) []domain.TaskRecord {
	switch v := raw.(type) {
	case []domain.TaskRecord:
		out := make([]domain.TaskRecord, 0, len(v))
		for _, t := range v {
			out = append(out, sanitizeTask(t))
		}
		return out
	case []*domain.TaskRecord:
		out := make([]domain.TaskRecord, 0, len(v))
		for _, t := range v {
			if t == nil {
				continue
			}
			out = append(out, sanitizeTask(*t))
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.TaskRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, sanitizeTask(domain.TaskRecord{
			ID:        asString(m["id"]),
			Title:     asString(m["title"]),
			Completed: asBool(m["completed"]),
			Status:    asString(m["status"]),
			ClientID:  asString(m["client_id"]),
			DueDate:   asTime(m["due_date"]),
			CreatedAt: asTime(m["created_at"]),
		}))
	}

	return out
}

// NormalizeEvents converte uma carga bruta em registros de evento
func NormalizeEvents(raw any) []domain.EventRecord {
	switch v := raw.(type) {
	case []domain.EventRecord:
		out := make([]domain.EventRecord, 0, len(v))
		out = append(out, v...)
		return out
	case []*domain.EventRecord:
		out := make([]domain.EventRecord, 0, len(v))
		for _, e := range v {
			if e == nil {
				continue
			}
			out = append(out, *e)
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.EventRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, domain.EventRecord{
			ID:        asString(m["id"]),
			Title:     asString(m["title"]),
			StartTime: asTime(m["start_time"]),
			Date:      asTime(m["date"]),
			ClientID:  asString(m["client_id"]),
			CreatedAt: asTime(m["created_at"]),
		})
	}

	return out
}

// NormalizeExpenses converte uma carga bruta em registros de despesa
func NormalizeExpenses(raw any) []domain.ExpenseRecord {
	switch v := raw.(type) {
	case []domain.ExpenseRecord:
		out := make([]domain.ExpenseRecord, 0, len(v))
		for _, e := range v {
			out = append(out, sanitizeExpense(e))
		}
		return out
	case []*domain.ExpenseRecord:
		out := make([]domain.ExpenseRecord, 0, len(v))
		for _, e := range v {
			if e == nil {
				continue
			}
			out = append(out, sanitizeExpense(*e))
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.ExpenseRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, sanitizeExpense(domain.ExpenseRecord{
			ID:          asString(m["id"]),
			ClientID:    asString(m["client_id"]),
			Description: asString(m["description"]),
			Amount:      asFloat(m["amount"]),
			Category:    asString(m["category"]),
			Status:      asString(m["status"]),
			Date:        asTime(m["date"]),
			CreatedAt:   asTime(m["created_at"]),
		}))
	}

	return out
}

// NormalizePayments converte uma carga bruta em registros de pagamento
func NormalizePayments(raw any) []domain.PaymentRecord {
	switch v := raw.(type) {
	case []domain.PaymentRecord:
		out := make([]domain.PaymentRecord, 0, len(v))
		for _, p := range v {
			out = append(out, sanitizePayment(p))
		}
		return out
	case []*domain.PaymentRecord:
		out := make([]domain.PaymentRecord, 0, len(v))
		for _, p := range v {
			if p == nil {
				continue
			}
			out = append(out, sanitizePayment(*p))
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.PaymentRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, sanitizePayment(domain.PaymentRecord{
			ID:        asString(m["id"]),
			ClientID:  asString(m["client_id"]),
			Amount:    asFloat(m["amount"]),
			Status:    asString(m["status"]),
			DueDate:   asTime(m["due_date"]),
			PaidAt:    asTime(m["paid_at"]),
			CreatedAt: asTime(m["created_at"]),
		}))
	}

	return out
}

// NormalizeBudgets converte uma carga bruta em registros de orçamento
func NormalizeBudgets(raw any) []domain.BudgetRecord {
	switch v := raw.(type) {
	case []domain.BudgetRecord:
		out := make([]domain.BudgetRecord, 0, len(v))
		for _, b := range v {
			out = append(out, sanitizeBudget(b))
		}
		return out
	case []*domain.BudgetRecord:
		out := make([]domain.BudgetRecord, 0, len(v))
		for _, b := range v {
			if b == nil {
				continue
			}
			out = append(out, sanitizeBudget(*b))
		}
		return out
	}

	elements := items(raw)
	out := make([]domain.BudgetRecord, 0, len(elements))

	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, sanitizeBudget(domain.BudgetRecord{
			ID:              asString(m["id"]),
			ClientID:        asString(m["client_id"]),
			Category:        asString(m["category"]),
			AllocatedAmount: asFloat(m["allocated_amount"]),
			SpentAmount:     asFloat(m["spent_amount"]),
			PeriodStart:     asTime(m["period_start"]),
			PeriodEnd:       asTime(m["period_end"]),
			CreatedAt:       asTime(m["created_at"]),
		}))
	}

	return out
}

// sanitizeClient aplica os valores padrão do modelo: estágio em minúsculas
// e valor de negócio nunca negativo
func sanitizeClient(c domain.ClientRecord) domain.ClientRecord {
	c.Stage = strings.ToLower(strings.TrimSpace(c.Stage))
	if c.DealValue < 0 {
		c.DealValue = 0
	}
	return c
}

func sanitizeTask(t domain.TaskRecord) domain.TaskRecord {
	t.Status = strings.ToLower(strings.TrimSpace(t.Status))
	return t
}

func sanitizeExpense(e domain.ExpenseRecord) domain.ExpenseRecord {
	if e.Amount < 0 {
		e.Amount = 0
	}
	return e
}

func sanitizePayment(p domain.PaymentRecord) domain.PaymentRecord {
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	if p.Amount < 0 {
		p.Amount = 0
	}
	return p
}

func sanitizeBudget(b domain.BudgetRecord) domain.BudgetRecord {
	if b.AllocatedAmount < 0 {
		b.AllocatedAmount = 0
	}
	if b.SpentAmount < 0 {
		b.SpentAmount = 0
	}
	return b
}
