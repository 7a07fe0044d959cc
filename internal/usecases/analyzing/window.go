package analyzing

import (
	"fmt"
	"time"

	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// Janelas de análise suportadas pelo painel, em dias
var AllowedWindows = []int{7, 30, 90, 365}

// ValidWindow verifica se a janela informada pertence ao conjunto suportado
func ValidWindow(days int) bool {
	for _, allowed := range AllowedWindows {
		if days == allowed {
			return true
		}
	}
	return false
}

// FilterByWindow mantém apenas os registros cuja data extraída está dentro
// da janela de `days` dias contados a partir de `now`. Registros sem data
// são sempre mantidos: dado ausente não deve esconder um registro.
// Uma janela não positiva é violação de contrato do chamador.
func FilterByWindow[T any](records []T, days int, dateOf func(T) *time.Time, now time.Time) ([]T, error) {
	if days <= 0 {
		return nil, fmt.Errorf("janela de análise inválida: %d dias", days)
	}

	cutoff := now.AddDate(0, 0, -days)
	out := make([]T, 0, len(records))

	for _, record := range records {
		date := dateOf(record)
		if date == nil || !date.Before(cutoff) {
			out = append(out, record)
		}
	}

	return out, nil
}

// filterSnapshot aplica a janela de análise a todos os conjuntos de
// registros, usando a data de criação como referência
func filterSnapshot(snap Snapshot, days int, now time.Time) (Snapshot, error) {
	clients, err := FilterByWindow(snap.Clients, days, func(c domain.ClientRecord) *time.Time { return c.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	tasks, err := FilterByWindow(snap.Tasks, days, func(t domain.TaskRecord) *time.Time { return t.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	events, err := FilterByWindow(snap.Events, days, func(e domain.EventRecord) *time.Time { return e.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	expenses, err := FilterByWindow(snap.Expenses, days, func(e domain.ExpenseRecord) *time.Time { return e.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	payments, err := FilterByWindow(snap.Payments, days, func(p domain.PaymentRecord) *time.Time { return p.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	budgets, err := FilterByWindow(snap.Budgets, days, func(b domain.BudgetRecord) *time.Time { return b.CreatedAt }, now)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Clients:  clients,
		Tasks:    tasks,
		Events:   events,
		Expenses: expenses,
		Payments: payments,
		Budgets:  budgets,
	}, nil
}
