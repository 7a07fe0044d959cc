package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

func TestValidWindow(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected bool
	}{
		{name: "7 dias é janela suportada", days: 7, expected: true},
		{name: "30 dias é janela suportada", days: 30, expected: true},
		{name: "90 dias é janela suportada", days: 90, expected: true},
		{name: "365 dias é janela suportada", days: 365, expected: true},
		{name: "15 dias não é janela suportada", days: 15, expected: false},
		{name: "Zero não é janela suportada", days: 0, expected: false},
		{name: "Valor negativo não é janela suportada", days: -30, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidWindow(tt.days))
		})
	}
}

func TestFilterByWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	inside := now.AddDate(0, 0, -5)
	boundary := now.AddDate(0, 0, -7)
	outside := now.AddDate(0, 0, -10)

	clients := []domain.ClientRecord{
		{ID: "CLI001", CreatedAt: &inside},
		{ID: "CLI002", CreatedAt: &boundary},
		{ID: "CLI003", CreatedAt: &outside},
		{ID: "CLI004", CreatedAt: nil},
	}

	dateOf := func(c domain.ClientRecord) *time.Time { return c.CreatedAt }

	t.Run("Mantém registros dentro da janela e descarta os antigos", func(t *testing.T) {
		result, err := FilterByWindow(clients, 7, dateOf, now)

		assert.NoError(t, err)
		assert.Len(t, result, 3)
		assert.Equal(t, "CLI001", result[0].ID)
		assert.Equal(t, "CLI002", result[1].ID)
		assert.Equal(t, "CLI004", result[2].ID)
	})

	t.Run("Registro exatamente no corte é mantido", func(t *testing.T) {
		result, err := FilterByWindow([]domain.ClientRecord{{ID: "CLI002", CreatedAt: &boundary}}, 7, dateOf, now)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("Registro sem data nunca é escondido", func(t *testing.T) {
		result, err := FilterByWindow([]domain.ClientRecord{{ID: "CLI004"}}, 7, dateOf, now)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("Janela zero é violação de contrato", func(t *testing.T) {
		result, err := FilterByWindow(clients, 0, dateOf, now)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Janela negativa é violação de contrato", func(t *testing.T) {
		result, err := FilterByWindow(clients, -7, dateOf, now)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Lista vazia retorna lista vazia sem erro", func(t *testing.T) {
		result, err := FilterByWindow([]domain.ClientRecord{}, 30, dateOf, now)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestFilterSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -60)
	recent := now.AddDate(0, 0, -3)

	snap := Snapshot{
		Clients:  []domain.ClientRecord{{ID: "CLI001", CreatedAt: &old}, {ID: "CLI002", CreatedAt: &recent}},
		Tasks:    []domain.TaskRecord{{ID: "TSK001", CreatedAt: &old}},
		Events:   []domain.EventRecord{{ID: "EVT001", CreatedAt: &recent}},
		Expenses: []domain.ExpenseRecord{{ID: "EXP001", CreatedAt: &old}},
		Payments: []domain.PaymentRecord{{ID: "PAY001", CreatedAt: &recent}},
		Budgets:  []domain.BudgetRecord{{ID: "BUD001", CreatedAt: nil}},
	}

	filtered, err := filterSnapshot(snap, 30, now)

	assert.NoError(t, err)
	assert.Len(t, filtered.Clients, 1)
	assert.Equal(t, "CLI002", filtered.Clients[0].ID)
	assert.Empty(t, filtered.Tasks)
	assert.Len(t, filtered.Events, 1)
	assert.Empty(t, filtered.Expenses)
	assert.Len(t, filtered.Payments, 1)
	assert.Len(t, filtered.Budgets, 1)
}
