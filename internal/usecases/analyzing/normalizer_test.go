package analyzing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

func TestNormalizeClients(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      any
		validate func(t *testing.T, result []domain.ClientRecord)
	}{
		{
			name: "Array puro de mapas deve gerar registros tipados",
			raw: []any{
				map[string]any{
					"id":           "CLI001",
					"company_name": "Óptica Central",
					"stage":        "closed",
					"deal_value":   1500.0,
					"created_at":   "2024-03-10T12:00:00Z",
				},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "CLI001", result[0].ID)
				assert.Equal(t, "Óptica Central", result[0].CompanyName)
				assert.Equal(t, "closed", result[0].Stage)
				assert.Equal(t, 1500.0, result[0].DealValue)
				assert.NotNil(t, result[0].CreatedAt)
				assert.Equal(t, created, *result[0].CreatedAt)
			},
		},
		{
			name: "Envelope {data: [...]} deve ser desembrulhado",
			raw: map[string]any{
				"data": []any{
					map[string]any{"id": "CLI002", "stage": "proposal", "deal_value": 800.0},
				},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "CLI002", result[0].ID)
				assert.Equal(t, "proposal", result[0].Stage)
			},
		},
		{
			name: "Campos ausentes ou de tipo errado viram valores zero",
			raw: []any{
				map[string]any{
					"id":         12345,
					"deal_value": "não é número",
					"stage":      nil,
					"created_at": "data inválida",
				},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "12345", result[0].ID)
				assert.Equal(t, 0.0, result[0].DealValue)
				assert.Equal(t, "", result[0].Stage)
				assert.Nil(t, result[0].CreatedAt)
			},
		},
		{
			name: "Elementos que não são mapas devem ser ignorados",
			raw: []any{
				"texto solto",
				42,
				map[string]any{"id": "CLI003"},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "CLI003", result[0].ID)
			},
		},
		{
			name: "Formato irreconhecível vira lista vazia sem erro",
			raw:  "isso não é uma lista",
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.NotNil(t, result)
				assert.Empty(t, result)
			},
		},
		{
			name: "Nil vira lista vazia sem erro",
			raw:  nil,
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.NotNil(t, result)
				assert.Empty(t, result)
			},
		},
		{
			name: "Estágio deve ser normalizado para minúsculas e valor negativo zerado",
			raw: []any{
				map[string]any{"id": "CLI004", "stage": "  CLOSED ", "deal_value": -300.0},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "closed", result[0].Stage)
				assert.Equal(t, 0.0, result[0].DealValue)
			},
		},
		{
			name: "Valores não finitos viram zero em vez de contaminar as métricas",
			raw: []any{
				map[string]any{"id": "CLI010", "stage": "closed", "deal_value": "NaN"},
				map[string]any{"id": "CLI011", "stage": "closed", "deal_value": "Inf"},
				map[string]any{"id": "CLI012", "stage": "closed", "deal_value": "-Inf"},
				map[string]any{"id": "CLI013", "stage": "closed", "deal_value": math.NaN()},
				map[string]any{"id": "CLI014", "stage": "closed", "deal_value": math.Inf(1)},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 5)
				for _, record := range result {
					assert.Equal(t, 0.0, record.DealValue)
				}
			},
		},
		{
			name: "Lista já tipada passa pela mesma sanitização",
			raw: []domain.ClientRecord{
				{ID: "CLI005", Stage: "Proposal", DealValue: -10},
			},
			validate: func(t *testing.T, result []domain.ClientRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "proposal", result[0].Stage)
				assert.Equal(t, 0.0, result[0].DealValue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeClients(tt.raw))
		})
	}
}

func TestNormalizeTasks(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		validate func(t *testing.T, result []domain.TaskRecord)
	}{
		{
			name: "Status textual deve ser normalizado para minúsculas",
			raw: []any{
				map[string]any{"id": "TSK001", "status": "COMPLETED", "completed": false},
			},
			validate: func(t *testing.T, result []domain.TaskRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "completed", result[0].Status)
				assert.True(t, result[0].IsCompleted())
			},
		},
		{
			name: "Booleano completed deve ser coagido",
			raw: []any{
				map[string]any{"id": "TSK002", "completed": true},
			},
			validate: func(t *testing.T, result []domain.TaskRecord) {
				assert.Len(t, result, 1)
				assert.True(t, result[0].Completed)
			},
		},
		{
			name: "Envelope {data: [...]} também vale para tarefas",
			raw: map[string]any{
				"data": []any{map[string]any{"id": "TSK003"}},
			},
			validate: func(t *testing.T, result []domain.TaskRecord) {
				assert.Len(t, result, 1)
				assert.Equal(t, "TSK003", result[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeTasks(tt.raw))
		})
	}
}

func TestNormalizeSnapshot(t *testing.T) {
	t.Run("Snapshot totalmente vazio vira conjuntos vazios sem erro", func(t *testing.T) {
		snap := NormalizeSnapshot(RawSnapshot{})

		assert.Empty(t, snap.Clients)
		assert.Empty(t, snap.Tasks)
		assert.Empty(t, snap.Events)
		assert.Empty(t, snap.Expenses)
		assert.Empty(t, snap.Payments)
		assert.Empty(t, snap.Budgets)
	})

	t.Run("Valores negativos de finanças são zerados", func(t *testing.T) {
		snap := NormalizeSnapshot(RawSnapshot{
			Expenses: []any{map[string]any{"id": "EXP001", "amount": -50.0}},
			Payments: []any{map[string]any{"id": "PAY001", "amount": -30.0, "status": "PAID"}},
			Budgets:  []any{map[string]any{"id": "BUD001", "allocated_amount": -100.0, "spent_amount": -20.0}},
		})

		assert.Equal(t, 0.0, snap.Expenses[0].Amount)
		assert.Equal(t, 0.0, snap.Payments[0].Amount)
		assert.Equal(t, "paid", snap.Payments[0].Status)
		assert.Equal(t, 0.0, snap.Budgets[0].AllocatedAmount)
		assert.Equal(t, 0.0, snap.Budgets[0].SpentAmount)
	})
}

func TestNormalizacaoMantemMetricasFinitas(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	snap := NormalizeSnapshot(RawSnapshot{
		Clients: []any{
			map[string]any{"id": "CLI001", "stage": "closed", "deal_value": "NaN"},
			map[string]any{"id": "CLI002", "stage": "closed", "deal_value": "Inf"},
			map[string]any{"id": "CLI003", "stage": "closed", "deal_value": 500.0},
		},
	})

	metrics := Aggregate(snap, now)

	assert.Equal(t, 500.0, metrics.TotalRevenue)
	assert.False(t, math.IsNaN(metrics.AvgDealValue))
	assert.False(t, math.IsInf(metrics.TotalRevenue, 0))
	assert.False(t, math.IsNaN(metrics.Performance.SalesVelocity))
}

func TestNormalizacaoIdempotente(t *testing.T) {
	raw := RawSnapshot{
		Clients: []any{
			map[string]any{"id": "CLI001", "stage": "CLOSED", "deal_value": 1000.0},
			map[string]any{"id": "CLI002", "stage": "proposal", "deal_value": -5.0},
		},
	}

	first := NormalizeSnapshot(raw)
	second := NormalizeSnapshot(RawSnapshot{Clients: first.Clients})

	assert.Equal(t, first.Clients, second.Clients)
}
