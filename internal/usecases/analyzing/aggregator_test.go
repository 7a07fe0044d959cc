package analyzing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAggregate_MetricasBasicas(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// Dois negócios fechados (1000 + 2000) e um em proposta (500)
	clients := []domain.ClientRecord{
		{ID: "CLI001", CompanyName: "Loja A", Stage: domain.StageClosed, DealValue: 1000},
		{ID: "CLI002", CompanyName: "Loja B", Stage: domain.StageClosed, DealValue: 2000},
		{ID: "CLI003", CompanyName: "Loja C", Stage: domain.StageProposal, DealValue: 500},
	}

	metrics := Aggregate(Snapshot{Clients: clients}, now)

	assert.Equal(t, 3, metrics.TotalClients)
	assert.Equal(t, 2, metrics.ClosedDeals)
	assert.Equal(t, 1, metrics.ActiveDeals)
	assert.Equal(t, 3000.0, metrics.TotalRevenue)
	assert.InDelta(t, 66.6667, metrics.ConversionRate, 0.001)
	assert.Equal(t, 1500.0, metrics.AvgDealValue)
}

func TestAggregate_SnapshotVazio(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	metrics := Aggregate(Snapshot{}, now)

	assert.Equal(t, 0, metrics.TotalClients)
	assert.Equal(t, 0.0, metrics.TotalRevenue)
	assert.Equal(t, 0.0, metrics.ConversionRate)
	assert.Equal(t, 0.0, metrics.AvgDealValue)
	assert.Equal(t, 0.0, metrics.MonthlyGrowth)
	assert.Equal(t, 0.0, metrics.ClientGrowth)
	assert.Empty(t, metrics.ClientsByStage)
	assert.Len(t, metrics.RevenueByMonth, revenueSeriesMonths)
	assert.Empty(t, metrics.TopClients)
	assert.Equal(t, 0.0, metrics.Team.TeamProductivity)
	assert.Equal(t, 0.0, metrics.Finance.BudgetUtilization)

	// Nenhuma métrica pode virar NaN ou infinito em snapshot vazio
	assert.False(t, math.IsNaN(metrics.Performance.SalesVelocity))
	assert.False(t, math.IsInf(metrics.MonthlyGrowth, 0))
}

func TestMonthlyGrowth(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		clients  []domain.ClientRecord
		expected float64
	}{
		{
			name: "Crescimento normal entre dois meses",
			clients: []domain.ClientRecord{
				{Stage: domain.StageClosed, DealValue: 1000, UpdatedAt: timePtr(lastMonth)},
				{Stage: domain.StageClosed, DealValue: 1500, UpdatedAt: timePtr(thisMonth)},
			},
			expected: 50,
		},
		{
			name: "Mês anterior zerado com receita atual vale 100, nunca infinito",
			clients: []domain.ClientRecord{
				{Stage: domain.StageClosed, DealValue: 2000, UpdatedAt: timePtr(thisMonth)},
			},
			expected: 100,
		},
		{
			name:     "Ambos os meses zerados valem 0",
			clients:  []domain.ClientRecord{},
			expected: 0,
		},
		{
			name: "Queda de receita gera variação negativa",
			clients: []domain.ClientRecord{
				{Stage: domain.StageClosed, DealValue: 2000, UpdatedAt: timePtr(lastMonth)},
				{Stage: domain.StageClosed, DealValue: 1000, UpdatedAt: timePtr(thisMonth)},
			},
			expected: -50,
		},
		{
			name: "Negócio aberto não conta como receita",
			clients: []domain.ClientRecord{
				{Stage: domain.StageProposal, DealValue: 9000, UpdatedAt: timePtr(thisMonth)},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyGrowth(tt.clients, now)

			assert.InDelta(t, tt.expected, result, 0.001)
			assert.False(t, math.IsInf(result, 0))
			assert.False(t, math.IsNaN(result))
		})
	}
}

func TestMonthlyGrowth_UltimoDiaDoMes(t *testing.T) {
	// Recuar um mês a partir de 31 de março normalizaria para 3 de março,
	// fazendo o mês anterior reler o próprio março e apagar fevereiro
	now := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)

	clients := []domain.ClientRecord{
		{Stage: domain.StageClosed, DealValue: 100, UpdatedAt: timePtr(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))},
		{Stage: domain.StageClosed, DealValue: 50, UpdatedAt: timePtr(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))},
	}

	assert.InDelta(t, -50, MonthlyGrowth(clients, now), 0.001)
}

func TestClientGrowth(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Dobro de clientes novos vale 100 por cento", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{ID: "CLI001", CreatedAt: timePtr(lastMonth)},
			{ID: "CLI002", CreatedAt: timePtr(thisMonth)},
			{ID: "CLI003", CreatedAt: timePtr(thisMonth)},
		}

		assert.InDelta(t, 100, ClientGrowth(clients, now), 0.001)
	})

	t.Run("Mês anterior sem clientes novos vale 100 fixo", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{ID: "CLI001", CreatedAt: timePtr(thisMonth)},
		}

		assert.Equal(t, 100.0, ClientGrowth(clients, now))
	})

	t.Run("Cliente sem data de criação é ignorado no crescimento", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{ID: "CLI001"},
		}

		assert.Equal(t, 0.0, ClientGrowth(clients, now))
	})

	t.Run("Último dia do mês enxerga os clientes do mês anterior", func(t *testing.T) {
		endOfMarch := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
		clients := []domain.ClientRecord{
			{ID: "CLI001", CreatedAt: timePtr(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))},
			{ID: "CLI002", CreatedAt: timePtr(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))},
			{ID: "CLI003", CreatedAt: timePtr(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))},
		}

		assert.InDelta(t, -50, ClientGrowth(clients, endOfMarch), 0.001)
	})
}

func TestGroupByStage(t *testing.T) {
	clients := []domain.ClientRecord{
		{ID: "CLI001", Stage: domain.StageProspect, DealValue: 100},
		{ID: "CLI002", Stage: domain.StageClosed, DealValue: 1000},
		{ID: "CLI003", Stage: domain.StageProspect, DealValue: 200},
		{ID: "CLI004", Stage: "", DealValue: 50},
		{ID: "CLI005", Stage: "fase-inventada", DealValue: 75},
	}

	buckets := GroupByStage(clients)

	assert.Len(t, buckets, 4)

	// Ordem segue a primeira ocorrência na entrada
	assert.Equal(t, domain.StageProspect, buckets[0].Stage)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 300.0, buckets[0].DealValue)

	assert.Equal(t, domain.StageClosed, buckets[1].Stage)

	// Estágio vazio gera balde próprio com rótulo de fallback
	assert.Equal(t, "", buckets[2].Stage)
	assert.Equal(t, domain.StageFallbackLabel, buckets[2].Label)

	// Estágio desconhecido vira rótulo legível, nunca é descartado
	assert.Equal(t, "Fase Inventada", buckets[3].Label)

	// Invariante de partição: todo cliente cai em exatamente um balde
	totalCount := 0
	totalValue := 0.0
	for _, bucket := range buckets {
		totalCount += bucket.Count
		totalValue += bucket.DealValue
	}
	assert.Equal(t, len(clients), totalCount)
	assert.Equal(t, 1425.0, totalValue)
}

func TestRevenueByMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	clients := []domain.ClientRecord{
		{Stage: domain.StageClosed, DealValue: 1000, UpdatedAt: timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		{Stage: domain.StageClosed, DealValue: 500, UpdatedAt: timePtr(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))},
		{Stage: domain.StageClosed, DealValue: 300, UpdatedAt: timePtr(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))}, // fora da série
	}

	series := RevenueByMonth(clients, now)

	// Sempre 6 entradas em ordem cronológica, com ou sem receita no mês
	assert.Len(t, series, revenueSeriesMonths)
	assert.Equal(t, "01-2024", series[0].Month)
	assert.Equal(t, "02-2024", series[1].Month)
	assert.Equal(t, "03-2024", series[2].Month)
	assert.Equal(t, "04-2024", series[3].Month)
	assert.Equal(t, "05-2024", series[4].Month)
	assert.Equal(t, "06-2024", series[5].Month)

	assert.Equal(t, 0.0, series[0].Revenue)
	assert.Equal(t, 500.0, series[3].Revenue)
	assert.Equal(t, 1, series[3].Deals)
	assert.Equal(t, 1000.0, series[5].Revenue)
}

func TestTopClients(t *testing.T) {
	clients := []domain.ClientRecord{
		{CompanyName: "Alfa", DealValue: 100},
		{CompanyName: "Beta", DealValue: 900},
		{CompanyName: "Alfa", DealValue: 850},
		{CompanyName: "Gama", DealValue: 300},
		{CompanyName: "Delta", DealValue: 200},
		{CompanyName: "Épsilon", DealValue: 150},
		{CompanyName: "Zeta", DealValue: 50},
	}

	ranking := TopClients(clients)

	assert.Len(t, ranking, topClientsLimit)

	// Alfa soma 950 e assume a primeira posição
	assert.Equal(t, "Alfa", ranking[0].CompanyName)
	assert.Equal(t, 950.0, ranking[0].DealValue)
	assert.Equal(t, 2, ranking[0].Deals)

	assert.Equal(t, "Beta", ranking[1].CompanyName)
	assert.Equal(t, "Gama", ranking[2].CompanyName)
	assert.Equal(t, "Delta", ranking[3].CompanyName)
	assert.Equal(t, "Épsilon", ranking[4].CompanyName)
}

func TestActivityFrom(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 6)
	farFuture := now.AddDate(0, 0, 20)

	tasks := []domain.TaskRecord{
		{ID: "TSK001", Completed: true},
		{ID: "TSK002", Status: domain.TaskStatusCompleted},
		{ID: "TSK003", DueDate: &yesterday},              // atrasada
		{ID: "TSK004", DueDate: &nextWeek},               // pendente no prazo
		{ID: "TSK005", Completed: true, DueDate: &yesterday}, // concluída nunca conta como atrasada
	}

	events := []domain.EventRecord{
		{ID: "EVT001", StartTime: &nextWeek},
		{ID: "EVT002", StartTime: &farFuture},
		{ID: "EVT003", StartTime: &yesterday},
		{ID: "EVT004"}, // sem data conta como agora
	}

	metrics := ActivityFrom(tasks, events, now)

	assert.Equal(t, 5, metrics.TotalTasks)
	assert.Equal(t, 3, metrics.CompletedTasks)
	assert.Equal(t, 1, metrics.OverdueTasks)
	assert.Equal(t, 2, metrics.UpcomingEvents)
}

func TestAvgDealCycleDays(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Média considera apenas fechados com ambas as datas", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{Stage: domain.StageClosed, CreatedAt: timePtr(created), UpdatedAt: timePtr(created.AddDate(0, 0, 10))},
			{Stage: domain.StageClosed, CreatedAt: timePtr(created), UpdatedAt: timePtr(created.AddDate(0, 0, 20))},
			{Stage: domain.StageClosed, CreatedAt: nil, UpdatedAt: timePtr(created)},
			{Stage: domain.StageProposal, CreatedAt: timePtr(created), UpdatedAt: timePtr(created.AddDate(0, 0, 5))},
		}

		assert.InDelta(t, 15, AvgDealCycleDays(clients), 0.001)
	})

	t.Run("Intervalo negativo é tratado como zero", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{Stage: domain.StageClosed, CreatedAt: timePtr(created), UpdatedAt: timePtr(created.AddDate(0, 0, -3))},
		}

		assert.Equal(t, 0.0, AvgDealCycleDays(clients))
	})

	t.Run("Sem fechados qualificados vale zero", func(t *testing.T) {
		assert.Equal(t, 0.0, AvgDealCycleDays(nil))
	})
}

func TestSalesVelocity(t *testing.T) {
	t.Run("Fórmula com ciclo normal", func(t *testing.T) {
		// 1500 * 0.5 * (30/15) = 1500
		assert.InDelta(t, 1500, SalesVelocity(1500, 50, 15), 0.001)
	})

	t.Run("Ciclo zero tem piso de 1 dia", func(t *testing.T) {
		result := SalesVelocity(1000, 50, 0)

		assert.False(t, math.IsInf(result, 0))
		assert.InDelta(t, 15000, result, 0.001)
	})
}

func TestForecastFrom(t *testing.T) {
	clients := []domain.ClientRecord{
		{Stage: domain.StageProposal, DealValue: 1000},
		{Stage: domain.StageMeeting, DealValue: 2000},
		{Stage: domain.StageClosed, DealValue: 5000},
		{Stage: domain.StageLost, DealValue: 800},
	}

	forecast := ForecastFrom(clients, 50)

	assert.Equal(t, 3000.0, forecast.PipelineValue)
	assert.InDelta(t, 1500, forecast.ProjectedRevenue, 0.001)
	assert.Equal(t, 1, forecast.ExpectedClosingDeals)
}

func TestTeamFrom(t *testing.T) {
	t.Run("Melhor vendedor é o de maior receita fechada", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{Stage: domain.StageClosed, DealValue: 1000, AssignedTo: "A"},
			{Stage: domain.StageClosed, DealValue: 2000, AssignedTo: "B"},
			{Stage: domain.StageProposal, DealValue: 9000, AssignedTo: "C"},
		}

		team := TeamFrom(clients, nil)

		assert.Equal(t, "B", team.TopPerformer)
		assert.Len(t, team.ByOwner, 2)
		assert.Equal(t, 1.0, team.AvgDealsPerUser)
	})

	t.Run("Negócio fechado sem responsável cai no balde unassigned", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{Stage: domain.StageClosed, DealValue: 500, AssignedTo: ""},
		}

		team := TeamFrom(clients, nil)

		assert.Equal(t, unassignedOwner, team.TopPerformer)
		assert.Len(t, team.ByOwner, 1)
		assert.Equal(t, unassignedOwner, team.ByOwner[0].Owner)
	})

	t.Run("Empate de receita fica com o primeiro responsável encontrado", func(t *testing.T) {
		clients := []domain.ClientRecord{
			{Stage: domain.StageClosed, DealValue: 1000, AssignedTo: "A"},
			{Stage: domain.StageClosed, DealValue: 1000, AssignedTo: "B"},
		}

		team := TeamFrom(clients, nil)

		assert.Equal(t, "A", team.TopPerformer)
	})

	t.Run("Sem fechados a média por vendedor vale zero sem NaN", func(t *testing.T) {
		team := TeamFrom(nil, nil)

		assert.Equal(t, "", team.TopPerformer)
		assert.Equal(t, 0.0, team.AvgDealsPerUser)
		assert.False(t, math.IsNaN(team.AvgDealsPerUser))
	})

	t.Run("Produtividade é o percentual de tarefas concluídas", func(t *testing.T) {
		tasks := []domain.TaskRecord{
			{Completed: true},
			{Completed: false},
			{Status: domain.TaskStatusCompleted},
			{Completed: false},
		}

		team := TeamFrom(nil, tasks)

		assert.InDelta(t, 50, team.TeamProductivity, 0.001)
	})
}

func TestFinanceFrom(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		{Amount: 100, Category: "marketing"},
		{Amount: 50, Category: "marketing"},
		{Amount: 200, Category: ""},
	}
	payments := []domain.PaymentRecord{
		{Amount: 300, Status: domain.PaymentStatusPaid},
		{Amount: 150, Status: domain.PaymentStatusPending},
		{Amount: 80, Status: domain.PaymentStatusOverdue},
	}
	budgets := []domain.BudgetRecord{
		{AllocatedAmount: 1000, SpentAmount: 400},
		{AllocatedAmount: 500, SpentAmount: 200},
	}

	metrics := FinanceFrom(expenses, payments, budgets)

	assert.Equal(t, 350.0, metrics.TotalExpenses)
	assert.Len(t, metrics.ExpensesByCategory, 2)
	assert.Equal(t, "marketing", metrics.ExpensesByCategory[0].Label)
	assert.Equal(t, 150.0, metrics.ExpensesByCategory[0].Amount)
	assert.Equal(t, domain.CategoryFallbackLabel, metrics.ExpensesByCategory[1].Label)

	assert.Equal(t, 300.0, metrics.TotalPaid)
	assert.Equal(t, 230.0, metrics.TotalPending)

	assert.Equal(t, 1500.0, metrics.BudgetAllocated)
	assert.Equal(t, 600.0, metrics.BudgetSpent)
	assert.InDelta(t, 40, metrics.BudgetUtilization, 0.001)
}

func TestFinanceFrom_SemOrcamento(t *testing.T) {
	metrics := FinanceFrom(nil, nil, nil)

	assert.Equal(t, 0.0, metrics.BudgetUtilization)
	assert.False(t, math.IsNaN(metrics.BudgetUtilization))
}
