package analyzing

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/pkg/utils"
)

// Quantidade de meses da série de receita mensal
const revenueSeriesMonths = 6

// Quantidade de clientes no ranking por valor de negócio
const topClientsLimit = 5

// Rótulo usado quando um negócio fechado não tem responsável atribuído
const unassignedOwner = "unassigned"

// Aggregate reduz um snapshot normalizado e filtrado ao conjunto completo
// de métricas do painel. Todas as reduções são puras, mantêm precisão
// total e nunca produzem NaN ou infinito: denominadores zerados resultam
// em métricas zeradas.
func Aggregate(snap Snapshot, now time.Time) domain.DashboardMetrics {
	conversion := ConversionRate(snap.Clients)
	avgDeal := AvgDealValue(snap.Clients)
	cycleDays := AvgDealCycleDays(snap.Clients)

	return domain.DashboardMetrics{
		TotalClients:   len(snap.Clients),
		ActiveDeals:    countActiveDeals(snap.Clients),
		ClosedDeals:    countClosedDeals(snap.Clients),
		TotalRevenue:   TotalRevenue(snap.Clients),
		ConversionRate: conversion,
		AvgDealValue:   avgDeal,
		MonthlyGrowth:  MonthlyGrowth(snap.Clients, now),
		ClientGrowth:   ClientGrowth(snap.Clients, now),
		ClientsByStage: GroupByStage(snap.Clients),
		RevenueByMonth: RevenueByMonth(snap.Clients, now),
		TopClients:     TopClients(snap.Clients),
		Activity:       ActivityFrom(snap.Tasks, snap.Events, now),
		Performance: domain.PerformanceMetrics{
			AvgDealCycleDays: cycleDays,
			SalesVelocity:    SalesVelocity(avgDeal, conversion, cycleDays),
		},
		Forecast: ForecastFrom(snap.Clients, conversion),
		Team:     TeamFrom(snap.Clients, snap.Tasks),
		Finance:  FinanceFrom(snap.Expenses, snap.Payments, snap.Budgets),
	}
}

// TotalRevenue soma o valor dos negócios fechados com ganho
func TotalRevenue(clients []domain.ClientRecord) float64 {
	total := 0.0
	for _, client := range clients {
		if client.IsClosed() {
			total += client.DealValue
		}
	}
	return total
}

func countClosedDeals(clients []domain.ClientRecord) int {
	count := 0
	for _, client := range clients {
		if client.IsClosed() {
			count++
		}
	}
	return count
}

func countActiveDeals(clients []domain.ClientRecord) int {
	count := 0
	for _, client := range clients {
		if client.IsActive() {
			count++
		}
	}
	return count
}

// ConversionRate é o percentual de clientes com negócio fechado
func ConversionRate(clients []domain.ClientRecord) float64 {
	return utils.SafePercent(float64(countClosedDeals(clients)), float64(len(clients)))
}

// AvgDealValue é o ticket médio dos negócios fechados
func AvgDealValue(clients []domain.ClientRecord) float64 {
	closed := countClosedDeals(clients)
	if closed == 0 {
		return 0
	}
	return TotalRevenue(clients) / float64(closed)
}

// revenueInMonth soma a receita fechada cujo updated_at cai no mês da
// data de referência. O updated_at faz o papel de data de fechamento.
func revenueInMonth(clients []domain.ClientRecord, reference time.Time) float64 {
	total := 0.0
	for _, client := range clients {
		if !client.IsClosed() || client.UpdatedAt == nil {
			continue
		}
		if utils.SameMonth(*client.UpdatedAt, reference) {
			total += client.DealValue
		}
	}
	return total
}

// MonthlyGrowth é a variação percentual da receita do mês atual em relação
// ao mês anterior. Quando o mês anterior foi zero e o atual é positivo,
// a variação é fixada em 100 em vez de infinito. A referência do mês
// anterior parte do primeiro dia do mês: recuar um mês a partir do dia
// 29, 30 ou 31 normalizaria para o próprio mês atual.
func MonthlyGrowth(clients []domain.ClientRecord, now time.Time) float64 {
	current := revenueInMonth(clients, now)
	last := revenueInMonth(clients, utils.StartOfMonth(now).AddDate(0, -1, 0))

	if last == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return ((current - last) / last) * 100
}

// ClientGrowth é a variação percentual de novos clientes do mês atual em
// relação ao mês anterior, com a mesma proteção contra divisão por zero
func ClientGrowth(clients []domain.ClientRecord, now time.Time) float64 {
	current := 0
	last := 0
	lastMonth := utils.StartOfMonth(now).AddDate(0, -1, 0)

	for _, client := range clients {
		if client.CreatedAt == nil {
			continue
		}
		if utils.SameMonth(*client.CreatedAt, now) {
			current++
		} else if utils.SameMonth(*client.CreatedAt, lastMonth) {
			last++
		}
	}

	if last == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return (float64(current-last) / float64(last)) * 100
}

// GroupByStage particiona os clientes por estágio do funil. Todo cliente
// cai em exatamente um balde: estágios desconhecidos ou vazios geram o
// próprio balde com rótulo de fallback em vez de serem descartados.
// A ordem dos baldes segue a primeira ocorrência na entrada.
func GroupByStage(clients []domain.ClientRecord) []domain.StageBucket {
	buckets := make([]domain.StageBucket, 0)
	indexByStage := make(map[string]int)

	for _, client := range clients {
		index, exists := indexByStage[client.Stage]
		if !exists {
			index = len(buckets)
			indexByStage[client.Stage] = index
			buckets = append(buckets, domain.StageBucket{
				Stage: client.Stage,
				Label: domain.StageLabel(client.Stage),
			})
		}

		buckets[index].Count++
		buckets[index].DealValue += client.DealValue
	}

	return buckets
}

// RevenueByMonth monta a série fixa dos últimos 6 meses calendário,
// sempre com 6 entradas em ordem cronológica, com ou sem dados no mês
func RevenueByMonth(clients []domain.ClientRecord, now time.Time) []domain.MonthRevenue {
	series := make([]domain.MonthRevenue, 0, revenueSeriesMonths)

	for i := revenueSeriesMonths - 1; i >= 0; i-- {
		monthStart := utils.StartOfMonth(now).AddDate(0, -i, 0)

		entry := domain.MonthRevenue{Month: utils.MonthKey(monthStart)}
		for _, client := range clients {
			if !client.IsClosed() || client.UpdatedAt == nil {
				continue
			}
			if utils.SameMonth(*client.UpdatedAt, monthStart) {
				entry.Revenue += client.DealValue
				entry.Deals++
			}
		}

		series = append(series, entry)
	}

	return series
}

// TopClients agrupa negócios por nome da empresa e retorna os 5 maiores
// por valor somado. Empates preservam a ordem de primeira ocorrência
// na entrada (ordenação estável, sem critério secundário).
func TopClients(clients []domain.ClientRecord) []domain.TopClient {
	ranking := make([]domain.TopClient, 0)
	indexByCompany := make(map[string]int)

	for _, client := range clients {
		index, exists := indexByCompany[client.CompanyName]
		if !exists {
			index = len(ranking)
			indexByCompany[client.CompanyName] = index
			ranking = append(ranking, domain.TopClient{CompanyName: client.CompanyName})
		}

		ranking[index].DealValue += client.DealValue
		ranking[index].Deals++
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].DealValue > ranking[j].DealValue
	})

	if len(ranking) > topClientsLimit {
		ranking = ranking[:topClientsLimit]
	}

	return ranking
}

// ActivityFrom resume tarefas concluídas, atrasadas e eventos próximos.
// Eventos sem data contam como "agora" e portanto entram na contagem de
// próximos, seguindo a política de nunca esconder registros sem dados.
func ActivityFrom(tasks []domain.TaskRecord, events []domain.EventRecord, now time.Time) domain.ActivityMetrics {
	metrics := domain.ActivityMetrics{TotalTasks: len(tasks)}

	for _, task := range tasks {
		if task.IsCompleted() {
			metrics.CompletedTasks++
		} else if task.IsOverdue(now) {
			metrics.OverdueTasks++
		}
	}

	horizon := now.AddDate(0, 0, 7)
	for _, event := range events {
		when := now
		if eventTime := event.When(); eventTime != nil {
			when = *eventTime
		}
		if !when.Before(now) && !when.After(horizon) {
			metrics.UpcomingEvents++
		}
	}

	return metrics
}

// AvgDealCycleDays é a média, em dias, do intervalo entre criação e
// fechamento dos negócios ganhos que possuem ambas as datas
func AvgDealCycleDays(clients []domain.ClientRecord) float64 {
	totalDays := 0.0
	qualified := 0

	for _, client := range clients {
		if !client.IsClosed() || client.CreatedAt == nil || client.UpdatedAt == nil {
			continue
		}

		days := client.UpdatedAt.Sub(*client.CreatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}

		totalDays += days
		qualified++
	}

	if qualified == 0 {
		return 0
	}

	return totalDays / float64(qualified)
}

// SalesVelocity combina ticket médio, conversão e ciclo de fechamento em
// uma métrica de vazão mensal. O ciclo tem piso de 1 dia para evitar
// divisão por zero.
func SalesVelocity(avgDealValue, conversionRate, cycleDays float64) float64 {
	return avgDealValue * (conversionRate / 100) * (30 / math.Max(cycleDays, 1))
}

// ForecastFrom projeta a receita a partir do valor do funil ativo e da
// taxa de conversão observada
func ForecastFrom(clients []domain.ClientRecord, conversionRate float64) domain.ForecastMetrics {
	pipeline := 0.0
	activeDeals := 0

	for _, client := range clients {
		if client.IsActive() {
			pipeline += client.DealValue
			activeDeals++
		}
	}

	return domain.ForecastMetrics{
		PipelineValue:        pipeline,
		ProjectedRevenue:     pipeline * (conversionRate / 100),
		ExpectedClosingDeals: int(math.Round(float64(activeDeals) * conversionRate / 100)),
	}
}

// TeamFrom agrupa os negócios fechados por responsável e resume o
// desempenho da equipe. O melhor vendedor é o de maior receita, com
// empate resolvido pela primeira ocorrência.
func TeamFrom(clients []domain.ClientRecord, tasks []domain.TaskRecord) domain.TeamMetrics {
	byOwner := make([]domain.OwnerPerformance, 0)
	indexByOwner := make(map[string]int)
	totalClosed := 0

	for _, client := range clients {
		if !client.IsClosed() {
			continue
		}

		owner := client.AssignedTo
		if owner == "" {
			owner = unassignedOwner
		}

		index, exists := indexByOwner[owner]
		if !exists {
			index = len(byOwner)
			indexByOwner[owner] = index
			byOwner = append(byOwner, domain.OwnerPerformance{Owner: owner})
		}

		byOwner[index].Revenue += client.DealValue
		byOwner[index].Deals++
		totalClosed++
	}

	topPerformer := ""
	bestRevenue := math.Inf(-1)
	for _, owner := range byOwner {
		if owner.Revenue > bestRevenue {
			bestRevenue = owner.Revenue
			topPerformer = owner.Owner
		}
	}

	owners := len(byOwner)
	if owners == 0 {
		owners = 1
	}

	completedTasks := 0
	for _, task := range tasks {
		if task.IsCompleted() {
			completedTasks++
		}
	}

	return domain.TeamMetrics{
		TopPerformer:     topPerformer,
		ByOwner:          byOwner,
		AvgDealsPerUser:  float64(totalClosed) / float64(owners),
		TeamProductivity: utils.SafePercent(float64(completedTasks), float64(len(tasks))),
	}
}

// FinanceFrom resume despesas por categoria, pagamentos por status e a
// utilização do orçamento alocado
func FinanceFrom(expenses []domain.ExpenseRecord, payments []domain.PaymentRecord, budgets []domain.BudgetRecord) domain.FinanceMetrics {
	metrics := domain.FinanceMetrics{
		ExpensesByCategory: make([]domain.CategoryBucket, 0),
	}

	indexByCategory := make(map[string]int)
	for _, expense := range expenses {
		metrics.TotalExpenses += expense.Amount

		index, exists := indexByCategory[expense.Category]
		if !exists {
			index = len(metrics.ExpensesByCategory)
			indexByCategory[expense.Category] = index

			label := domain.CategoryFallbackLabel
			if expense.Category != "" {
				label = expense.Category
			}

			metrics.ExpensesByCategory = append(metrics.ExpensesByCategory, domain.CategoryBucket{
				Category: expense.Category,
				Label:    label,
			})
		}

		metrics.ExpensesByCategory[index].Count++
		metrics.ExpensesByCategory[index].Amount += expense.Amount
	}

	for _, payment := range payments {
		if payment.Status == domain.PaymentStatusPaid {
			metrics.TotalPaid += payment.Amount
		} else {
			metrics.TotalPending += payment.Amount
		}
	}

	for _, budget := range budgets {
		metrics.BudgetAllocated += budget.AllocatedAmount
		metrics.BudgetSpent += budget.SpentAmount
	}
	metrics.BudgetUtilization = utils.SafePercent(metrics.BudgetSpent, metrics.BudgetAllocated)

	return metrics
}
