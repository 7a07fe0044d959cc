package analyzing

import (
	"time"

	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/pkg/utils"
)

// BuildReport executa o pipeline completo sobre um snapshot normalizado:
// filtro de janela, agregação, classificação e montagem. A classificação
// roda sobre as métricas em precisão total; o arredondamento acontece só
// aqui, na fronteira de apresentação.
func BuildReport(snap Snapshot, windowDays int, now time.Time) (*domain.AnalyticsReport, error) {
	filtered, err := filterSnapshot(snap, windowDays, now)
	if err != nil {
		return nil, err
	}

	metrics := Aggregate(filtered, now)
	trends := Classify(metrics)
	actions := Recommend(metrics)

	return &domain.AnalyticsReport{
		WindowDays:         windowDays,
		GeneratedAt:        now,
		Metrics:            roundMetrics(metrics),
		Trends:             trends,
		RecommendedActions: actions,
	}, nil
}

// roundMetrics arredonda valores monetários e percentuais para duas casas
// decimais para exibição e exportação
func roundMetrics(metrics domain.DashboardMetrics) domain.DashboardMetrics {
	round := utils.RoundWithTwoDecimalPlace

	metrics.TotalRevenue = round(metrics.TotalRevenue)
	metrics.ConversionRate = round(metrics.ConversionRate)
	metrics.AvgDealValue = round(metrics.AvgDealValue)
	metrics.MonthlyGrowth = round(metrics.MonthlyGrowth)
	metrics.ClientGrowth = round(metrics.ClientGrowth)

	for i := range metrics.ClientsByStage {
		metrics.ClientsByStage[i].DealValue = round(metrics.ClientsByStage[i].DealValue)
	}

	for i := range metrics.RevenueByMonth {
		metrics.RevenueByMonth[i].Revenue = round(metrics.RevenueByMonth[i].Revenue)
	}

	for i := range metrics.TopClients {
		metrics.TopClients[i].DealValue = round(metrics.TopClients[i].DealValue)
	}

	metrics.Performance.AvgDealCycleDays = round(metrics.Performance.AvgDealCycleDays)
	metrics.Performance.SalesVelocity = round(metrics.Performance.SalesVelocity)

	metrics.Forecast.PipelineValue = round(metrics.Forecast.PipelineValue)
	metrics.Forecast.ProjectedRevenue = round(metrics.Forecast.ProjectedRevenue)

	for i := range metrics.Team.ByOwner {
		metrics.Team.ByOwner[i].Revenue = round(metrics.Team.ByOwner[i].Revenue)
	}
	metrics.Team.AvgDealsPerUser = round(metrics.Team.AvgDealsPerUser)
	metrics.Team.TeamProductivity = round(metrics.Team.TeamProductivity)

	metrics.Finance.TotalExpenses = round(metrics.Finance.TotalExpenses)
	for i := range metrics.Finance.ExpensesByCategory {
		metrics.Finance.ExpensesByCategory[i].Amount = round(metrics.Finance.ExpensesByCategory[i].Amount)
	}
	metrics.Finance.TotalPaid = round(metrics.Finance.TotalPaid)
	metrics.Finance.TotalPending = round(metrics.Finance.TotalPending)
	metrics.Finance.BudgetAllocated = round(metrics.Finance.BudgetAllocated)
	metrics.Finance.BudgetSpent = round(metrics.Finance.BudgetSpent)
	metrics.Finance.BudgetUtilization = round(metrics.Finance.BudgetUtilization)

	return metrics
}
