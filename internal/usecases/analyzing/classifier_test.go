package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "Acima do limiar superior é alta", value: 10, expected: domain.TrendUp},
		{name: "Abaixo do limiar inferior é baixa", value: -10, expected: domain.TrendDown},
		{name: "Entre os limiares é estável", value: 2, expected: domain.TrendStable},
		{name: "Exatamente no limiar superior é estável", value: 5, expected: domain.TrendStable},
		{name: "Exatamente no limiar inferior é estável", value: -5, expected: domain.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trend(tt.value, growthUpThreshold, growthDownThreshold))
		})
	}
}

func TestClassify(t *testing.T) {
	metrics := domain.DashboardMetrics{
		MonthlyGrowth:  12,
		ClientGrowth:   -8,
		ConversionRate: 20,
		Team:           domain.TeamMetrics{TeamProductivity: 55},
		ClientsByStage: []domain.StageBucket{
			{Stage: domain.StageProspect, Label: "Prospect", DealValue: 100},
			{Stage: domain.StageClosed, Label: "Closed", DealValue: 900},
			{Stage: domain.StageLost, Label: "Lost", DealValue: 10},
		},
		RevenueByMonth: []domain.MonthRevenue{
			{Month: "01-2024", Revenue: 100},
			{Month: "02-2024", Revenue: 500},
			{Month: "03-2024", Revenue: 200},
		},
	}

	trends := Classify(metrics)

	assert.Equal(t, domain.TrendUp, trends.RevenueGrowth)
	assert.Equal(t, domain.TrendDown, trends.ClientGrowth)
	assert.Equal(t, domain.TrendUp, trends.Conversion)
	assert.Equal(t, domain.TrendStable, trends.Activity)
	assert.Equal(t, "Closed", trends.BestPerformingStage)
	assert.Equal(t, "Lost", trends.WorstPerformingStage)
	assert.Equal(t, "02-2024", trends.PeakRevenueMonth)
}

func TestClassify_Deterministico(t *testing.T) {
	metrics := domain.DashboardMetrics{
		MonthlyGrowth:  3,
		ConversionRate: 8,
	}

	first := Classify(metrics)
	second := Classify(metrics)

	assert.Equal(t, first, second)
}

func TestClassify_SemDados(t *testing.T) {
	trends := Classify(domain.DashboardMetrics{})

	assert.Equal(t, domain.TrendStable, trends.RevenueGrowth)
	assert.Equal(t, domain.TrendDown, trends.Conversion)
	assert.Equal(t, domain.TrendDown, trends.Activity)
	assert.Equal(t, "", trends.BestPerformingStage)
	assert.Equal(t, "", trends.WorstPerformingStage)
	assert.Equal(t, "", trends.PeakRevenueMonth)
}

func TestStageExtremes_Empate(t *testing.T) {
	buckets := []domain.StageBucket{
		{Label: "Prospect", DealValue: 500},
		{Label: "Meeting", DealValue: 500},
	}

	best, worst := stageExtremes(buckets)

	// Empate fica com o primeiro balde encontrado
	assert.Equal(t, "Prospect", best)
	assert.Equal(t, "Prospect", worst)
}

func TestPeakRevenueMonth_Empate(t *testing.T) {
	series := []domain.MonthRevenue{
		{Month: "01-2024", Revenue: 300},
		{Month: "02-2024", Revenue: 300},
	}

	// Empate fica com o mês mais antigo
	assert.Equal(t, "01-2024", peakRevenueMonth(series))
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		metrics  domain.DashboardMetrics
		expected []string
	}{
		{
			name: "Métricas saudáveis geram apenas a recomendação padrão",
			metrics: domain.DashboardMetrics{
				ConversionRate: 25,
				MonthlyGrowth:  10,
				Performance:    domain.PerformanceMetrics{AvgDealCycleDays: 20},
				Activity:       domain.ActivityMetrics{OverdueTasks: 1},
				Team:           domain.TeamMetrics{TeamProductivity: 80},
			},
			expected: []string{actionStayTheCourse},
		},
		{
			name: "Conversão baixa dispara qualificação de leads",
			metrics: domain.DashboardMetrics{
				ConversionRate: 5,
				MonthlyGrowth:  10,
				Performance:    domain.PerformanceMetrics{AvgDealCycleDays: 20},
				Team:           domain.TeamMetrics{TeamProductivity: 80},
			},
			expected: []string{actionImproveQualification},
		},
		{
			name: "Todas as regras disparadas mantêm a ordem fixa da sequência",
			metrics: domain.DashboardMetrics{
				ConversionRate: 2,
				MonthlyGrowth:  -20,
				Performance:    domain.PerformanceMetrics{AvgDealCycleDays: 90},
				Activity:       domain.ActivityMetrics{OverdueTasks: 8},
				Team:           domain.TeamMetrics{TeamProductivity: 30},
			},
			expected: []string{
				actionImproveQualification,
				actionStreamlineProcess,
				actionPrioritizeTasks,
				actionReviewStrategy,
				actionInvestInTraining,
			},
		},
		{
			name: "Ciclo longo e tarefas atrasadas combinam sem recomendação padrão",
			metrics: domain.DashboardMetrics{
				ConversionRate: 25,
				MonthlyGrowth:  10,
				Performance:    domain.PerformanceMetrics{AvgDealCycleDays: 75},
				Activity:       domain.ActivityMetrics{OverdueTasks: 10},
				Team:           domain.TeamMetrics{TeamProductivity: 80},
			},
			expected: []string{actionStreamlineProcess, actionPrioritizeTasks},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Recommend(tt.metrics))
		})
	}
}
