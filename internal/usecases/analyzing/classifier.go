package analyzing

import (
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// Limiares de classificação das tendências
const (
	growthUpThreshold   = 5.0
	growthDownThreshold = -5.0

	conversionUpThreshold   = 15.0
	conversionDownThreshold = 5.0

	activityUpThreshold   = 70.0
	activityDownThreshold = 40.0
)

// Textos de recomendação exibidos no painel
const (
	actionImproveQualification = "Foque na qualificação de leads para melhorar a taxa de conversão"
	actionStreamlineProcess    = "Revise o processo de vendas para reduzir o ciclo de fechamento"
	actionPrioritizeTasks      = "Priorize as tarefas atrasadas para retomar o ritmo da equipe"
	actionReviewStrategy       = "Reavalie a estratégia comercial para reverter a queda de receita"
	actionInvestInTraining     = "Invista em treinamento para aumentar a produtividade da equipe"
	actionStayTheCourse        = "Mantenha o ritmo atual de trabalho e acompanhe os indicadores"
)

// trend classifica um valor em alta, baixa ou estável conforme os limiares
func trend(value, up, down float64) string {
	switch {
	case value > up:
		return domain.TrendUp
	case value < down:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

// Classify deriva os rótulos qualitativos de tendência a partir das
// métricas já agregadas. Função pura e determinística: mesma entrada,
// mesmos rótulos.
func Classify(metrics domain.DashboardMetrics) domain.TrendSummary {
	best, worst := stageExtremes(metrics.ClientsByStage)

	return domain.TrendSummary{
		RevenueGrowth:        trend(metrics.MonthlyGrowth, growthUpThreshold, growthDownThreshold),
		ClientGrowth:         trend(metrics.ClientGrowth, growthUpThreshold, growthDownThreshold),
		Conversion:           trend(metrics.ConversionRate, conversionUpThreshold, conversionDownThreshold),
		Activity:             trend(metrics.Team.TeamProductivity, activityUpThreshold, activityDownThreshold),
		BestPerformingStage:  best,
		WorstPerformingStage: worst,
		PeakRevenueMonth:     peakRevenueMonth(metrics.RevenueByMonth),
	}
}

// stageExtremes encontra os estágios de maior e menor valor somado.
// Empates ficam com o primeiro balde encontrado.
func stageExtremes(buckets []domain.StageBucket) (best, worst string) {
	if len(buckets) == 0 {
		return "", ""
	}

	bestBucket := buckets[0]
	worstBucket := buckets[0]

	for _, bucket := range buckets[1:] {
		if bucket.DealValue > bestBucket.DealValue {
			bestBucket = bucket
		}
		if bucket.DealValue < worstBucket.DealValue {
			worstBucket = bucket
		}
	}

	return bestBucket.Label, worstBucket.Label
}

// peakRevenueMonth encontra o mês de maior receita da série. Empates
// ficam com o mês mais antigo.
func peakRevenueMonth(series []domain.MonthRevenue) string {
	if len(series) == 0 {
		return ""
	}

	peak := series[0]
	for _, entry := range series[1:] {
		if entry.Revenue > peak.Revenue {
			peak = entry
		}
	}

	return peak.Month
}

// Recommend monta a lista ordenada de ações recomendadas avaliando uma
// sequência fixa de regras independentes. Todas as regras que casarem são
// incluídas, na ordem da sequência; sem nenhuma regra, vale a recomendação
// padrão de manter o curso.
func Recommend(metrics domain.DashboardMetrics) []string {
	actions := make([]string, 0)

	if metrics.ConversionRate < 10 {
		actions = append(actions, actionImproveQualification)
	}

	if metrics.Performance.AvgDealCycleDays > 60 {
		actions = append(actions, actionStreamlineProcess)
	}

	if metrics.Activity.OverdueTasks > 5 {
		actions = append(actions, actionPrioritizeTasks)
	}

	if metrics.MonthlyGrowth < 0 {
		actions = append(actions, actionReviewStrategy)
	}

	if metrics.Team.TeamProductivity < 50 {
		actions = append(actions, actionInvestInTraining)
	}

	if len(actions) == 0 {
		actions = append(actions, actionStayTheCourse)
	}

	return actions
}
