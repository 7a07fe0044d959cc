package reporting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/crm-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnsupportedFormat indica um formato de exportação desconhecido
var ErrUnsupportedFormat = errors.New("formato de exportação não suportado")

// Service implementa a interface Exporter projetando o relatório analítico
// nos formatos de exportação do painel
type Service struct {
	analyzer     analyzing.Analyzer
	snapshotRepo repository.ReportSnapshotRepository
}

// NewService cria uma nova instância do serviço de exportação
func NewService(analyzer analyzing.Analyzer, snapshotRepo repository.ReportSnapshotRepository) *Service {
	return &Service{
		analyzer:     analyzer,
		snapshotRepo: snapshotRepo,
	}
}

// exportSummary é a projeção achatada do relatório usada na exportação JSON.
// Valores monetários saem formatados no padrão brasileiro, prontos para
// planilha ou e-mail.
type exportSummary struct {
	WindowDays         int                     `json:"window_days"`
	GeneratedAt        time.Time               `json:"generated_at"`
	TotalClients       int                     `json:"total_clients"`
	ActiveDeals        int                     `json:"active_deals"`
	ClosedDeals        int                     `json:"closed_deals"`
	TotalRevenue       string                  `json:"total_revenue"`
	AvgDealValue       string                  `json:"avg_deal_value"`
	ConversionRate     string                  `json:"conversion_rate"`
	MonthlyGrowth      string                  `json:"monthly_growth"`
	PipelineValue      string                  `json:"pipeline_value"`
	ProjectedRevenue   string                  `json:"projected_revenue"`
	TopPerformer       string                  `json:"top_performer,omitempty"`
	RevenueByMonth     []exportMonthRevenue    `json:"revenue_by_month"`
	Trends             domain.TrendSummary     `json:"trends"`
	RecommendedActions []string                `json:"recommended_actions"`
	Metrics            domain.DashboardMetrics `json:"metrics"`
}

type exportMonthRevenue struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
	Deals   int    `json:"deals"`
}

// Export gera o relatório da janela informada no formato pedido e retorna
// o conteúdo junto com o content type correspondente
func (s *Service) Export(windowDays int, format string) ([]byte, string, error) {
	report, err := s.analyzer.BuildDashboard(windowDays)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatJSON, "":
		payload, err := s.exportJSON(report)
		return payload, "application/json", err
	case FormatCSV:
		payload, err := s.exportCSV(report)
		return payload, "text/csv", err
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ListSnapshots retorna os snapshots pré-calculados, um por janela suportada
func (s *Service) ListSnapshots() ([]*domain.ReportSnapshot, error) {
	return s.snapshotRepo.ListLatest()
}

// GetSnapshot retorna o snapshot pré-calculado da janela informada, ou nil
// quando o agendador ainda não computou essa janela
func (s *Service) GetSnapshot(windowDays int) (*domain.ReportSnapshot, error) {
	if !analyzing.ValidWindow(windowDays) {
		return nil, fmt.Errorf("%w: %d dias", analyzing.ErrUnsupportedWindow, windowDays)
	}

	return s.snapshotRepo.GetLatestByWindow(windowDays)
}

func (s *Service) exportJSON(report *domain.AnalyticsReport) ([]byte, error) {
	summary := buildSummary(report)

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o resumo do relatório: %w", err)
	}

	return payload, nil
}

func (s *Service) exportCSV(report *domain.AnalyticsReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	metrics := report.Metrics
	rows := [][]string{
		{"metrica", "valor"},
		{"janela_dias", strconv.Itoa(report.WindowDays)},
		{"gerado_em", report.GeneratedAt.Format(time.RFC3339)},
		{"total_clientes", strconv.Itoa(metrics.TotalClients)},
		{"negocios_ativos", strconv.Itoa(metrics.ActiveDeals)},
		{"negocios_fechados", strconv.Itoa(metrics.ClosedDeals)},
		{"receita_total", utils.FormatBRL(metrics.TotalRevenue)},
		{"ticket_medio", utils.FormatBRL(metrics.AvgDealValue)},
		{"taxa_conversao", formatPercent(metrics.ConversionRate)},
		{"crescimento_mensal", formatPercent(metrics.MonthlyGrowth)},
		{"valor_funil", utils.FormatBRL(metrics.Forecast.PipelineValue)},
		{"receita_projetada", utils.FormatBRL(metrics.Forecast.ProjectedRevenue)},
		{"melhor_vendedor", metrics.Team.TopPerformer},
	}

	for _, entry := range metrics.RevenueByMonth {
		rows = append(rows, []string{
			"receita_" + entry.Month,
			utils.FormatBRL(entry.Revenue),
		})
	}

	for i, action := range report.RecommendedActions {
		rows = append(rows, []string{
			fmt.Sprintf("recomendacao_%d", i+1),
			action,
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("erro ao escrever o CSV do relatório: %w", err)
	}

	return buf.Bytes(), nil
}

func buildSummary(report *domain.AnalyticsReport) exportSummary {
	metrics := report.Metrics

	months := make([]exportMonthRevenue, 0, len(metrics.RevenueByMonth))
	for _, entry := range metrics.RevenueByMonth {
		months = append(months, exportMonthRevenue{
			Month:   entry.Month,
			Revenue: utils.FormatBRL(entry.Revenue),
			Deals:   entry.Deals,
		})
	}

	return exportSummary{
		WindowDays:         report.WindowDays,
		GeneratedAt:        report.GeneratedAt,
		TotalClients:       metrics.TotalClients,
		ActiveDeals:        metrics.ActiveDeals,
		ClosedDeals:        metrics.ClosedDeals,
		TotalRevenue:       utils.FormatBRL(metrics.TotalRevenue),
		AvgDealValue:       utils.FormatBRL(metrics.AvgDealValue),
		ConversionRate:     formatPercent(metrics.ConversionRate),
		MonthlyGrowth:      formatPercent(metrics.MonthlyGrowth),
		PipelineValue:      utils.FormatBRL(metrics.Forecast.PipelineValue),
		ProjectedRevenue:   utils.FormatBRL(metrics.Forecast.ProjectedRevenue),
		TopPerformer:       metrics.Team.TopPerformer,
		RevenueByMonth:     months,
		Trends:             report.Trends,
		RecommendedActions: report.RecommendedActions,
		Metrics:            metrics,
	}
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(value), 'f', 2, 64) + "%"
}
