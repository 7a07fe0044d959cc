package reporting_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/crm-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/reporting"
	"go.uber.org/mock/gomock"
)

func sampleReport() *domain.AnalyticsReport {
	return &domain.AnalyticsReport{
		WindowDays:  30,
		GeneratedAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		Metrics: domain.DashboardMetrics{
			TotalClients:   3,
			ActiveDeals:    1,
			ClosedDeals:    2,
			TotalRevenue:   3000,
			ConversionRate: 66.67,
			AvgDealValue:   1500,
			RevenueByMonth: []domain.MonthRevenue{
				{Month: "05-2024", Revenue: 1234.56, Deals: 1},
				{Month: "06-2024", Revenue: 3000, Deals: 2},
			},
			Forecast: domain.ForecastMetrics{PipelineValue: 500, ProjectedRevenue: 333.34},
			Team:     domain.TeamMetrics{TopPerformer: "B"},
		},
		Trends: domain.TrendSummary{
			RevenueGrowth: domain.TrendUp,
		},
		RecommendedActions: []string{"Mantenha o ritmo atual de trabalho e acompanhe os indicadores"},
	}
}

func TestService_Export_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	analyzer.EXPECT().BuildDashboard(30).Return(sampleReport(), nil)

	service := reporting.NewService(analyzer, snapshotRepo)

	payload, contentType, err := service.Export(30, reporting.FormatJSON)

	assert.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var summary map[string]any
	assert.NoError(t, json.Unmarshal(payload, &summary))

	// Valores monetários saem formatados no padrão brasileiro
	assert.Equal(t, "R$ 3.000,00", summary["total_revenue"])
	assert.Equal(t, "R$ 1.500,00", summary["avg_deal_value"])
	assert.Equal(t, "66.67%", summary["conversion_rate"])
	assert.Equal(t, "B", summary["top_performer"])
	assert.Equal(t, float64(30), summary["window_days"])

	months := summary["revenue_by_month"].([]any)
	assert.Len(t, months, 2)
	first := months[0].(map[string]any)
	assert.Equal(t, "R$ 1.234,56", first["revenue"])
}

func TestService_Export_FormatoVazioUsaJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	analyzer.EXPECT().BuildDashboard(7).Return(sampleReport(), nil)

	service := reporting.NewService(analyzer, snapshotRepo)

	_, contentType, err := service.Export(7, "")

	assert.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
}

func TestService_Export_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	analyzer.EXPECT().BuildDashboard(30).Return(sampleReport(), nil)

	service := reporting.NewService(analyzer, snapshotRepo)

	payload, contentType, err := service.Export(30, reporting.FormatCSV)

	assert.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	rows, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	assert.NoError(t, err)

	assert.Equal(t, []string{"metrica", "valor"}, rows[0])

	values := make(map[string]string, len(rows))
	for _, row := range rows[1:] {
		values[row[0]] = row[1]
	}

	assert.Equal(t, "30", values["janela_dias"])
	assert.Equal(t, "R$ 3.000,00", values["receita_total"])
	assert.Equal(t, "66.67%", values["taxa_conversao"])
	assert.Equal(t, "R$ 1.234,56", values["receita_05-2024"])
	assert.Equal(t, "Mantenha o ritmo atual de trabalho e acompanhe os indicadores", values["recomendacao_1"])
}

func TestService_Export_FormatoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	analyzer.EXPECT().BuildDashboard(30).Return(sampleReport(), nil)

	service := reporting.NewService(analyzer, snapshotRepo)

	payload, _, err := service.Export(30, "xml")

	assert.ErrorIs(t, err, reporting.ErrUnsupportedFormat)
	assert.Nil(t, payload)
}

func TestService_Export_PropagaErroDeJanela(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	analyzer.EXPECT().BuildDashboard(14).Return(nil, analyzing.ErrUnsupportedWindow)

	service := reporting.NewService(analyzer, snapshotRepo)

	payload, _, err := service.Export(14, reporting.FormatJSON)

	assert.ErrorIs(t, err, analyzing.ErrUnsupportedWindow)
	assert.Nil(t, payload)
}

func TestService_ListSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	expected := []*domain.ReportSnapshot{
		{ID: 1, WindowDays: 7, Report: sampleReport()},
		{ID: 2, WindowDays: 30, Report: sampleReport()},
	}
	snapshotRepo.EXPECT().ListLatest().Return(expected, nil)

	service := reporting.NewService(analyzer, snapshotRepo)

	snapshots, err := service.ListSnapshots()

	assert.NoError(t, err)
	assert.Equal(t, expected, snapshots)
}

func TestService_GetSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		windowDays int
		setup      func(snapshotRepo *repomocks.MockReportSnapshotRepository)
		validate   func(t *testing.T, snapshot *domain.ReportSnapshot, err error)
	}{
		{
			name:       "Janela com snapshot computado - deve retornar o snapshot",
			windowDays: 30,
			setup: func(snapshotRepo *repomocks.MockReportSnapshotRepository) {
				snapshotRepo.EXPECT().
					GetLatestByWindow(30).
					Return(&domain.ReportSnapshot{ID: 2, WindowDays: 30, Report: sampleReport()}, nil)
			},
			validate: func(t *testing.T, snapshot *domain.ReportSnapshot, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, snapshot)
				assert.Equal(t, 30, snapshot.WindowDays)
			},
		},
		{
			name:       "Janela ainda não computada - deve retornar nil sem erro",
			windowDays: 365,
			setup: func(snapshotRepo *repomocks.MockReportSnapshotRepository) {
				snapshotRepo.EXPECT().
					GetLatestByWindow(365).
					Return(nil, nil)
			},
			validate: func(t *testing.T, snapshot *domain.ReportSnapshot, err error) {
				assert.NoError(t, err)
				assert.Nil(t, snapshot)
			},
		},
		{
			name:       "Janela não suportada - deve falhar sem consultar o banco",
			windowDays: 15,
			setup:      func(snapshotRepo *repomocks.MockReportSnapshotRepository) {},
			validate: func(t *testing.T, snapshot *domain.ReportSnapshot, err error) {
				assert.ErrorIs(t, err, analyzing.ErrUnsupportedWindow)
				assert.Nil(t, snapshot)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)
			tt.setup(snapshotRepo)

			service := reporting.NewService(analyzer, snapshotRepo)

			snapshot, err := service.GetSnapshot(tt.windowDays)

			tt.validate(t, snapshot, err)
		})
	}
}
