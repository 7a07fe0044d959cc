package analyzing

import (
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// Analyzer é o serviço de análise consumido pelos handlers, pelo
// exportador de relatórios e pelo agendador de snapshots
type Analyzer interface {
	BuildDashboard(windowDays int) (*domain.AnalyticsReport, error)
	BuildPreview(raw RawSnapshot, windowDays int) (*domain.AnalyticsReport, error)
}
