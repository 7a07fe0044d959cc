package reporting

import (
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// Formatos de exportação suportados
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Exporter gera projeções exportáveis do relatório analítico e expõe os
// snapshots pré-calculados pelo agendador
type Exporter interface {
	Export(windowDays int, format string) ([]byte, string, error)
	ListSnapshots() ([]*domain.ReportSnapshot, error)
	GetSnapshot(windowDays int) (*domain.ReportSnapshot, error)
}
