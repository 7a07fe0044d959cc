package analyzing

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

// ErrUnsupportedWindow indica que o chamador pediu uma janela fora do
// conjunto suportado. É violação de contrato, não dado sujo.
var ErrUnsupportedWindow = errors.New("janela de análise não suportada")

// Service implementa a interface Analyzer buscando os registros nos
// repositórios e executando o pipeline puro de agregação
type Service struct {
	clientRepo  repository.ClientRepository
	taskRepo    repository.TaskRepository
	eventRepo   repository.EventRepository
	expenseRepo repository.ExpenseRepository
	paymentRepo repository.PaymentRepository
	budgetRepo  repository.BudgetRepository
	nowFn       func() time.Time
}

// NewService cria uma nova instância do serviço de análise
func NewService(
	clientRepo repository.ClientRepository,
	taskRepo repository.TaskRepository,
	eventRepo repository.EventRepository,
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	budgetRepo repository.BudgetRepository,
) *Service {
	return &Service{
		clientRepo:  clientRepo,
		taskRepo:    taskRepo,
		eventRepo:   eventRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		budgetRepo:  budgetRepo,
		nowFn:       time.Now,
	}
}

// WithClock substitui o relógio do serviço. O pipeline não consulta o
// relógio do sistema diretamente, o que mantém os cálculos determinísticos
// nos testes.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// BuildDashboard executa o pipeline completo sobre um snapshot recém
// buscado dos repositórios. Falha de busca em um dos conjuntos degrada
// para lista vazia: o painel renderiza "sem dados" em vez de quebrar.
func (s *Service) BuildDashboard(windowDays int) (*domain.AnalyticsReport, error) {
	if !ValidWindow(windowDays) {
		return nil, fmt.Errorf("%w: %d dias", ErrUnsupportedWindow, windowDays)
	}

	snapshot := s.fetchSnapshot()

	return BuildReport(snapshot, windowDays, s.nowFn())
}

// BuildPreview executa o pipeline sobre uma carga bruta fornecida pelo
// chamador (arrays puros ou envelopes {data: [...]}), sem tocar no banco
func (s *Service) BuildPreview(raw RawSnapshot, windowDays int) (*domain.AnalyticsReport, error) {
	if !ValidWindow(windowDays) {
		return nil, fmt.Errorf("%w: %d dias", ErrUnsupportedWindow, windowDays)
	}

	return BuildReport(NormalizeSnapshot(raw), windowDays, s.nowFn())
}

// fetchSnapshot materializa todos os conjuntos de registros e os passa
// pela fronteira de normalização, garantindo um único formato canônico
// para o restante do pipeline
func (s *Service) fetchSnapshot() Snapshot {
	clients, err := s.clientRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar clientes, usando lista vazia")
	}

	tasks, err := s.taskRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar tarefas, usando lista vazia")
	}

	events, err := s.eventRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar eventos, usando lista vazia")
	}

	expenses, err := s.expenseRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar despesas, usando lista vazia")
	}

	payments, err := s.paymentRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar pagamentos, usando lista vazia")
	}

	budgets, err := s.budgetRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("analítica: erro ao buscar orçamentos, usando lista vazia")
	}

	return NormalizeSnapshot(RawSnapshot{
		Clients:  clients,
		Tasks:    tasks,
		Events:   events,
		Expenses: expenses,
		Payments: payments,
		Budgets:  budgets,
	})
}
