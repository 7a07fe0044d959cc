package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/config"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
)

// AnalyticsSnapshotSyncConfig contém as configurações para o serviço de
// pré-computação de relatórios analíticos
type AnalyticsSnapshotSyncConfig struct {
	// CronSchedule é a expressão cron que define quando a sincronização será executada
	CronSchedule string
	// RetentionDays define por quantos dias snapshots antigos são mantidos
	RetentionDays int
	// SyncEnabled indica se a sincronização automática está habilitada
	SyncEnabled bool
}

// AnalyticsSnapshotSyncService é o serviço responsável por pré-computar os
// relatórios do dashboard para todas as janelas suportadas e persistir os
// resultados como snapshots
type AnalyticsSnapshotSyncService struct {
	analyzer            analyzing.Analyzer
	snapshotRepo        repository.ReportSnapshotRepository
	config              AnalyticsSnapshotSyncConfig
	scheduler           *gocron.Scheduler
	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   *time.Time
	lastSyncCompletedAt *time.Time
}

// NewAnalyticsSnapshotSyncService cria uma nova instância do serviço de sincronização
func NewAnalyticsSnapshotSyncService(
	analyzer analyzing.Analyzer,
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *AnalyticsSnapshotSyncService {
	cfg := AnalyticsSnapshotSyncConfig{
		CronSchedule:  appConfig.AnalyticsSnapshotSync.CronSchedule,
		RetentionDays: appConfig.AnalyticsSnapshotSync.RetentionDays,
		SyncEnabled:   appConfig.AnalyticsSnapshotSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cfg.CronSchedule,
		"retention_days": cfg.RetentionDays,
		"enabled":        cfg.SyncEnabled,
	}).Info("Configuração do serviço de snapshots analíticos carregada")

	return &AnalyticsSnapshotSyncService{
		analyzer:     analyzer,
		snapshotRepo: snapshotRepo,
		config:       cfg,
		scheduler:    gocron.NewScheduler(time.Local),
	}
}

// Start inicia o agendador de sincronização de snapshots
func (s *AnalyticsSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots analíticos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots analíticos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSnapshots(ctx)
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao agendar a sincronização de snapshots analíticos")
		return err
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots analíticos")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSnapshots computa e persiste o relatório de cada janela suportada
func (s *AnalyticsSnapshotSyncService) syncAllSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	now := time.Now()
	s.lastSyncStartedAt = &now
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		completedAt := time.Now()
		s.lastSyncCompletedAt = &completedAt
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots analíticos para todas as janelas")

	synced := 0

	for _, windowDays := range analyzing.AllowedWindows {
		select {
		case <-ctx.Done():
			logrus.Info("Sincronização de snapshots interrompida pelo contexto")
			return
		default:
		}

		report, err := s.analyzer.BuildDashboard(windowDays)
		if err != nil {
			logrus.WithError(err).WithField("window_days", windowDays).
				Error("Erro ao computar o relatório da janela")
			continue
		}

		snapshot := &domain.ReportSnapshot{
			WindowDays: windowDays,
			Report:     report,
		}

		if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
			logrus.WithError(err).WithField("window_days", windowDays).
				Error("Erro ao salvar o snapshot da janela")
			continue
		}

		synced++
	}

	if s.config.RetentionDays > 0 {
		removed, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).WithField("retention_days", s.config.RetentionDays).
				Error("Erro ao remover snapshots antigos")
		} else if removed > 0 {
			logrus.WithFields(logrus.Fields{
				"removed":        removed,
				"retention_days": s.config.RetentionDays,
			}).Info("Snapshots antigos removidos")
		}
	}

	logrus.WithFields(logrus.Fields{
		"synced": synced,
		"total":  len(analyzing.AllowedWindows),
	}).Info("Sincronização de snapshots analíticos concluída")
}

// TriggerManualSync dispara uma sincronização manual de snapshots. A execução
// acontece em background, desacoplada do contexto da requisição que a disparou.
func (s *AnalyticsSnapshotSyncService) TriggerManualSync() {
	logrus.Info("Sincronização manual de snapshots solicitada")
	go s.syncAllSnapshots(context.Background())
}

// GetStatus retorna o status atual do serviço de sincronização
func (s *AnalyticsSnapshotSyncService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]interface{}{
		"enabled":        s.config.SyncEnabled,
		"cron_schedule":  s.config.CronSchedule,
		"retention_days": s.config.RetentionDays,
		"sync_running":   s.syncRunning,
	}

	if s.lastSyncStartedAt != nil {
		status["last_sync_started_at"] = s.lastSyncStartedAt.Format(time.RFC3339)
	}

	if s.lastSyncCompletedAt != nil {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt.Format(time.RFC3339)
	}

	return status
}
