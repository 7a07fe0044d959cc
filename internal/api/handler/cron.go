package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/internal/scheduler"
	"github.com/vfg2006/crm-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/crm-analytics-api/pkg/middleware"
)

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	AnalyticsSnapshotSyncService *scheduler.AnalyticsSnapshotSyncService
}

// RunAnalyticsSnapshotSync dispara manualmente a pré-computação de snapshots
func RunAnalyticsSnapshotSync(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAnalyticsSnapshotSync")

		// Apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		if services.AnalyticsSnapshotSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de snapshots não disponível", nil)
			return
		}

		services.AnalyticsSnapshotSyncService.TriggerManualSync()

		response := map[string]any{
			"message": "Sincronização de snapshots iniciada com sucesso",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"analytics-snapshot": services.AnalyticsSnapshotSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
