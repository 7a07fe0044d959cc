package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/api/handler"
	"github.com/vfg2006/crm-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/crm-analytics-api/internal/config"
	"github.com/vfg2006/crm-analytics-api/internal/scheduler"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/crm-analytics-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Repositories agrupa os repositórios expostos diretamente pelos handlers CRUD
type Repositories struct {
	Clients  repository.ClientRepository
	Tasks    repository.TaskRepository
	Events   repository.EventRepository
	Expenses repository.ExpenseRepository
	Payments repository.PaymentRepository
	Budgets  repository.BudgetRepository
}

func New(
	config *config.Config,
	analyzer analyzing.Analyzer,
	exporter reporting.Exporter,
	authenticator authenticating.Authenticator,
	repos Repositories,
	snapshotSyncService *scheduler.AnalyticsSnapshotSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		AnalyticsSnapshotSyncService: snapshotSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Analytics(analyzer, exporter)...),
		router.WithRoutes(handler.Clients(repos.Clients)...),
		router.WithRoutes(handler.Tasks(repos.Tasks)...),
		router.WithRoutes(handler.Events(repos.Events)...),
		router.WithRoutes(handler.Finances(repos.Expenses, repos.Payments, repos.Budgets)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
