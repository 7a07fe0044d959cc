package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/api"
	"github.com/vfg2006/crm-analytics-api/internal/config"
	"github.com/vfg2006/crm-analytics-api/internal/scheduler"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clientRepo := repository.NewClientRepository(pgConn)
	taskRepo := repository.NewTaskRepository(pgConn)
	eventRepo := repository.NewEventRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	paymentRepo := repository.NewPaymentRepository(pgConn)
	budgetRepo := repository.NewBudgetRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	analyzer := analyzing.NewService(
		clientRepo,
		taskRepo,
		eventRepo,
		expenseRepo,
		paymentRepo,
		budgetRepo,
	)

	exporter := reporting.NewService(analyzer, snapshotRepo)

	// Inicializa o agendador de pré-computação de snapshots
	snapshotSyncService := scheduler.NewAnalyticsSnapshotSyncService(
		analyzer,
		snapshotRepo,
		cfg,
	)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots analíticos")
	} else {
		logrus.Info("Agendador de snapshots analíticos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		analyzer,
		exporter,
		authenticator,
		api.Repositories{
			Clients:  clientRepo,
			Tasks:    taskRepo,
			Events:   eventRepo,
			Expenses: expenseRepo,
			Payments: paymentRepo,
			Budgets:  budgetRepo,
		},
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
