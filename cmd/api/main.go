package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/api"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/scheduler"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/accounting"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/recording"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/summarizing"
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

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	permissionRepo := repository.NewPermissionRepository(pgConn)
	transactionRepo := repository.NewSalesTransactionRepository(pgConn)
	auditRepo := repository.NewInsertAuditRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// O guard de criação roda antes do commit de cada lote
	guard := authorizing.NewService(userRepo, accountRepo, permissionRepo)
	recorder := recording.NewService(guard, transactionRepo, auditRepo, pgConn)

	aggregator := aggregating.NewService(transactionRepo)
	summarizer := summarizing.NewService(aggregator, userRepo, permissionRepo)

	accountManager := accounting.NewService(accountRepo, userRepo, transactionRepo, permissionRepo)

	// Inicializa o agendador de limpeza do audit
	auditCleanupService := scheduler.NewAuditCleanupService(auditRepo, cfg)
	if err := auditCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do audit")
	} else {
		logrus.Info("Agendador de limpeza do audit iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		recorder,
		summarizer,
		accountManager,
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
