package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/config"
)

// AuditCleanupConfig representa a configuração do agendador de limpeza do audit
type AuditCleanupConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// AuditCleanupService remove periodicamente os registros antigos do audit de
// lotes. O audit é o único estado derivado persistido; os agregados de
// vendas são sempre calculados sob demanda e não têm retenção.
type AuditCleanupService struct {
	scheduler    *gocron.Scheduler
	config       AuditCleanupConfig
	auditRepo    repository.InsertAuditRepository
	cleanupMutex sync.Mutex
	lastRunAt    time.Time
}

// NewAuditCleanupService cria uma nova instância do serviço de limpeza
func NewAuditCleanupService(
	auditRepo repository.InsertAuditRepository,
	appConfig *config.Config,
) *AuditCleanupService {
	cleanupConfig := AuditCleanupConfig{
		CronSchedule:  appConfig.AuditCleanup.CronSchedule,
		RetentionDays: appConfig.AuditCleanup.RetentionDays,
		Enabled:       appConfig.AuditCleanup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cleanupConfig.CronSchedule,
		"retention_days": cleanupConfig.RetentionDays,
		"enabled":        cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza do audit carregada")

	return &AuditCleanupService{
		scheduler: scheduler,
		config:    cleanupConfig,
		auditRepo: auditRepo,
	}
}

// Start inicia o agendador
func (s *AuditCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza do audit de inserções desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza do audit")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanupAudit()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do audit: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do audit")
		s.scheduler.Stop()
	}()

	return nil
}

// Stop interrompe o agendador
func (s *AuditCleanupService) Stop() {
	s.scheduler.Stop()
}

func (s *AuditCleanupService) cleanupAudit() {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	s.lastRunAt = time.Now()

	removed, err := s.auditRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover registros antigos do audit")
		return
	}

	logrus.WithFields(logrus.Fields{
		"removed":        removed,
		"retention_days": s.config.RetentionDays,
	}).Info("Limpeza do audit concluída")
}
