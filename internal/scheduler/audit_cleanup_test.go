package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"go.uber.org/mock/gomock"
)

func newTestCleanupService(t *testing.T, cfg AuditCleanupConfig) (*AuditCleanupService, *mocks.MockInsertAuditRepository) {
	ctrl := gomock.NewController(t)
	auditRepo := mocks.NewMockInsertAuditRepository(ctrl)

	service := &AuditCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		auditRepo: auditRepo,
	}

	return service, auditRepo
}

func TestAuditCleanupService_Desabilitado(t *testing.T) {
	service, _ := newTestCleanupService(t, AuditCleanupConfig{Enabled: false})

	// Desabilitado por configuração: Start não agenda nada e não erra.
	err := service.Start(context.Background())
	assert.NoError(t, err)
}

func TestAuditCleanupService_CronInvalido(t *testing.T) {
	service, _ := newTestCleanupService(t, AuditCleanupConfig{
		Enabled:      true,
		CronSchedule: "não é cron",
	})

	err := service.Start(context.Background())
	assert.Error(t, err)
}

func TestCleanupAudit(t *testing.T) {
	t.Run("Remove registros além da retenção", func(t *testing.T) {
		service, auditRepo := newTestCleanupService(t, AuditCleanupConfig{RetentionDays: 90})

		auditRepo.EXPECT().
			DeleteOlderThan(90).
			Return(int64(12), nil)

		service.cleanupAudit()
		assert.False(t, service.lastRunAt.IsZero())
	})

	t.Run("Falha na remoção não propaga pânico", func(t *testing.T) {
		service, auditRepo := newTestCleanupService(t, AuditCleanupConfig{RetentionDays: 90})

		auditRepo.EXPECT().
			DeleteOlderThan(90).
			Return(int64(0), errors.New("connection refused"))

		assert.NotPanics(t, func() {
			service.cleanupAudit()
		})
	})
}
