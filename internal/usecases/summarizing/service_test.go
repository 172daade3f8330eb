package summarizing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	aggregatingmocks "github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *aggregatingmocks.MockAggregator, *mocks.MockUserRepository, *mocks.MockPermissionRepository) {
	ctrl := gomock.NewController(t)

	aggregator := aggregatingmocks.NewMockAggregator(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	permissionRepo := mocks.NewMockPermissionRepository(ctrl)

	service := &Service{
		aggregator:     aggregator,
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
	}

	return service, aggregator, userRepo, permissionRepo
}

func TestGetMonthlyTotals(t *testing.T) {
	points := []domain.MonthlyPoint{
		{Year: 2024, Month: 1, Total: 150.75},
		{Year: 2024, Month: 2, Total: 0},
	}

	tests := []struct {
		name          string
		subjectUserID int
		setup         func(*aggregatingmocks.MockAggregator, *mocks.MockPermissionRepository)
		wantErr       error
		wantPoints    []domain.MonthlyPoint
	}{
		{
			name:          "Vendedor não informado - rejeita antes de qualquer consulta",
			subjectUserID: 0,
			setup:         func(*aggregatingmocks.MockAggregator, *mocks.MockPermissionRepository) {},
			wantErr:       ErrMissingSubject,
		},
		{
			name:          "Chamador sem grant de leitura de campo - acesso negado por inteiro",
			subjectUserID: 7,
			setup: func(_ *aggregatingmocks.MockAggregator, permissionRepo *mocks.MockPermissionRepository) {
				permissionRepo.EXPECT().
					MissingGrants(1, domain.SummaryReadGrants).
					Return([]string{domain.GrantReadTransactionAmount}, nil)
			},
			wantErr: ErrPermissionDenied,
		},
		{
			name:          "Falha ao consultar permissões - erro genérico, sem vazar detalhes",
			subjectUserID: 7,
			setup: func(_ *aggregatingmocks.MockAggregator, permissionRepo *mocks.MockPermissionRepository) {
				permissionRepo.EXPECT().
					MissingGrants(1, domain.SummaryReadGrants).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: ErrSummaryUnavailable,
		},
		{
			name:          "Falha na agregação - erro genérico",
			subjectUserID: 7,
			setup: func(aggregator *aggregatingmocks.MockAggregator, permissionRepo *mocks.MockPermissionRepository) {
				permissionRepo.EXPECT().
					MissingGrants(1, domain.SummaryReadGrants).
					Return(nil, nil)
				aggregator.EXPECT().
					MonthlyTotals(7).
					Return(nil, errors.New("query timeout"))
			},
			wantErr: ErrSummaryUnavailable,
		},
		{
			name:          "Acesso completo - série retornada",
			subjectUserID: 7,
			setup: func(aggregator *aggregatingmocks.MockAggregator, permissionRepo *mocks.MockPermissionRepository) {
				permissionRepo.EXPECT().
					MissingGrants(1, domain.SummaryReadGrants).
					Return([]string{}, nil)
				aggregator.EXPECT().
					MonthlyTotals(7).
					Return(points, nil)
			},
			wantPoints: points,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, aggregator, _, permissionRepo := newTestService(t)
			tt.setup(aggregator, permissionRepo)

			series, err := service.GetMonthlyTotals(1, tt.subjectUserID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, series)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPoints, series.Points)
		})
	}
}

func TestGetActiveUsers(t *testing.T) {
	t.Run("Chamador sem o grant de acesso", func(t *testing.T) {
		service, _, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(1, domain.GrantSalesSummaryAccess).
			Return(false, nil)

		options, err := service.GetActiveUsers(1)

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, options)
	})

	t.Run("Lista completa como pares label/value", func(t *testing.T) {
		service, _, userRepo, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(1, domain.GrantSalesSummaryAccess).
			Return(true, nil)

		userRepo.EXPECT().
			ListUsersByGrant(domain.GrantSalesSummaryAccess).
			Return([]*domain.User{
				{ID: 3, Name: "Carla", Lastname: "Mendes"},
				{ID: 4, Name: "Diego", Lastname: "Rocha"},
			}, nil)

		options, err := service.GetActiveUsers(1)

		assert.NoError(t, err)
		assert.Equal(t, []*domain.UserOption{
			{Label: "Carla Mendes", Value: 3},
			{Label: "Diego Rocha", Value: 4},
		}, options)
	})

	t.Run("Falha ao listar vendedores", func(t *testing.T) {
		service, _, userRepo, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(1, domain.GrantSalesSummaryAccess).
			Return(true, nil)

		userRepo.EXPECT().
			ListUsersByGrant(domain.GrantSalesSummaryAccess).
			Return(nil, errors.New("connection refused"))

		options, err := service.GetActiveUsers(1)

		assert.ErrorIs(t, err, ErrSummaryUnavailable)
		assert.Nil(t, options)
	})
}
