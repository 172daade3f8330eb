package authorizing

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func intPtr(i int) *int {
	return &i
}

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository, *mocks.MockAccountRepository, *mocks.MockPermissionRepository) {
	ctrl := gomock.NewController(t)

	userRepo := mocks.NewMockUserRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	permissionRepo := mocks.NewMockPermissionRepository(ctrl)

	service := &Service{
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		permissionRepo: permissionRepo,
	}

	return service, userRepo, accountRepo, permissionRepo
}

func TestValidateBatch_BypassGrant(t *testing.T) {
	service, _, _, permissionRepo := newTestService(t)

	// Com o grant de bypass nenhuma outra checagem roda, nem a de gerente.
	permissionRepo.EXPECT().
		HasGrant(42, domain.GrantCreateOnAnyAccount).
		Return(true, nil)

	batch := []*domain.SalesTransaction{
		{AccountID: "ACC001"},
		{AccountID: "ACC002"},
		{AccountID: ""},
	}

	outcomes, err := service.ValidateBatch(42, batch)

	assert.NoError(t, err)
	assert.Len(t, outcomes, 3)
	for i, outcome := range outcomes {
		assert.Equal(t, i, outcome.Index)
		assert.False(t, outcome.Rejected)
		assert.Empty(t, outcome.Message)
	}
}

func TestValidateBatch_UsuarioSemGerente(t *testing.T) {
	service, userRepo, _, permissionRepo := newTestService(t)

	permissionRepo.EXPECT().
		HasGrant(7, domain.GrantCreateOnAnyAccount).
		Return(false, nil)

	// ManagerID nulo bloqueia o lote inteiro, inclusive contas do próprio
	// usuário. Nenhuma resolução de dono deve acontecer.
	userRepo.EXPECT().
		GetUserByID(7).
		Return(&domain.User{ID: 7, Name: "Carla", ManagerID: nil}, nil)

	batch := []*domain.SalesTransaction{
		{AccountID: "ACC001"},
		{AccountID: "ACC002"},
	}

	outcomes, err := service.ValidateBatch(7, batch)

	assert.NoError(t, err)
	assert.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.True(t, outcome.Rejected)
		assert.Equal(t, ManagerErrorMessage, outcome.Message)
	}
}

func TestValidateBatch_Ownership(t *testing.T) {
	tests := []struct {
		name         string
		batch        []*domain.SalesTransaction
		owners       map[string]int
		wantRejected []bool
	}{
		{
			name: "Todas as contas pertencem ao usuário - lote aceito",
			batch: []*domain.SalesTransaction{
				{AccountID: "ACC001"},
				{AccountID: "ACC002"},
			},
			owners:       map[string]int{"ACC001": 7, "ACC002": 7},
			wantRejected: []bool{false, false},
		},
		{
			name: "Conta de outro dono - rejeição individual, demais seguem",
			batch: []*domain.SalesTransaction{
				{AccountID: "ACC001"},
				{AccountID: "ACC999"},
				{AccountID: "ACC002"},
			},
			owners:       map[string]int{"ACC001": 7, "ACC999": 99, "ACC002": 7},
			wantRejected: []bool{false, true, false},
		},
		{
			name: "Conta desconhecida - rejeitada como não pertencente",
			batch: []*domain.SalesTransaction{
				{AccountID: "NOPE00"},
			},
			owners:       map[string]int{},
			wantRejected: []bool{true},
		},
		{
			name: "Registro sem conta pula a checagem de ownership",
			batch: []*domain.SalesTransaction{
				{AccountID: ""},
				{AccountID: "ACC999"},
			},
			owners:       map[string]int{"ACC999": 99},
			wantRejected: []bool{false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, accountRepo, permissionRepo := newTestService(t)

			permissionRepo.EXPECT().
				HasGrant(7, domain.GrantCreateOnAnyAccount).
				Return(false, nil)

			userRepo.EXPECT().
				GetUserByID(7).
				Return(&domain.User{ID: 7, ManagerID: intPtr(2)}, nil)

			accountRepo.EXPECT().
				OwnersByAccountIDs(gomock.Any()).
				Return(tt.owners, nil)

			outcomes, err := service.ValidateBatch(7, tt.batch)

			assert.NoError(t, err)
			assert.Len(t, outcomes, len(tt.batch))
			for i, wantRejected := range tt.wantRejected {
				assert.Equal(t, wantRejected, outcomes[i].Rejected, "registro %d", i)
				if wantRejected {
					assert.Equal(t, OwnershipErrorMessage, outcomes[i].Message)
				} else {
					assert.Empty(t, outcomes[i].Message)
				}
			}
		})
	}
}

func TestValidateBatch_ResolucaoDeDonosEmUmaQuery(t *testing.T) {
	service, userRepo, accountRepo, permissionRepo := newTestService(t)

	permissionRepo.EXPECT().
		HasGrant(7, domain.GrantCreateOnAnyAccount).
		Return(false, nil)

	userRepo.EXPECT().
		GetUserByID(7).
		Return(&domain.User{ID: 7, ManagerID: intPtr(2)}, nil)

	// Contas repetidas no lote devem virar um único conjunto distinto,
	// resolvido em exatamente uma chamada.
	accountRepo.EXPECT().
		OwnersByAccountIDs(gomock.Any()).
		DoAndReturn(func(accountIDs []string) (map[string]int, error) {
			sort.Strings(accountIDs)
			assert.Equal(t, []string{"ACC001", "ACC002"}, accountIDs)
			return map[string]int{"ACC001": 7, "ACC002": 7}, nil
		}).
		Times(1)

	batch := []*domain.SalesTransaction{
		{AccountID: "ACC001"},
		{AccountID: "ACC001"},
		{AccountID: "ACC002"},
		{AccountID: "ACC001"},
	}

	outcomes, err := service.ValidateBatch(7, batch)

	assert.NoError(t, err)
	assert.Len(t, outcomes, 4)
	for _, outcome := range outcomes {
		assert.False(t, outcome.Rejected)
	}
}

func TestValidateBatch_LoteVazio(t *testing.T) {
	service, _, _, _ := newTestService(t)

	outcomes, err := service.ValidateBatch(7, nil)

	assert.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestValidateBatch_ErrosDeInfraestrutura(t *testing.T) {
	t.Run("Falha ao verificar grant de bypass", func(t *testing.T) {
		service, _, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(7, domain.GrantCreateOnAnyAccount).
			Return(false, errors.New("connection refused"))

		outcomes, err := service.ValidateBatch(7, []*domain.SalesTransaction{{AccountID: "ACC001"}})

		assert.Error(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("Usuário não encontrado", func(t *testing.T) {
		service, userRepo, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(7, domain.GrantCreateOnAnyAccount).
			Return(false, nil)

		userRepo.EXPECT().
			GetUserByID(7).
			Return(nil, nil)

		outcomes, err := service.ValidateBatch(7, []*domain.SalesTransaction{{AccountID: "ACC001"}})

		assert.Error(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("Falha ao resolver donos das contas", func(t *testing.T) {
		service, userRepo, accountRepo, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			HasGrant(7, domain.GrantCreateOnAnyAccount).
			Return(false, nil)

		userRepo.EXPECT().
			GetUserByID(7).
			Return(&domain.User{ID: 7, ManagerID: intPtr(2)}, nil)

		accountRepo.EXPECT().
			OwnersByAccountIDs(gomock.Any()).
			Return(nil, errors.New("query timeout"))

		outcomes, err := service.ValidateBatch(7, []*domain.SalesTransaction{{AccountID: "ACC001"}})

		assert.Error(t, err)
		assert.Nil(t, outcomes)
	})
}
