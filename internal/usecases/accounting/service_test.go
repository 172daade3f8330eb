package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockAccountRepository, *mocks.MockUserRepository, *mocks.MockSalesTransactionRepository, *mocks.MockPermissionRepository) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)
	permissionRepo := mocks.NewMockPermissionRepository(ctrl)

	service := NewService(accountRepo, userRepo, transactionRepo, permissionRepo)

	return service, accountRepo, userRepo, transactionRepo, permissionRepo
}

func TestCreateAccount(t *testing.T) {
	t.Run("Nome ausente", func(t *testing.T) {
		service, _, _, _, _ := newTestService(t)

		account, err := service.CreateAccount("", 3)

		assert.ErrorIs(t, err, ErrMissingName)
		assert.Nil(t, account)
	})

	t.Run("Dono inexistente", func(t *testing.T) {
		service, _, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		account, err := service.CreateAccount("Óptica Oeste", 99)

		assert.ErrorIs(t, err, ErrOwnerNotFound)
		assert.Nil(t, account)
	})

	t.Run("Dono desativado", func(t *testing.T) {
		service, _, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().
			GetUserByID(3).
			Return(&domain.User{ID: 3, Active: false}, nil)

		account, err := service.CreateAccount("Óptica Oeste", 3)

		assert.ErrorIs(t, err, ErrOwnerNotFound)
		assert.Nil(t, account)
	})

	t.Run("Criação com dono válido", func(t *testing.T) {
		service, accountRepo, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().
			GetUserByID(3).
			Return(&domain.User{ID: 3, Active: true}, nil)

		accountRepo.EXPECT().
			CreateAccount(gomock.Any()).
			DoAndReturn(func(account *domain.Account) (*domain.Account, error) {
				assert.Equal(t, "Óptica Oeste", account.Name)
				assert.Equal(t, 3, account.OwnerID)
				account.ID = "Ab3xYz"
				return account, nil
			})

		account, err := service.CreateAccount("Óptica Oeste", 3)

		assert.NoError(t, err)
		assert.Equal(t, "Ab3xYz", account.ID)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("Conta encontrada", func(t *testing.T) {
		service, accountRepo, _, _, _ := newTestService(t)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz", Name: "Óptica Central", OwnerID: 3}, nil)

		account, err := service.GetAccount("Ab3xYz")

		assert.NoError(t, err)
		assert.Equal(t, "Óptica Central", account.Name)
	})

	t.Run("Conta inexistente", func(t *testing.T) {
		service, accountRepo, _, _, _ := newTestService(t)

		accountRepo.EXPECT().GetAccountByID("NOPE00").Return(nil, nil)

		account, err := service.GetAccount("NOPE00")

		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.Nil(t, account)
	})
}

func TestListAccounts(t *testing.T) {
	t.Run("Sem filtro lista todas", func(t *testing.T) {
		service, accountRepo, _, _, _ := newTestService(t)

		accountRepo.EXPECT().
			ListAccounts().
			Return([]*domain.Account{{ID: "Ab3xYz"}, {ID: "Cd5wVu"}}, nil)

		accounts, err := service.ListAccounts(nil)

		assert.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("Filtro por dono", func(t *testing.T) {
		service, accountRepo, _, _, _ := newTestService(t)

		accountRepo.EXPECT().
			ListAccountsByOwner(3).
			Return([]*domain.Account{{ID: "Ab3xYz", OwnerID: 3}}, nil)

		ownerID := 3
		accounts, err := service.ListAccounts(&ownerID)

		assert.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.Equal(t, 3, accounts[0].OwnerID)
	})

	t.Run("Falha na listagem", func(t *testing.T) {
		service, accountRepo, _, _, _ := newTestService(t)

		accountRepo.EXPECT().
			ListAccounts().
			Return(nil, errors.New("connection refused"))

		accounts, err := service.ListAccounts(nil)

		assert.ErrorIs(t, err, ErrAccountUnavailable)
		assert.Nil(t, accounts)
	})
}

func TestTransferOwner(t *testing.T) {
	t.Run("Novo dono inexistente", func(t *testing.T) {
		service, _, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		err := service.TransferOwner("Ab3xYz", 99)

		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})

	t.Run("Conta inexistente", func(t *testing.T) {
		service, accountRepo, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().
			GetUserByID(4).
			Return(&domain.User{ID: 4, Active: true}, nil)

		accountRepo.EXPECT().GetAccountByID("NOPE00").Return(nil, nil)

		err := service.TransferOwner("NOPE00", 4)

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Transferência efetivada", func(t *testing.T) {
		service, accountRepo, userRepo, _, _ := newTestService(t)

		userRepo.EXPECT().
			GetUserByID(4).
			Return(&domain.User{ID: 4, Active: true}, nil)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz", OwnerID: 3}, nil)

		accountRepo.EXPECT().UpdateOwner("Ab3xYz", 4).Return(nil)

		err := service.TransferOwner("Ab3xYz", 4)

		assert.NoError(t, err)
	})
}

func TestListTransactions(t *testing.T) {
	reference := time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC)

	t.Run("Chamador sem grants de leitura", func(t *testing.T) {
		service, _, _, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			MissingGrants(1, domain.SummaryReadGrants).
			Return([]string{domain.GrantReadTransactionAmount}, nil)

		transactions, err := service.ListTransactions(1, "Ab3xYz", "", "")

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, transactions)
	})

	t.Run("Período em formato inválido", func(t *testing.T) {
		service, accountRepo, _, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			MissingGrants(1, domain.SummaryReadGrants).
			Return(nil, nil)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz"}, nil)

		transactions, err := service.ListTransactions(1, "Ab3xYz", "15/01/2024", "")

		assert.ErrorIs(t, err, ErrInvalidPeriod)
		assert.Nil(t, transactions)
	})

	t.Run("Período invertido", func(t *testing.T) {
		service, accountRepo, _, _, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			MissingGrants(1, domain.SummaryReadGrants).
			Return(nil, nil)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz"}, nil)

		transactions, err := service.ListTransactions(1, "Ab3xYz", "2024-02-01", "2024-01-01")

		assert.ErrorIs(t, err, ErrInvalidPeriod)
		assert.Nil(t, transactions)
	})

	t.Run("Sem período usa a janela padrão de 12 meses", func(t *testing.T) {
		service, accountRepo, _, transactionRepo, permissionRepo := newTestService(t)
		service.WithClock(func() time.Time { return reference })

		permissionRepo.EXPECT().
			MissingGrants(1, domain.SummaryReadGrants).
			Return(nil, nil)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz"}, nil)

		transactionRepo.EXPECT().
			ListByAccountID("Ab3xYz", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), reference).
			Return([]*domain.SalesTransaction{{ID: 101, AccountID: "Ab3xYz", Amount: 100.50}}, nil)

		transactions, err := service.ListTransactions(1, "Ab3xYz", "", "")

		assert.NoError(t, err)
		assert.Len(t, transactions, 1)
		assert.Equal(t, 101, transactions[0].ID)
	})

	t.Run("Período explícito", func(t *testing.T) {
		service, accountRepo, _, transactionRepo, permissionRepo := newTestService(t)

		permissionRepo.EXPECT().
			MissingGrants(1, domain.SummaryReadGrants).
			Return(nil, nil)

		accountRepo.EXPECT().
			GetAccountByID("Ab3xYz").
			Return(&domain.Account{ID: "Ab3xYz"}, nil)

		transactionRepo.EXPECT().
			ListByAccountID(
				"Ab3xYz",
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			).
			Return([]*domain.SalesTransaction{}, nil)

		transactions, err := service.ListTransactions(1, "Ab3xYz", "2024-01-01", "2024-01-31")

		assert.NoError(t, err)
		assert.Empty(t, transactions)
	})
}
