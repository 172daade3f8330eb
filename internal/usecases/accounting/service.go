package accounting

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// Janela padrão da listagem de vendas por conta quando o chamador não
// informa período: o mês corrente e os onze anteriores.
const defaultListingMonths = 12

// Manager é a administração de contas: criação, listagem, transferência de
// dono e a listagem de vendas de uma conta. A transferência é a operação que
// materializa a mutabilidade do dono; as vendas históricas passam a ser
// atribuídas ao novo dono na próxima consulta.
type Manager interface {
	CreateAccount(name string, ownerID int) (*domain.Account, error)
	GetAccount(accountID string) (*domain.Account, error)
	// ListAccounts aceita um filtro opcional por dono.
	ListAccounts(ownerID *int) ([]*domain.Account, error)
	TransferOwner(accountID string, newOwnerID int) error
	// ListTransactions exige do chamador os mesmos grants de leitura do
	// resumo mensal antes de expor as vendas da conta.
	ListTransactions(callerID int, accountID, startDate, endDate string) ([]*domain.SalesTransaction, error)
}

type Service struct {
	accountRepo     repository.AccountRepository
	userRepo        repository.UserRepository
	transactionRepo repository.SalesTransactionRepository
	permissionRepo  repository.PermissionRepository

	// now é injetável para fixar a janela padrão nos testes.
	now func() time.Time
}

func NewService(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.SalesTransactionRepository,
	permissionRepo repository.PermissionRepository,
) *Service {
	return &Service{
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		permissionRepo:  permissionRepo,
		now:             time.Now,
	}
}

// WithClock substitui a fonte de tempo. Usado em testes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateAccount(name string, ownerID int) (*domain.Account, error) {
	if name == "" {
		return nil, ErrMissingName
	}

	owner, err := s.userRepo.GetUserByID(ownerID)
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).
			Error("accounting: erro ao buscar o dono da conta")
		return nil, ErrAccountUnavailable
	}
	if owner == nil || !owner.Active {
		return nil, ErrOwnerNotFound
	}

	account, err := s.accountRepo.CreateAccount(&domain.Account{
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).
			Error("accounting: erro ao criar conta")
		return nil, ErrAccountUnavailable
	}

	return account, nil
}

func (s *Service) GetAccount(accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Error("accounting: erro ao buscar conta")
		return nil, ErrAccountUnavailable
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

func (s *Service) ListAccounts(ownerID *int) ([]*domain.Account, error) {
	var (
		accounts []*domain.Account
		err      error
	)

	if ownerID != nil {
		accounts, err = s.accountRepo.ListAccountsByOwner(*ownerID)
	} else {
		accounts, err = s.accountRepo.ListAccounts()
	}
	if err != nil {
		logrus.WithError(err).Error("accounting: erro ao listar contas")
		return nil, ErrAccountUnavailable
	}

	return accounts, nil
}

func (s *Service) TransferOwner(accountID string, newOwnerID int) error {
	owner, err := s.userRepo.GetUserByID(newOwnerID)
	if err != nil {
		logrus.WithError(err).WithField("owner_id", newOwnerID).
			Error("accounting: erro ao buscar o novo dono")
		return ErrAccountUnavailable
	}
	if owner == nil || !owner.Active {
		return ErrOwnerNotFound
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Error("accounting: erro ao buscar conta para transferência")
		return ErrAccountUnavailable
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := s.accountRepo.UpdateOwner(accountID, newOwnerID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"account_id": accountID,
			"owner_id":   newOwnerID,
		}).Error("accounting: erro ao transferir dono da conta")
		return ErrAccountUnavailable
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"owner_id":   newOwnerID,
	}).Info("accounting: dono da conta transferido")

	return nil
}

func (s *Service) ListTransactions(callerID int, accountID, startDate, endDate string) ([]*domain.SalesTransaction, error) {
	missing, err := s.permissionRepo.MissingGrants(callerID, domain.SummaryReadGrants)
	if err != nil {
		logrus.WithError(err).WithField("caller_id", callerID).
			Error("accounting: erro ao verificar permissões de leitura")
		return nil, ErrAccountUnavailable
	}
	if len(missing) > 0 {
		logrus.WithFields(logrus.Fields{
			"caller_id":      callerID,
			"missing_grants": missing,
		}).Warn("accounting: acesso negado às vendas da conta")
		return nil, ErrPermissionDenied
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Error("accounting: erro ao buscar conta")
		return nil, ErrAccountUnavailable
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	now := s.now()
	start := utils.FirstDayOfMonth(now).AddDate(0, -(defaultListingMonths - 1), 0)
	end := now

	if startDate != "" {
		parsed, err := utils.ParseDate(startDate)
		if err != nil {
			return nil, ErrInvalidPeriod
		}
		start = *parsed
	}

	if endDate != "" {
		parsed, err := utils.ParseDate(endDate)
		if err != nil {
			return nil, ErrInvalidPeriod
		}
		end = *parsed
	}

	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}

	transactions, err := s.transactionRepo.ListByAccountID(accountID, start, end)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Error("accounting: erro ao listar vendas da conta")
		return nil, ErrAccountUnavailable
	}

	return transactions, nil
}
