package authorizing

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// Mensagens anexadas aos registros rejeitados. O texto de ownership é
// contrato com a UI; não alterar sem alinhar com o front.
const (
	OwnershipErrorMessage = "You can only create a Sales Transaction for an Account you own."
	ManagerErrorMessage   = "You must have a manager assigned before creating Sales Transactions."
)

// Outcome é a decisão do guard para um registro do lote. Rejeição é sempre
// individual: os demais registros do lote seguem inalterados.
type Outcome struct {
	Index    int    `json:"index"`
	Rejected bool   `json:"rejected"`
	Message  string `json:"message,omitempty"`
}

// Guard decide, registro a registro, se a criação de um lote de
// SalesTransaction é permitida para o usuário que está agindo.
type Guard interface {
	ValidateBatch(actorID int, batch []*domain.SalesTransaction) ([]Outcome, error)
}

type Service struct {
	userRepo       repository.UserRepository
	accountRepo    repository.AccountRepository
	permissionRepo repository.PermissionRepository
}

func NewService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	permissionRepo repository.PermissionRepository,
) Guard {
	return &Service{
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		permissionRepo: permissionRepo,
	}
}

// ValidateBatch avalia o lote inteiro em uma passada:
//
//  1. Usuário com o grant de bypass aceita o lote inteiro sem nenhuma outra
//     checagem, inclusive a de gerente (escape hatch de administradores).
//  2. Usuário sem gerente atribuído tem TODA criação bloqueada, mesmo para
//     contas que possui. A checagem é deliberadamente irrestrita.
//  3. Os donos das contas distintas do lote são resolvidos em UMA query e
//     cada registro é aceito sse o dono atual é o próprio usuário.
//
// Registros sem conta pulam a checagem de ownership. Falhas de
// infraestrutura (lookup de usuário, conta ou grant) retornam erro e nenhum
// Outcome; rejeição de negócio nunca vira erro.
func (s *Service) ValidateBatch(actorID int, batch []*domain.SalesTransaction) ([]Outcome, error) {
	outcomes := make([]Outcome, len(batch))
	for i := range outcomes {
		outcomes[i].Index = i
	}

	if len(batch) == 0 {
		return outcomes, nil
	}

	bypass, err := s.permissionRepo.HasGrant(actorID, domain.GrantCreateOnAnyAccount)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar grant de bypass: %w", err)
	}

	if bypass {
		logrus.WithFields(logrus.Fields{
			"actor_id":   actorID,
			"batch_size": len(batch),
		}).Debug("authorizing: bypass aplicado, lote aceito sem checagens")
		return outcomes, nil
	}

	actor, err := s.userRepo.GetUserByID(actorID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário %d: %w", actorID, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("usuário %d não encontrado", actorID)
	}

	if actor.ManagerID == nil {
		for i := range outcomes {
			outcomes[i].Rejected = true
			outcomes[i].Message = ManagerErrorMessage
		}

		logrus.WithFields(logrus.Fields{
			"actor_id":   actorID,
			"batch_size": len(batch),
		}).Info("authorizing: lote rejeitado, usuário sem gerente atribuído")
		return outcomes, nil
	}

	// Coleta as contas distintas do lote para resolver os donos em uma
	// única consulta, independente do tamanho do lote.
	distinct := make(map[string]struct{})
	for _, record := range batch {
		if record.AccountID != "" {
			distinct[record.AccountID] = struct{}{}
		}
	}

	accountIDs := make([]string, 0, len(distinct))
	for accountID := range distinct {
		accountIDs = append(accountIDs, accountID)
	}

	owners, err := s.accountRepo.OwnersByAccountIDs(accountIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver donos das contas: %w", err)
	}

	rejected := 0
	for i, record := range batch {
		if record.AccountID == "" {
			continue
		}

		if ownerID, ok := owners[record.AccountID]; !ok || ownerID != actorID {
			outcomes[i].Rejected = true
			outcomes[i].Message = OwnershipErrorMessage
			rejected++
		}
	}

	if rejected > 0 {
		logrus.WithFields(logrus.Fields{
			"actor_id":   actorID,
			"batch_size": len(batch),
			"rejected":   rejected,
		}).Info("authorizing: registros rejeitados por ownership")
	}

	return outcomes, nil
}
