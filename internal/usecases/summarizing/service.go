package summarizing

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
)

// Summarizer é o único ponto de entrada de leitura alcançável de fora da
// camada de aplicação. Toda operação começa pela checagem explícita de
// permissão em código; a checagem não é middleware opcional.
type Summarizer interface {
	// GetMonthlyTotals verifica as permissões de leitura do chamador sobre
	// o objeto SalesTransaction, seus campos e o objeto Account antes de
	// delegar à agregação.
	GetMonthlyTotals(callerID, subjectUserID int) (*domain.MonthlySalesSeries, error)

	// GetActiveUsers lista os usuários com o grant de acesso ao resumo,
	// como pares label/value para o seletor da UI. Sem limite de resultados
	// por enquanto; a troca por busca paginada com debounce está no roadmap.
	GetActiveUsers(callerID int) ([]*domain.UserOption, error)
}

type Service struct {
	aggregator     aggregating.Aggregator
	userRepo       repository.UserRepository
	permissionRepo repository.PermissionRepository
}

func NewService(
	aggregator aggregating.Aggregator,
	userRepo repository.UserRepository,
	permissionRepo repository.PermissionRepository,
) Summarizer {
	return &Service{
		aggregator:     aggregator,
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
	}
}

func (s *Service) GetMonthlyTotals(callerID, subjectUserID int) (*domain.MonthlySalesSeries, error) {
	if subjectUserID <= 0 {
		return nil, ErrMissingSubject
	}

	if err := s.checkReadAccess(callerID); err != nil {
		return nil, err
	}

	points, err := s.aggregator.MonthlyTotals(subjectUserID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"caller_id":       callerID,
			"subject_user_id": subjectUserID,
		}).Error("summarizing: erro ao calcular série mensal")
		return nil, ErrSummaryUnavailable
	}

	return &domain.MonthlySalesSeries{Points: points}, nil
}

func (s *Service) GetActiveUsers(callerID int) ([]*domain.UserOption, error) {
	hasAccess, err := s.permissionRepo.HasGrant(callerID, domain.GrantSalesSummaryAccess)
	if err != nil {
		logrus.WithError(err).WithField("caller_id", callerID).
			Error("summarizing: erro ao verificar grant de acesso")
		return nil, ErrSummaryUnavailable
	}
	if !hasAccess {
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepo.ListUsersByGrant(domain.GrantSalesSummaryAccess)
	if err != nil {
		logrus.WithError(err).Error("summarizing: erro ao listar vendedores")
		return nil, ErrSummaryUnavailable
	}

	options := make([]*domain.UserOption, 0, len(users))
	for _, user := range users {
		options = append(options, &domain.UserOption{
			Label: fmt.Sprintf("%s %s", user.Name, user.Lastname),
			Value: user.ID,
		})
	}

	return options, nil
}

// checkReadAccess exige, em uma única consulta, leitura no objeto
// SalesTransaction, nos campos account_id/sale_date/amount e no objeto
// Account. Qualquer grant ausente nega o acesso por inteiro.
func (s *Service) checkReadAccess(callerID int) error {
	missing, err := s.permissionRepo.MissingGrants(callerID, domain.SummaryReadGrants)
	if err != nil {
		logrus.WithError(err).WithField("caller_id", callerID).
			Error("summarizing: erro ao verificar permissões de leitura")
		return ErrSummaryUnavailable
	}

	if len(missing) > 0 {
		logrus.WithFields(logrus.Fields{
			"caller_id":      callerID,
			"missing_grants": missing,
		}).Warn("summarizing: acesso negado ao resumo mensal")
		return ErrPermissionDenied
	}

	return nil
}
